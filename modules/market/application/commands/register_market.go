// Package commands contains write use cases for the market module.
// Commands change state and typically don't return data (except IDs).
package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// RegisterMarketCommand represents the intent to open a new market.
type RegisterMarketCommand struct {
	MarketID string
	Name     string
}

// RegisterMarketHandler handles the RegisterMarketCommand.
type RegisterMarketHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewRegisterMarketHandler(repo domain.Repository, publisher events.Publisher) *RegisterMarketHandler {
	return &RegisterMarketHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle executes the register market use case. Registering an existing ID
// renames the market; market IDs are stable once minted, so the operation is
// an upsert.
// Returns the market ID in its display form.
func (h *RegisterMarketHandler) Handle(ctx context.Context, cmd RegisterMarketCommand) (string, error) {
	// Validate and create value objects
	id, err := types.ParseMarketID(cmd.MarketID)
	if err != nil {
		return "", fmt.Errorf("invalid market ID: %w", err)
	}

	market, err := domain.NewMarket(id, cmd.Name)
	if err != nil {
		return "", err
	}

	if err := h.repo.SaveMarket(ctx, market); err != nil {
		return "", fmt.Errorf("saving market: %w", err)
	}

	// Publish domain event
	if h.publisher != nil {
		event := domain.NewMarketRegisteredEvent(market)
		if err := h.publisher.Publish(ctx, event); err != nil {
			// Log but don't fail - event publishing is eventually consistent
			_ = err
		}
	}

	return market.ID().String(), nil
}
