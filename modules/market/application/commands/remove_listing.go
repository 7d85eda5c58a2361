package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// RemoveListingCommand represents the intent to delist an item from a market.
type RemoveListingCommand struct {
	MarketID string
	StoreID  string
	ItemID   string
}

// RemoveListingHandler handles the RemoveListingCommand.
type RemoveListingHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewRemoveListingHandler(repo domain.Repository, publisher events.Publisher) *RemoveListingHandler {
	return &RemoveListingHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle executes the remove listing use case.
func (h *RemoveListingHandler) Handle(ctx context.Context, cmd RemoveListingCommand) error {
	marketID, err := types.ParseMarketID(cmd.MarketID)
	if err != nil {
		return fmt.Errorf("invalid market ID: %w", err)
	}
	storeID, err := types.ParseStoreID(cmd.StoreID)
	if err != nil {
		return fmt.Errorf("invalid store ID: %w", err)
	}
	itemID, err := types.ParseItemID(cmd.ItemID)
	if err != nil {
		return fmt.Errorf("invalid item ID: %w", err)
	}

	existed, err := h.repo.DeleteListing(ctx, marketID, storeID, itemID)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	if !existed {
		return domain.ErrListingNotFound
	}

	// Publish domain event
	if h.publisher != nil {
		event := domain.NewListingRemovedEvent(marketID, storeID, itemID)
		if err := h.publisher.Publish(ctx, event); err != nil {
			// Log but don't fail - event publishing is eventually consistent
			_ = err
		}
	}

	return nil
}
