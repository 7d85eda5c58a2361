package queries

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// MarketPageDTO is one market's full storefront view.
type MarketPageDTO struct {
	MarketID string      `json:"market_id"`
	Name     string      `json:"name"`
	Currency string      `json:"currency"`
	Items    []GlanceDTO `json:"items"`
}

// MarketPageQuery requests one market's items priced in one currency.
type MarketPageQuery struct {
	MarketID string
	Currency string
}

// MarketPageHandler handles the MarketPageQuery.
type MarketPageHandler struct {
	repo domain.Repository
}

func NewMarketPageHandler(repo domain.Repository) *MarketPageHandler {
	return &MarketPageHandler{repo: repo}
}

// Handle executes the market page query.
func (h *MarketPageHandler) Handle(ctx context.Context, query MarketPageQuery) (*MarketPageDTO, error) {
	marketID, err := types.ParseMarketID(query.MarketID)
	if err != nil {
		return nil, fmt.Errorf("invalid market ID: %w", err)
	}
	currency, err := unit.ParseCurrency(query.Currency)
	if err != nil {
		return nil, err
	}

	market, err := h.repo.FindMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	listings, err := h.repo.ListingsByMarket(ctx, marketID)
	if err != nil {
		return nil, fmt.Errorf("listing items of market %s: %w", marketID, err)
	}

	items := make([]GlanceDTO, 0, len(listings))
	for _, listing := range listings {
		glance, err := listing.Glance(currency)
		if err != nil {
			continue
		}
		items = append(items, toGlanceDTO(glance, currency))
	}

	return &MarketPageDTO{
		MarketID: market.ID().String(),
		Name:     market.Name(),
		Currency: currency.String(),
		Items:    items,
	}, nil
}
