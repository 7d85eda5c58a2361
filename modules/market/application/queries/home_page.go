// Package queries contains read use cases for the market module.
// Queries return DTOs shaped for the read side, not domain objects.
package queries

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// GlanceDTO is one item card in a market row.
type GlanceDTO struct {
	StoreID   string     `json:"store_id"`
	ItemID    string     `json:"item_id"`
	AttrKeys  string     `json:"attr_keys"`
	Name      string     `json:"name"`
	StoreName string     `json:"store_name"`
	Tags      []string   `json:"tags"`
	InStock   bool       `json:"in_stock"`
	Price     unit.Price `json:"price"`
	Currency  string     `json:"currency"`
	ImageURL  string     `json:"image_url,omitempty"`
	ImageAlt  string     `json:"image_alt,omitempty"`
}

// MarketRowDTO is one market on the home page with a sample of its items.
type MarketRowDTO struct {
	MarketID string      `json:"market_id"`
	Name     string      `json:"name"`
	Items    []GlanceDTO `json:"items"`
}

// HomePageDTO is the storefront landing view.
type HomePageDTO struct {
	Currency string         `json:"currency"`
	Markets  []MarketRowDTO `json:"markets"`
}

// HomePageQuery requests the landing view priced in one currency.
type HomePageQuery struct {
	Currency string
	// ItemsPerMarket caps each market row. Zero means the default of 8.
	ItemsPerMarket int
}

const defaultItemsPerMarket = 8

// HomePageHandler handles the HomePageQuery.
type HomePageHandler struct {
	repo domain.Repository
}

func NewHomePageHandler(repo domain.Repository) *HomePageHandler {
	return &HomePageHandler{repo: repo}
}

// Handle executes the home page query. Every market appears, in ID order;
// listings with no price in the currency are skipped rather than failing the
// page.
func (h *HomePageHandler) Handle(ctx context.Context, query HomePageQuery) (*HomePageDTO, error) {
	currency, err := unit.ParseCurrency(query.Currency)
	if err != nil {
		return nil, err
	}
	perMarket := query.ItemsPerMarket
	if perMarket <= 0 {
		perMarket = defaultItemsPerMarket
	}

	markets, err := h.repo.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing markets: %w", err)
	}

	page := &HomePageDTO{
		Currency: currency.String(),
		Markets:  make([]MarketRowDTO, 0, len(markets)),
	}
	for _, market := range markets {
		items, err := glancesForMarket(ctx, h.repo, market.ID(), currency, perMarket)
		if err != nil {
			return nil, err
		}
		page.Markets = append(page.Markets, MarketRowDTO{
			MarketID: market.ID().String(),
			Name:     market.Name(),
			Items:    items,
		})
	}

	return page, nil
}

func glancesForMarket(ctx context.Context, repo domain.Repository, marketID types.MarketID, currency unit.Currency, limit int) ([]GlanceDTO, error) {
	listings, err := repo.ListingsByMarket(ctx, marketID)
	if err != nil {
		return nil, fmt.Errorf("listing items of market %s: %w", marketID, err)
	}

	items := make([]GlanceDTO, 0, min(limit, len(listings)))
	for _, listing := range listings {
		if len(items) == limit {
			break
		}
		glance, err := listing.Glance(currency)
		if err != nil {
			// Not priced in this currency; the card is simply absent.
			continue
		}
		items = append(items, toGlanceDTO(glance, currency))
	}
	return items, nil
}

func toGlanceDTO(glance domain.ItemGlance, currency unit.Currency) GlanceDTO {
	dto := GlanceDTO{
		StoreID:   glance.StoreID.String(),
		ItemID:    glance.ItemID.String(),
		AttrKeys:  glance.Attrs.Hex(),
		Name:      glance.Name,
		StoreName: glance.StoreName,
		Tags:      glance.Tags,
		InStock:   glance.InStock,
		Price:     glance.Price,
		Currency:  currency.String(),
		ImageAlt:  glance.Image.Alt,
	}
	if !glance.Image.Src.IsZero() {
		dto.ImageURL = glance.Image.Src.ToURL()
	}
	return dto
}
