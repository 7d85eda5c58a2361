package queries

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// TagDTO carries both renderings of a tag.
type TagDTO struct {
	Display string `json:"display"`
	URL     string `json:"url"`
}

// VariantDTO is one attribute variant on the item page.
type VariantDTO struct {
	AttrKeys string                `json:"attr_keys"`
	InStock  bool                  `json:"in_stock"`
	Prices   map[string]unit.Price `json:"prices"`
	ImageURL string                `json:"image_url,omitempty"`
	ImageAlt string                `json:"image_alt,omitempty"`
}

// SpecLabelDTO is one labeled row of the spec sheet.
type SpecLabelDTO struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SpecCategoryDTO groups spec rows under a heading.
type SpecCategoryDTO struct {
	Name   string         `json:"name"`
	Labels []SpecLabelDTO `json:"labels"`
}

// ListingDTO is the full item page view.
type ListingDTO struct {
	MarketID  string            `json:"market_id"`
	StoreID   string            `json:"store_id"`
	ItemID    string            `json:"item_id"`
	Name      string            `json:"name"`
	StoreName string            `json:"store_name"`
	Tags      []TagDTO          `json:"tags"`
	Variants  []VariantDTO      `json:"variants"`
	Specs     []SpecCategoryDTO `json:"specs"`
}

// GetListingQuery requests one listing's full detail.
type GetListingQuery struct {
	MarketID string
	StoreID  string
	ItemID   string
}

// GetListingHandler handles the GetListingQuery.
type GetListingHandler struct {
	repo domain.Repository
}

func NewGetListingHandler(repo domain.Repository) *GetListingHandler {
	return &GetListingHandler{repo: repo}
}

// Handle executes the get listing query.
func (h *GetListingHandler) Handle(ctx context.Context, query GetListingQuery) (*ListingDTO, error) {
	marketID, err := types.ParseMarketID(query.MarketID)
	if err != nil {
		return nil, fmt.Errorf("invalid market ID: %w", err)
	}
	storeID, err := types.ParseStoreID(query.StoreID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID: %w", err)
	}
	itemID, err := types.ParseItemID(query.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID: %w", err)
	}

	listing, err := h.repo.FindListing(ctx, marketID, storeID, itemID)
	if err != nil {
		return nil, err
	}

	return toListingDTO(marketID, listing), nil
}

func toListingDTO(marketID types.MarketID, listing *domain.ItemListing) *ListingDTO {
	tags := make([]TagDTO, len(listing.Tags()))
	for i, tag := range listing.Tags() {
		tags[i] = TagDTO{Display: tag.Display(), URL: tag.URL()}
	}

	variants := make([]VariantDTO, len(listing.Attrs()))
	for i, v := range listing.Attrs() {
		prices := make(map[string]unit.Price, len(v.Prices))
		for currency, price := range v.Prices {
			prices[currency.String()] = price
		}
		dto := VariantDTO{
			AttrKeys: v.Attrs.Hex(),
			InStock:  v.InStock,
			Prices:   prices,
			ImageAlt: v.Image.Alt,
		}
		if !v.Image.Src.IsZero() {
			dto.ImageURL = v.Image.Src.ToURL()
		}
		variants[i] = dto
	}

	specs := make([]SpecCategoryDTO, len(listing.Specs()))
	for i, category := range listing.Specs() {
		labels := make([]SpecLabelDTO, len(category.Labels))
		for j, label := range category.Labels {
			labels[j] = SpecLabelDTO{Name: label.Name, Values: label.Values}
		}
		specs[i] = SpecCategoryDTO{Name: category.Name, Labels: labels}
	}

	return &ListingDTO{
		MarketID:  marketID.String(),
		StoreID:   listing.StoreID().String(),
		ItemID:    listing.ItemID().String(),
		Name:      listing.Name(),
		StoreName: listing.StoreName(),
		Tags:      tags,
		Variants:  variants,
		Specs:     specs,
	}
}
