package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// VariantInput describes one attribute variant of a listing.
type VariantInput struct {
	AttrKeys string
	InStock  bool
	// Prices maps currency code to a decimal amount string.
	Prices    map[string]string
	ImageURL  string
	ImageCID  string
	ImageMime string
	ImageAlt  string
}

// SpecLabelInput is one labeled row of a spec sheet.
type SpecLabelInput struct {
	Name   string
	Values []string
}

// SpecCategoryInput groups spec rows under a heading.
type SpecCategoryInput struct {
	Name   string
	Labels []SpecLabelInput
}

// PutListingCommand creates or replaces a listing in a market.
type PutListingCommand struct {
	MarketID  string
	StoreID   string
	ItemID    string
	Name      string
	StoreName string
	Tags      []string
	Variants  []VariantInput
	Specs     []SpecCategoryInput
}

// PutListingHandler handles the PutListingCommand.
type PutListingHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewPutListingHandler(repo domain.Repository, publisher events.Publisher) *PutListingHandler {
	return &PutListingHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle executes the put listing use case. The target market must exist; the
// listing itself is an upsert keyed by (store, item).
func (h *PutListingHandler) Handle(ctx context.Context, cmd PutListingCommand) error {
	// Validate and create value objects
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

	tags := make([]domain.Tag, len(cmd.Tags))
	for i, raw := range cmd.Tags {
		tag, err := domain.NewTag(raw)
		if err != nil {
			return fmt.Errorf("invalid tag %q: %w", raw, err)
		}
		tags[i] = tag
	}

	attrs := make([]domain.AttrVariant, len(cmd.Variants))
	for i, input := range cmd.Variants {
		variant, err := parseVariant(input)
		if err != nil {
			return err
		}
		attrs[i] = variant
	}

	specs := make([]domain.SpecCategory, len(cmd.Specs))
	for i, category := range cmd.Specs {
		labels := make([]domain.SpecLabel, len(category.Labels))
		for j, label := range category.Labels {
			labels[j] = domain.SpecLabel{Name: label.Name, Values: label.Values}
		}
		specs[i] = domain.SpecCategory{Name: category.Name, Labels: labels}
	}

	listing, err := domain.NewItemListing(storeID, itemID, cmd.Name, cmd.StoreName, tags, attrs, specs)
	if err != nil {
		return err
	}

	// The market must exist before listings attach to it.
	if _, err := h.repo.FindMarket(ctx, marketID); err != nil {
		return err
	}

	if err := h.repo.SaveListing(ctx, marketID, listing); err != nil {
		return fmt.Errorf("saving listing: %w", err)
	}

	// Publish domain event
	if h.publisher != nil {
		event := domain.NewListingPutEvent(marketID, listing)
		if err := h.publisher.Publish(ctx, event); err != nil {
			// Log but don't fail - event publishing is eventually consistent
			_ = err
		}
	}

	return nil
}

func parseVariant(input VariantInput) (domain.AttrVariant, error) {
	attrKeys, err := types.ParseAttrKeys(input.AttrKeys)
	if err != nil {
		return domain.AttrVariant{}, fmt.Errorf("invalid attr keys %q: %w", input.AttrKeys, err)
	}

	prices := make(map[unit.Currency]unit.Price, len(input.Prices))
	for code, amount := range input.Prices {
		currency, err := unit.ParseCurrency(code)
		if err != nil {
			return domain.AttrVariant{}, err
		}
		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return domain.AttrVariant{}, fmt.Errorf("invalid price %q for %s: %w", amount, code, err)
		}
		price, err := unit.PriceFromDecimal(dec)
		if err != nil {
			return domain.AttrVariant{}, fmt.Errorf("invalid price for %s: %w", code, err)
		}
		prices[currency] = price
	}

	image := media.Data{Mime: media.ParseMime(input.ImageMime), Alt: input.ImageAlt}
	switch {
	case input.ImageCID != "":
		image.Src = media.CIDSrc(input.ImageCID)
	case input.ImageURL != "":
		image.Src = media.URLSrc(input.ImageURL)
	}

	return domain.AttrVariant{
		Attrs:   attrKeys,
		InStock: input.InStock,
		Prices:  prices,
		Image:   image,
	}, nil
}
