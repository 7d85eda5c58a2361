package domain

import (
	"strings"

	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// AttrVariant is the data of one attribute selection of a listed item: its
// stock flag, its price in each listed currency and its image.
type AttrVariant struct {
	Attrs   types.AttrKeys               `json:"attrs"`
	InStock bool                         `json:"in_stock"`
	Prices  map[unit.Currency]unit.Price `json:"prices"`
	Image   media.Data                   `json:"image"`
}

// SpecLabel is one labeled row of a spec sheet.
type SpecLabel struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SpecCategory groups spec labels under a category heading.
type SpecCategory struct {
	Name   string      `json:"name"`
	Labels []SpecLabel `json:"labels"`
}

// ItemListing is an item as listed in a market: the store's static data plus
// the per-attribute-variant stock, prices and images.
type ItemListing struct {
	storeID   types.StoreID
	itemID    types.ItemID
	name      string
	storeName string
	tags      []Tag
	attrs     []AttrVariant
	specs     []SpecCategory
}

// NewItemListing creates a validated listing.
func NewItemListing(
	storeID types.StoreID,
	itemID types.ItemID,
	name, storeName string,
	tags []Tag,
	attrs []AttrVariant,
	specs []SpecCategory,
) (*ItemListing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrListingNameRequired
	}
	if len(attrs) == 0 {
		return nil, ErrNoAttrVariants
	}
	return &ItemListing{
		storeID:   storeID,
		itemID:    itemID,
		name:      name,
		storeName: storeName,
		tags:      tags,
		attrs:     attrs,
		specs:     specs,
	}, nil
}

// ReconstituteItemListing rebuilds a listing from persistence.
func ReconstituteItemListing(
	storeID types.StoreID,
	itemID types.ItemID,
	name, storeName string,
	tags []Tag,
	attrs []AttrVariant,
	specs []SpecCategory,
) *ItemListing {
	return &ItemListing{
		storeID:   storeID,
		itemID:    itemID,
		name:      name,
		storeName: storeName,
		tags:      tags,
		attrs:     attrs,
		specs:     specs,
	}
}

func (l *ItemListing) StoreID() types.StoreID { return l.storeID }
func (l *ItemListing) ItemID() types.ItemID   { return l.itemID }
func (l *ItemListing) Name() string           { return l.name }
func (l *ItemListing) StoreName() string      { return l.storeName }
func (l *ItemListing) Tags() []Tag            { return l.tags }
func (l *ItemListing) Attrs() []AttrVariant   { return l.attrs }
func (l *ItemListing) Specs() []SpecCategory  { return l.specs }

// Variant returns the data of one attribute selection.
func (l *ItemListing) Variant(attrs types.AttrKeys) (AttrVariant, bool) {
	for _, v := range l.attrs {
		if v.Attrs == attrs {
			return v, true
		}
	}
	return AttrVariant{}, false
}

// ItemGlance is the summary of a listing shown in market rows: the default
// variant's price in one currency, stock flag and image.
type ItemGlance struct {
	StoreID   types.StoreID  `json:"store_id"`
	ItemID    types.ItemID   `json:"item_id"`
	Attrs     types.AttrKeys `json:"attrs"`
	Name      string         `json:"name"`
	StoreName string         `json:"store_name"`
	Tags      []string       `json:"tags"`
	InStock   bool           `json:"in_stock"`
	Price     unit.Price     `json:"price"`
	Image     media.Data     `json:"image"`
}

// Glance summarizes the listing for one currency. The first in-stock variant
// priced in the currency wins; with none in stock, the first priced variant
// is shown as out of stock. A listing with no variant priced in the currency
// returns ErrPriceUnavailable.
func (l *ItemListing) Glance(currency unit.Currency) (ItemGlance, error) {
	chosen := -1
	for i, v := range l.attrs {
		if _, ok := v.Prices[currency]; !ok {
			continue
		}
		if v.InStock {
			chosen = i
			break
		}
		if chosen < 0 {
			chosen = i
		}
	}
	if chosen < 0 {
		return ItemGlance{}, ErrPriceUnavailable
	}

	variant := l.attrs[chosen]
	tags := make([]string, len(l.tags))
	for i, tag := range l.tags {
		tags[i] = tag.Display()
	}

	return ItemGlance{
		StoreID:   l.storeID,
		ItemID:    l.itemID,
		Attrs:     variant.Attrs,
		Name:      l.name,
		StoreName: l.storeName,
		Tags:      tags,
		InStock:   variant.InStock,
		Price:     variant.Prices[currency],
		Image:     variant.Image,
	}, nil
}
