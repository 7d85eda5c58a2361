// Package persistence implements the market repository on the bounded store.
package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/codec"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/stablestore"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// StableRepository implements domain.Repository on two bounded maps: one for
// markets keyed by MarketID, one for listings keyed by the composite
// (MarketID, StoreID, ItemID). Records serialize as deterministic CBOR with a
// version tag, so stored bytes survive schema evolution.
type StableRepository struct {
	markets  *stablestore.Map
	listings *stablestore.Map
}

func NewStableRepository() *StableRepository {
	return &StableRepository{
		markets:  stablestore.NewMap(),
		listings: stablestore.NewMap(),
	}
}

// Compile-time interface check.
var _ domain.Repository = (*StableRepository)(nil)

func (r *StableRepository) SaveMarket(ctx context.Context, market *domain.Market) error {
	record := marketRecord{Version: 1, Name: market.Name()}
	if err := r.markets.Set(market.ID(), &record); err != nil {
		return fmt.Errorf("storing market: %w", err)
	}
	return nil
}

func (r *StableRepository) FindMarket(ctx context.Context, id types.MarketID) (*domain.Market, error) {
	var record marketRecord
	found, err := r.markets.Get(id, &record)
	if err != nil {
		return nil, fmt.Errorf("loading market: %w", err)
	}
	if !found {
		return nil, domain.ErrMarketNotFound
	}
	return domain.ReconstituteMarket(id, record.Name), nil
}

func (r *StableRepository) ListMarkets(ctx context.Context) ([]*domain.Market, error) {
	var markets []*domain.Market
	var rangeErr error

	// Range iterates in StoreKey order, which for catalog identifiers is
	// their canonical packed order.
	r.markets.Range(func(storeKey string, value []byte) bool {
		id, err := types.MarketIDFromBytes(trimStoreKey(storeKey))
		if err != nil {
			rangeErr = fmt.Errorf("decoding market key: %w", err)
			return false
		}
		var record marketRecord
		if err := record.UnmarshalBinary(value); err != nil {
			rangeErr = fmt.Errorf("decoding market record: %w", err)
			return false
		}
		markets = append(markets, domain.ReconstituteMarket(id, record.Name))
		return true
	})

	return markets, rangeErr
}

func (r *StableRepository) SaveListing(ctx context.Context, marketID types.MarketID, listing *domain.ItemListing) error {
	key := listingKey{market: marketID, store: listing.StoreID(), item: listing.ItemID()}
	record, err := newListingRecord(listing)
	if err != nil {
		return err
	}
	if err := r.listings.Set(key, &record); err != nil {
		return fmt.Errorf("storing listing: %w", err)
	}
	return nil
}

func (r *StableRepository) FindListing(ctx context.Context, marketID types.MarketID, storeID types.StoreID, itemID types.ItemID) (*domain.ItemListing, error) {
	var record listingRecord
	found, err := r.listings.Get(listingKey{market: marketID, store: storeID, item: itemID}, &record)
	if err != nil {
		return nil, fmt.Errorf("loading listing: %w", err)
	}
	if !found {
		return nil, domain.ErrListingNotFound
	}
	return record.toListing(storeID, itemID)
}

func (r *StableRepository) ListingsByMarket(ctx context.Context, marketID types.MarketID) ([]*domain.ItemListing, error) {
	prefix := marketID.StoreKey()
	var listings []*domain.ItemListing
	var rangeErr error

	r.listings.Range(func(storeKey string, value []byte) bool {
		if !strings.HasPrefix(storeKey, prefix) {
			// Keys sort by market prefix; stop once past it.
			return len(listings) == 0
		}

		storeID, itemID, err := splitListingKey(storeKey)
		if err != nil {
			rangeErr = err
			return false
		}
		var record listingRecord
		if err := record.UnmarshalBinary(value); err != nil {
			rangeErr = fmt.Errorf("decoding listing record: %w", err)
			return false
		}
		listing, err := record.toListing(storeID, itemID)
		if err != nil {
			rangeErr = err
			return false
		}
		listings = append(listings, listing)
		return true
	})

	return listings, rangeErr
}

func (r *StableRepository) DeleteListing(ctx context.Context, marketID types.MarketID, storeID types.StoreID, itemID types.ItemID) (bool, error) {
	return r.listings.Delete(listingKey{market: marketID, store: storeID, item: itemID}), nil
}

// --- Keys ---

// catalogKeySize is the full packed size of one catalog identifier; StoreKey
// always returns all 16 bytes, zero padded, so composite keys stay aligned.
const catalogKeySize = ident.CatalogMaxBytes

// listingKey is the composite store key of a listing: the three identifiers'
// canonical key bytes concatenated, so listings group by market, then store,
// then item.
type listingKey struct {
	market types.MarketID
	store  types.StoreID
	item   types.ItemID
}

func (k listingKey) StoreKey() string {
	return k.market.StoreKey() + k.store.StoreKey() + k.item.StoreKey()
}

func (k listingKey) MarshalBinary() ([]byte, error) {
	return []byte(k.StoreKey()), nil
}

func (k listingKey) Bound() stablestore.Bound {
	return stablestore.Bound{MaxSize: 3 * catalogKeySize, IsFixedSize: true}
}

func splitListingKey(storeKey string) (types.StoreID, types.ItemID, error) {
	if len(storeKey) != 3*catalogKeySize {
		return types.StoreID{}, types.ItemID{}, fmt.Errorf("malformed listing key of %d bytes", len(storeKey))
	}
	storeID, err := types.StoreIDFromBytes(trimStoreKey(storeKey[catalogKeySize : 2*catalogKeySize]))
	if err != nil {
		return types.StoreID{}, types.ItemID{}, fmt.Errorf("decoding store key: %w", err)
	}
	itemID, err := types.ItemIDFromBytes(trimStoreKey(storeKey[2*catalogKeySize:]))
	if err != nil {
		return types.StoreID{}, types.ItemID{}, fmt.Errorf("decoding item key: %w", err)
	}
	return storeID, itemID, nil
}

// trimStoreKey drops the zero padding of a full-width store key, recovering
// the trimmed byte form FromBytes accepts.
func trimStoreKey(storeKey string) []byte {
	b := []byte(storeKey)
	for i := ident.CatalogMinBytes; i < len(b); i++ {
		if b[i] == 0 {
			return b[:i]
		}
	}
	return b
}

// --- Records ---

// marketRecord is the stored form of a market.
type marketRecord struct {
	Version uint8  `cbor:"0,keyasint"`
	Name    string `cbor:"1,keyasint"`
}

// plainMarketRecord has no marshaling methods. The CBOR codec prefers
// BinaryMarshaler over struct encoding, so encoding the record directly
// would re-enter MarshalBinary; the alias makes the codec see plain fields.
type plainMarketRecord marketRecord

func (r *marketRecord) MarshalBinary() ([]byte, error) {
	return codec.Marshal((*plainMarketRecord)(r))
}

func (r *marketRecord) UnmarshalBinary(data []byte) error {
	return codec.Unmarshal(data, (*plainMarketRecord)(r))
}

func (marketRecord) Bound() stablestore.Bound {
	return stablestore.Unbounded
}

// listingRecord is the stored form of a listing: a version tag plus the
// version's payload, kept raw until the version is known.
type listingRecord struct {
	Version uint8            `cbor:"0,keyasint"`
	Payload codec.RawMessage `cbor:"1,keyasint"`
}

// plainListingRecord strips the marshaling methods, same as plainMarketRecord.
type plainListingRecord listingRecord

type listingPayloadV1 struct {
	Name      string           `cbor:"name"`
	StoreName string           `cbor:"store_name"`
	Tags      []string         `cbor:"tags"`
	Attrs     []attrVariantV1  `cbor:"attrs"`
	Specs     []specCategoryV1 `cbor:"specs,omitempty"`
}

type attrVariantV1 struct {
	Attrs   types.AttrKeys        `cbor:"attrs"`
	InStock bool                  `cbor:"in_stock"`
	Prices  map[string]unit.Price `cbor:"prices"`
	Image   media.Data            `cbor:"image"`
}

type specCategoryV1 struct {
	Name   string        `cbor:"name"`
	Labels []specLabelV1 `cbor:"labels"`
}

type specLabelV1 struct {
	Name   string   `cbor:"name"`
	Values []string `cbor:"values"`
}

func newListingRecord(listing *domain.ItemListing) (listingRecord, error) {
	payload := listingPayloadV1{
		Name:      listing.Name(),
		StoreName: listing.StoreName(),
		Tags:      make([]string, len(listing.Tags())),
		Attrs:     make([]attrVariantV1, len(listing.Attrs())),
		Specs:     make([]specCategoryV1, len(listing.Specs())),
	}
	for i, tag := range listing.Tags() {
		payload.Tags[i] = tag.String()
	}
	for i, v := range listing.Attrs() {
		prices := make(map[string]unit.Price, len(v.Prices))
		for currency, price := range v.Prices {
			prices[currency.String()] = price
		}
		payload.Attrs[i] = attrVariantV1{
			Attrs:   v.Attrs,
			InStock: v.InStock,
			Prices:  prices,
			Image:   v.Image,
		}
	}
	for i, c := range listing.Specs() {
		labels := make([]specLabelV1, len(c.Labels))
		for j, l := range c.Labels {
			labels[j] = specLabelV1{Name: l.Name, Values: l.Values}
		}
		payload.Specs[i] = specCategoryV1{Name: c.Name, Labels: labels}
	}

	encoded, err := codec.Marshal(payload)
	if err != nil {
		return listingRecord{}, fmt.Errorf("encoding listing payload: %w", err)
	}
	return listingRecord{Version: 1, Payload: codec.RawMessage(encoded)}, nil
}

func (r *listingRecord) toListing(storeID types.StoreID, itemID types.ItemID) (*domain.ItemListing, error) {
	if r.Version != 1 {
		return nil, fmt.Errorf("unknown listing record version %d", r.Version)
	}

	var payload listingPayloadV1
	if err := codec.Unmarshal(r.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decoding listing payload: %w", err)
	}

	tags := make([]domain.Tag, len(payload.Tags))
	for i, raw := range payload.Tags {
		tag, err := domain.NewTag(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding stored tag %q: %w", raw, err)
		}
		tags[i] = tag
	}

	attrs := make([]domain.AttrVariant, len(payload.Attrs))
	for i, v := range payload.Attrs {
		prices := make(map[unit.Currency]unit.Price, len(v.Prices))
		for code, price := range v.Prices {
			prices[unit.Currency(code)] = price
		}
		attrs[i] = domain.AttrVariant{
			Attrs:   v.Attrs,
			InStock: v.InStock,
			Prices:  prices,
			Image:   v.Image,
		}
	}
	specs := make([]domain.SpecCategory, len(payload.Specs))
	for i, c := range payload.Specs {
		labels := make([]domain.SpecLabel, len(c.Labels))
		for j, l := range c.Labels {
			labels[j] = domain.SpecLabel{Name: l.Name, Values: l.Values}
		}
		specs[i] = domain.SpecCategory{Name: c.Name, Labels: labels}
	}

	return domain.ReconstituteItemListing(
		storeID, itemID,
		payload.Name, payload.StoreName,
		tags, attrs, specs,
	), nil
}

func (r *listingRecord) MarshalBinary() ([]byte, error) {
	return codec.Marshal((*plainListingRecord)(r))
}

func (r *listingRecord) UnmarshalBinary(data []byte) error {
	return codec.Unmarshal(data, (*plainListingRecord)(r))
}

func (listingRecord) Bound() stablestore.Bound {
	return stablestore.Unbounded
}
