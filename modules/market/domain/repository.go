package domain

import (
	"context"

	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// Repository defines persistence operations for markets and their listings.
type Repository interface {
	SaveMarket(ctx context.Context, market *Market) error
	// FindMarket retrieves a market by ID.
	// Returns ErrMarketNotFound if it does not exist.
	FindMarket(ctx context.Context, id types.MarketID) (*Market, error)
	// ListMarkets retrieves all markets in ID order.
	ListMarkets(ctx context.Context) ([]*Market, error)

	SaveListing(ctx context.Context, marketID types.MarketID, listing *ItemListing) error
	// FindListing retrieves one listing.
	// Returns ErrListingNotFound if it does not exist.
	FindListing(ctx context.Context, marketID types.MarketID, storeID types.StoreID, itemID types.ItemID) (*ItemListing, error)
	// ListingsByMarket retrieves a market's listings in store/item order.
	ListingsByMarket(ctx context.Context, marketID types.MarketID) ([]*ItemListing, error)
	// DeleteListing removes a listing and reports whether it existed.
	DeleteListing(ctx context.Context, marketID types.MarketID, storeID types.StoreID, itemID types.ItemID) (bool, error)
}
