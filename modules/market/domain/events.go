package domain

import (
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// Market event types. Nothing outside the module consumes these yet, so they
// stay internal rather than in the shared contracts package.
const (
	MarketRegisteredEventType events.EventType = "market.MarketRegistered"
	ListingPutEventType       events.EventType = "market.ListingPut"
	ListingRemovedEventType   events.EventType = "market.ListingRemoved"
)

type MarketRegisteredEvent struct {
	events.BaseEvent
	MarketID string `json:"market_id"`
	Name     string `json:"name"`
}

func NewMarketRegisteredEvent(market *Market) MarketRegisteredEvent {
	return MarketRegisteredEvent{
		BaseEvent: events.NewBaseEvent(MarketRegisteredEventType, market.ID().String()),
		MarketID:  market.ID().String(),
		Name:      market.Name(),
	}
}

type ListingPutEvent struct {
	events.BaseEvent
	MarketID string `json:"market_id"`
	StoreID  string `json:"store_id"`
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
}

func NewListingPutEvent(marketID types.MarketID, listing *ItemListing) ListingPutEvent {
	return ListingPutEvent{
		BaseEvent: events.NewBaseEvent(ListingPutEventType, marketID.String()),
		MarketID:  marketID.String(),
		StoreID:   listing.StoreID().String(),
		ItemID:    listing.ItemID().String(),
		Name:      listing.Name(),
	}
}

type ListingRemovedEvent struct {
	events.BaseEvent
	MarketID string `json:"market_id"`
	StoreID  string `json:"store_id"`
	ItemID   string `json:"item_id"`
}

func NewListingRemovedEvent(marketID types.MarketID, storeID types.StoreID, itemID types.ItemID) ListingRemovedEvent {
	return ListingRemovedEvent{
		BaseEvent: events.NewBaseEvent(ListingRemovedEventType, marketID.String()),
		MarketID:  marketID.String(),
		StoreID:   storeID.String(),
		ItemID:    itemID.String(),
	}
}
