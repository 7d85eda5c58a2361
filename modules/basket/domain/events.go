package domain

import (
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
)

// Internal event types (not used cross-module)
const (
	BasketCreatedEventType    events.EventType = "basket.BasketCreated"
	BasketClearedEventType    events.EventType = "basket.BasketCleared"
	BasketCheckedOutEventType                  = contracts.BasketCheckedOutEventType
)

// BasketCreatedEvent is published when a handle's basket first comes into
// existence.
type BasketCreatedEvent struct {
	events.BaseEvent
	Handle string `json:"handle"`
}

func NewBasketCreatedEvent(basket *Basket) BasketCreatedEvent {
	return BasketCreatedEvent{
		BaseEvent: events.NewBaseEvent(BasketCreatedEventType, basket.Handle().String()),
		Handle:    basket.Handle().String(),
	}
}

func NewBasketCheckedOutEvent(basket *Basket) contracts.BasketCheckedOutEvent {
	return contracts.BasketCheckedOutEvent{
		BaseEvent: events.NewBaseEvent(BasketCheckedOutEventType, basket.Handle().String()),
		Handle:    basket.Handle().String(),
		ItemCount: basket.ItemCount(),
		Total:     basket.Total().String(),
		Currency:  basket.Currency().String(),
	}
}

// BasketClearedEvent is published when a basket is emptied outside checkout.
type BasketClearedEvent struct {
	events.BaseEvent
	Handle string `json:"handle"`
}

func NewBasketClearedEvent(basket *Basket) BasketClearedEvent {
	return BasketClearedEvent{
		BaseEvent: events.NewBaseEvent(BasketClearedEventType, basket.Handle().String()),
		Handle:    basket.Handle().String(),
	}
}
