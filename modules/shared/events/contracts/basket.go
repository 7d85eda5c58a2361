package contracts

import "github.com/anthol-dao/anthol-common/modules/shared/events"

const (
	BasketCheckedOutEventType events.EventType = "basket.BasketCheckedOut"
)

// BasketCheckedOutEvent is the public contract for completed checkouts.
type BasketCheckedOutEvent struct {
	events.BaseEvent
	Handle    string `json:"handle"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
	Currency  string `json:"currency"`
}
