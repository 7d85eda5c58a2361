// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/anthol-dao/anthol-common/modules/shared/events"

// Account module event types.
// These are the "public API" of the account module for event-driven communication.
const (
	AccountRegisteredEventType events.EventType = "account.AccountRegistered"
	AccountUpdatedEventType    events.EventType = "account.AccountUpdated"
	AccountDeletedEventType    events.EventType = "account.AccountDeleted"
)

// AccountDeletedEvent is the public contract for account deletion events.
// Other modules should use this type to clean up per-account state.
type AccountDeletedEvent struct {
	events.BaseEvent
	Handle string `json:"handle"`
}
