package domain

import (
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// Domain events for the account bounded context.
// Events represent facts about what happened in the domain.
// Deletion crosses module boundaries (baskets clean up), so it uses the
// shared contract type; the rest stay internal.

const (
	AccountRegisteredEventType events.EventType = contracts.AccountRegisteredEventType
	AccountUpdatedEventType    events.EventType = contracts.AccountUpdatedEventType
	AccountDeletedEventType    events.EventType = contracts.AccountDeletedEventType
)

// AccountRegisteredEvent is published when a new account is registered.
type AccountRegisteredEvent struct {
	events.BaseEvent
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	MailAddress string `json:"mail_address"`
}

func NewAccountRegisteredEvent(account *Account) AccountRegisteredEvent {
	return AccountRegisteredEvent{
		BaseEvent:   events.NewBaseEvent(AccountRegisteredEventType, account.Handle().String()),
		Handle:      account.Handle().String(),
		Name:        account.Name().String(),
		MailAddress: account.Mail().String(),
	}
}

// AccountUpdatedEvent is published when an account's profile changes.
type AccountUpdatedEvent struct {
	events.BaseEvent
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

func NewAccountUpdatedEvent(account *Account) AccountUpdatedEvent {
	return AccountUpdatedEvent{
		BaseEvent: events.NewBaseEvent(AccountUpdatedEventType, account.Handle().String()),
		Handle:    account.Handle().String(),
		Name:      account.Name().String(),
	}
}

// NewAccountDeletedEvent builds the public deletion contract event; other
// modules consume it to discard per-account state.
func NewAccountDeletedEvent(handle ident.ActorID) contracts.AccountDeletedEvent {
	return contracts.AccountDeletedEvent{
		BaseEvent: events.NewBaseEvent(AccountDeletedEventType, handle.String()),
		Handle:    handle.String(),
	}
}
