// Package commands contains write use cases for the account module.
// Commands change state and typically don't return data (except IDs).
package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// RegisterAccountCommand represents the intent to register a new account.
type RegisterAccountCommand struct {
	Handle      string
	Name        string
	MailAddress string
}

// RegisterAccountHandler handles the RegisterAccountCommand.
type RegisterAccountHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewRegisterAccountHandler(repo domain.Repository, publisher events.Publisher) *RegisterAccountHandler {
	return &RegisterAccountHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle executes the register account use case.
// Returns the registered handle in its display form.
func (h *RegisterAccountHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) (string, error) {
	// Validate and create value objects
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return "", fmt.Errorf("invalid handle: %w", err)
	}

	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return "", fmt.Errorf("invalid name: %w", err)
	}

	mail, err := domain.NewMailAddress(cmd.MailAddress)
	if err != nil {
		return "", fmt.Errorf("invalid mail address: %w", err)
	}

	// Handle uniqueness is case-insensitive: "Alice" and "alice" collide.
	exists, err := h.repo.ExistsHandle(ctx, handle)
	if err != nil {
		return "", fmt.Errorf("checking handle existence: %w", err)
	}
	if exists {
		return "", domain.ErrHandleTaken
	}

	// Create the account aggregate
	account := domain.NewAccount(handle, name, mail)

	// Persist the account
	if err := h.repo.Save(ctx, account); err != nil {
		return "", fmt.Errorf("saving account: %w", err)
	}

	// Publish domain event
	if h.publisher != nil {
		event := domain.NewAccountRegisteredEvent(account)
		if err := h.publisher.Publish(ctx, event); err != nil {
			// Log but don't fail - event publishing is eventually consistent
			// In production, use outbox pattern for reliability
			_ = err
		}
	}

	return account.Handle().String(), nil
}
