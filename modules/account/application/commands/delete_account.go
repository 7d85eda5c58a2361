package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/internal/platform/transaction"
	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// DeleteAccountCommand represents the intent to delete an account.
type DeleteAccountCommand struct {
	Handle string
}

// DeleteAccountHandler handles the DeleteAccountCommand.
// Deletion runs inside a transaction so the soft delete and the event
// handlers of other modules commit or roll back together.
type DeleteAccountHandler struct {
	repo      domain.Repository
	txScope   transaction.TransactionScope
	publisher events.Publisher
}

func NewDeleteAccountHandler(
	repo domain.Repository,
	txScope transaction.TransactionScope,
	publisher events.Publisher,
) *DeleteAccountHandler {
	return &DeleteAccountHandler{
		repo:      repo,
		txScope:   txScope,
		publisher: publisher,
	}
}

// Handle executes the delete account use case.
func (h *DeleteAccountHandler) Handle(ctx context.Context, cmd DeleteAccountCommand) error {
	// Parse handle
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return fmt.Errorf("invalid handle: %w", err)
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		// Verify account exists
		account, err := h.repo.FindByHandle(ctx, handle)
		if err != nil {
			return fmt.Errorf("finding account: %w", err)
		}

		// Mark as deleted (soft delete via domain method)
		if err := account.Delete(); err != nil {
			return fmt.Errorf("deleting account: %w", err)
		}

		// Persist the deletion
		if err := h.repo.Save(ctx, account); err != nil {
			return fmt.Errorf("saving account: %w", err)
		}

		// Publish within the transaction so subscribers share its fate
		if h.publisher != nil {
			event := domain.NewAccountDeletedEvent(handle)
			if err := h.publisher.Publish(ctx, event); err != nil {
				return fmt.Errorf("publishing event: %w", err)
			}
		}

		return nil
	})
}
