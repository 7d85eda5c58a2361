// Package eventhandlers contains subscribers to cross-module events.
package eventhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// AccountDeletedHandler handles AccountDeleted events by discarding the
// account's basket. This handler runs within the same transaction as the
// account deletion, ensuring atomic consistency between the two.
type AccountDeletedHandler struct {
	basketRepo domain.Repository
	logger     *slog.Logger
}

func NewAccountDeletedHandler(basketRepo domain.Repository, logger *slog.Logger) *AccountDeletedHandler {
	return &AccountDeletedHandler{
		basketRepo: basketRepo,
		logger:     logger,
	}
}

func (h *AccountDeletedHandler) Handle(ctx context.Context, event events.Event) error {
	accountDeleted, ok := event.(contracts.AccountDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %T", event)
	}

	h.logger.Info("handling account deleted event, discarding basket",
		slog.String("handle", accountDeleted.Handle))

	handle, err := ident.ParseActorID(accountDeleted.Handle)
	if err != nil {
		return fmt.Errorf("parsing handle: %w", err)
	}

	// The context contains the transaction from the originating command.
	// Repository operations here participate in the same transaction.
	if err := h.basketRepo.Delete(ctx, handle); err != nil {
		if errors.Is(err, domain.ErrBasketNotFound) {
			return nil
		}
		return fmt.Errorf("deleting basket for %s: %w", accountDeleted.Handle, err)
	}

	h.logger.Info("discarded basket for deleted account",
		slog.String("handle", accountDeleted.Handle))
	return nil
}
