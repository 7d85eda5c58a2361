package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthol-dao/anthol-common/internal/platform/eventbus"
	"github.com/anthol-dao/anthol-common/internal/platform/transaction"
	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// CheckoutCommand closes a handle's basket.
type CheckoutCommand struct {
	Handle string
}

type CheckoutHandler struct {
	repo            domain.Repository
	txScope         transaction.TransactionScope
	handlerRegistry eventbus.HandlerRegistry
	publisher       events.Publisher
	logger          *slog.Logger
}

func NewCheckoutHandler(
	repo domain.Repository,
	txScope transaction.TransactionScope,
	handlerRegistry eventbus.HandlerRegistry,
	publisher events.Publisher,
	logger *slog.Logger,
) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		repo:            repo,
		txScope:         txScope,
		handlerRegistry: handlerRegistry,
		publisher:       publisher,
		logger:          logger,
	}
}

// Handle executes the checkout use case.
// The operation runs within a transaction, and domain events are dispatched
// before commit, allowing event handlers to participate in the same transaction.
//
// NOTE: BasketCheckedOutEvent is dispatched within the transaction, but
// notification handlers (e.g., email) should NOT run here. They run via the
// async publisher after commit; in production that role moves to Pub/Sub with
// idempotency on the subscriber side.
func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return fmt.Errorf("invalid handle: %w", err)
	}

	var committed []events.Event
	err = h.txScope.Execute(ctx, func(ctx context.Context) error {
		// Create event bus inside closure for Spanner retry safety
		eventBus := eventbus.NewTransactionalPublisher(h.handlerRegistry, 10)

		// Load aggregate
		basket, err := h.repo.FindByHandle(ctx, handle)
		if err != nil {
			return fmt.Errorf("finding basket: %w", err)
		}

		// Execute business logic (adds BasketCheckedOutEvent internally)
		if err := basket.Checkout(); err != nil {
			return err
		}

		// Persist changes
		if err := h.repo.Save(ctx, basket); err != nil {
			return fmt.Errorf("saving basket: %w", err)
		}

		// Collect events from aggregate and publish to bus
		committed = committed[:0]
		for _, event := range basket.DomainEvents() {
			if err := eventBus.Publish(ctx, event); err != nil {
				return fmt.Errorf("publishing event: %w", err)
			}
			committed = append(committed, event)
		}
		basket.ClearDomainEvents()

		// Flush events (handlers run within same transaction)
		if err := eventBus.Flush(ctx); err != nil {
			return fmt.Errorf("flushing events: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Hand the committed events to async subscribers (notifications)
	if h.publisher != nil {
		for _, event := range committed {
			if err := h.publisher.Publish(ctx, event); err != nil {
				// Log but don't fail - event publishing is eventually consistent
				h.logger.Error("failed to publish checkout event",
					slog.String("event_type", string(event.EventType())),
					slog.Any("error", err))
			}
		}
	}

	return nil
}
