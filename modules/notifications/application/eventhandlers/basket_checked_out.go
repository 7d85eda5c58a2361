package eventhandlers

import (
	"context"
	"log/slog"

	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
)

// BasketCheckedOutHandler handles BasketCheckedOut events by sending
// notifications.
//
// IMPORTANT: This handler performs external side effects (email sending) and
// MUST NOT run within a database transaction. Currently it runs via
// InMemoryEventBus (outside transactions).
//
// Future: This will be migrated to Pub/Sub where:
// - Events are published to a message queue
// - This handler subscribes and processes asynchronously
// - Idempotency is handled on the subscriber side (using event ID deduplication)
type BasketCheckedOutHandler struct {
	logger *slog.Logger
}

func NewBasketCheckedOutHandler(logger *slog.Logger) *BasketCheckedOutHandler {
	return &BasketCheckedOutHandler{logger: logger}
}

// Handle processes the BasketCheckedOut event.
// TODO: Implement idempotency using event ID before production use.
func (h *BasketCheckedOutHandler) Handle(ctx context.Context, event events.Event) error {
	checkedOut, ok := event.(contracts.BasketCheckedOutEvent)
	if !ok {
		h.logger.Warn("unexpected event payload", slog.String("event_type", event.EventType().String()))
		return nil
	}

	// Mock sending email
	h.logger.Info("sending checkout confirmation",
		slog.String("handle", checkedOut.Handle),
		slog.Int("item_count", checkedOut.ItemCount),
		slog.String("total", checkedOut.Total),
		slog.String("currency", checkedOut.Currency),
	)

	return nil
}
