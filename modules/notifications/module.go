package notifications

import (
	"log/slog"

	"github.com/anthol-dao/anthol-common/modules/notifications/application/eventhandlers"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
)

// Module represents the notification module entry point.
type Module struct{}

type Config struct {
	EventSubscriber events.Subscriber
	Logger          *slog.Logger
}

// New initializes the notification module and subscribes to events.
func New(cfg Config) *Module {
	logger := cfg.Logger.With("module", "notifications")

	// Initialize event handlers
	basketCheckedOutHandler := eventhandlers.NewBasketCheckedOutHandler(logger)

	// Subscribe to events
	if err := cfg.EventSubscriber.Subscribe(contracts.BasketCheckedOutEventType, basketCheckedOutHandler); err != nil {
		logger.Error("failed to subscribe to basket checked out event", slog.Any("error", err))
		// specific error handling strategy (panic vs log) depends on requirements
	}

	return &Module{}
}
