// Package basket provides shopping basket functionality.
// This is the public API for the basket bounded context.
package basket

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/anthol-dao/anthol-common/internal/platform/eventbus"
	"github.com/anthol-dao/anthol-common/internal/platform/transaction"
	"github.com/anthol-dao/anthol-common/modules/basket/application/commands"
	"github.com/anthol-dao/anthol-common/modules/basket/application/eventhandlers"
	"github.com/anthol-dao/anthol-common/modules/basket/application/queries"
	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	httphandler "github.com/anthol-dao/anthol-common/modules/basket/infrastructure/http"
	"github.com/anthol-dao/anthol-common/modules/basket/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
)

// Module is the public API for the basket bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (subscribed internally)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	// Repository defaults to the in-memory implementation when nil.
	Repository      domain.Repository
	TxScope         transaction.TransactionScope
	HandlerRegistry eventbus.HandlerRegistry
	EventPublisher  events.Publisher
	EventSubscriber events.Subscriber
	Logger          *slog.Logger
}

type module struct {
	addItemHandler     *commands.AddItemHandler
	updateCountHandler *commands.UpdateCountHandler
	removeItemHandler  *commands.RemoveItemHandler
	checkoutHandler    *commands.CheckoutHandler
	getBasketHandler   *queries.GetBasketHandler
}

// New creates a new basket module.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "basket")

	repository := cfg.Repository
	if repository == nil {
		repository = persistence.NewInMemoryRepository()
	}

	txScope := cfg.TxScope
	if txScope == nil {
		txScope = passthroughScope{}
	}

	registry := cfg.HandlerRegistry
	if registry == nil {
		registry = emptyRegistry{}
	}

	addItemHandler := commands.NewAddItemHandler(repository, cfg.EventPublisher)
	updateCountHandler := commands.NewUpdateCountHandler(repository)
	removeItemHandler := commands.NewRemoveItemHandler(repository)
	checkoutHandler := commands.NewCheckoutHandler(repository, txScope, registry, cfg.EventPublisher, logger)

	getBasketHandler := queries.NewGetBasketHandler(repository)

	// Subscribe to cross-module events
	if cfg.EventSubscriber != nil {
		accountDeletedHandler := eventhandlers.NewAccountDeletedHandler(repository, logger)
		if err := cfg.EventSubscriber.Subscribe(contracts.AccountDeletedEventType, accountDeletedHandler); err != nil {
			logger.Error("failed to subscribe to account deleted event", slog.Any("error", err))
		}
	}

	return &module{
		addItemHandler:     addItemHandler,
		updateCountHandler: updateCountHandler,
		removeItemHandler:  removeItemHandler,
		checkoutHandler:    checkoutHandler,
		getBasketHandler:   getBasketHandler,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.addItemHandler, m.updateCountHandler, m.removeItemHandler, m.checkoutHandler, m.getBasketHandler)
}

// passthroughScope runs the function without a transactional boundary.
// Used when no transaction scope is configured (in-memory storage).
type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// emptyRegistry has no handlers; checkout events then flush as no-ops.
type emptyRegistry struct{}

func (emptyRegistry) HandlersFor(events.EventType) []events.Handler { return nil }
