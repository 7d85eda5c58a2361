// Package account provides account management functionality.
// This file defines the module's public API - the single interface
// that other modules use to interact with the account bounded context.
package account

import (
	"context"
	"net/http"

	"github.com/anthol-dao/anthol-common/internal/platform/transaction"
	"github.com/anthol-dao/anthol-common/modules/account/application/commands"
	"github.com/anthol-dao/anthol-common/modules/account/application/queries"
	"github.com/anthol-dao/anthol-common/modules/account/domain"
	httphandler "github.com/anthol-dao/anthol-common/modules/account/infrastructure/http"
	"github.com/anthol-dao/anthol-common/modules/account/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
)

// Module is the public API for the account bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (published internally)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	// Repository defaults to the in-memory implementation when nil.
	Repository     domain.Repository
	TxScope        transaction.TransactionScope
	EventPublisher events.Publisher
}

// module implements the Module interface.
type module struct {
	registerAccountHandler *commands.RegisterAccountHandler
	updateProfileHandler   *commands.UpdateProfileHandler
	deleteAccountHandler   *commands.DeleteAccountHandler
	getAccountHandler      *queries.GetAccountHandler
	listAccountsHandler    *queries.ListAccountsHandler
}

// New creates a new account module with all dependencies wired.
func New(cfg Config) Module {
	repository := cfg.Repository
	if repository == nil {
		repository = persistence.NewInMemoryRepository()
	}

	txScope := cfg.TxScope
	if txScope == nil {
		txScope = passthroughScope{}
	}

	// Wire up command handlers
	registerAccountHandler := commands.NewRegisterAccountHandler(repository, cfg.EventPublisher)
	updateProfileHandler := commands.NewUpdateProfileHandler(repository, cfg.EventPublisher)
	deleteAccountHandler := commands.NewDeleteAccountHandler(repository, txScope, cfg.EventPublisher)

	// Wire up query handlers
	getAccountHandler := queries.NewGetAccountHandler(repository)
	listAccountsHandler := queries.NewListAccountsHandler(repository)

	return &module{
		registerAccountHandler: registerAccountHandler,
		updateProfileHandler:   updateProfileHandler,
		deleteAccountHandler:   deleteAccountHandler,
		getAccountHandler:      getAccountHandler,
		listAccountsHandler:    listAccountsHandler,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.registerAccountHandler, m.updateProfileHandler, m.deleteAccountHandler, m.getAccountHandler, m.listAccountsHandler)
}

// passthroughScope runs the function without a transactional boundary.
// Used when no transaction scope is configured (in-memory storage).
type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
