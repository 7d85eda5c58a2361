// Package market provides catalog functionality: markets, their item
// listings and the storefront read views.
// This is the public API for the market bounded context.
package market

import (
	"net/http"

	"github.com/anthol-dao/anthol-common/modules/market/application/commands"
	"github.com/anthol-dao/anthol-common/modules/market/application/queries"
	"github.com/anthol-dao/anthol-common/modules/market/domain"
	httphandler "github.com/anthol-dao/anthol-common/modules/market/infrastructure/http"
	"github.com/anthol-dao/anthol-common/modules/market/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
)

// Module is the public API for the market bounded context.
// External communication: HTTP API (RegisterRoutes)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	// Repository defaults to the bounded in-memory store when nil.
	Repository     domain.Repository
	EventPublisher events.Publisher
}

type module struct {
	registerMarketHandler *commands.RegisterMarketHandler
	putListingHandler     *commands.PutListingHandler
	removeListingHandler  *commands.RemoveListingHandler
	homePageHandler       *queries.HomePageHandler
	marketPageHandler     *queries.MarketPageHandler
	getListingHandler     *queries.GetListingHandler
}

// New creates a new market module.
func New(cfg Config) Module {
	repository := cfg.Repository
	if repository == nil {
		repository = persistence.NewStableRepository()
	}

	return &module{
		registerMarketHandler: commands.NewRegisterMarketHandler(repository, cfg.EventPublisher),
		putListingHandler:     commands.NewPutListingHandler(repository, cfg.EventPublisher),
		removeListingHandler:  commands.NewRemoveListingHandler(repository, cfg.EventPublisher),
		homePageHandler:       queries.NewHomePageHandler(repository),
		marketPageHandler:     queries.NewMarketPageHandler(repository),
		getListingHandler:     queries.NewGetListingHandler(repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.registerMarketHandler, m.putListingHandler, m.removeListingHandler, m.homePageHandler, m.marketPageHandler, m.getListingHandler)
}
