// Package main is the entry point for the marketplace application.
// It wires together all modules and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthol-dao/anthol-common/internal/platform/eventbus"
	"github.com/anthol-dao/anthol-common/internal/platform/httpserver"
	"github.com/anthol-dao/anthol-common/internal/platform/spanner"
	"github.com/anthol-dao/anthol-common/modules/account"
	accountpersistence "github.com/anthol-dao/anthol-common/modules/account/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/basket"
	basketpersistence "github.com/anthol-dao/anthol-common/modules/basket/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/market"
	"github.com/anthol-dao/anthol-common/modules/notifications"
)

func main() {
	// Initialize logger
	slogOptions := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slogJsonHandler := slog.NewJSONHandler(os.Stdout, slogOptions)
	logger := slog.New(slogJsonHandler)
	slog.SetDefault(logger)

	logger.Info("starting marketplace application")

	// Initialize Spanner client
	ctx := context.Background()
	spannerCfg := spanner.Config{
		ProjectID:  getEnv("SPANNER_PROJECT_ID", "local-project"),
		InstanceID: getEnv("SPANNER_INSTANCE_ID", "local-instance"),
		DatabaseID: getEnv("SPANNER_DATABASE_ID", "marketplace-db"),
	}

	spannerClient, err := spanner.NewClient(ctx, spannerCfg)
	if err != nil {
		logger.Error("failed to create spanner client", slog.Any("error", err))
		os.Exit(1)
	}
	defer spannerClient.Close()

	logger.Info("connected to spanner", slog.String("dsn", spannerCfg.DSN()))

	// Initialize event bus (for inter-module communication)
	eventBus := eventbus.New(logger)

	// Registry of handlers that run inside checkout transactions.
	handlerRegistry := eventbus.NewEventHandlerRegistry(logger)

	// Transaction scope for multi-step writes
	txScope := spanner.NewReadWriteTransactionScope(spannerClient)

	// Initialize repositories
	accountRepo := accountpersistence.NewSpannerRepository(spannerClient)
	basketRepo := basketpersistence.NewSpannerRepository(spannerClient)

	// Initialize modules
	// Each module subscribes to events it cares about internally
	accountCfg := account.Config{
		Repository:     accountRepo,
		TxScope:        txScope,
		EventPublisher: eventBus,
	}
	accountModule := account.New(accountCfg)

	basketCfg := basket.Config{
		Repository:      basketRepo,
		TxScope:         txScope,
		HandlerRegistry: handlerRegistry,
		EventPublisher:  eventBus,
		EventSubscriber: eventBus,
		Logger:          logger,
	}
	basketModule := basket.New(basketCfg)

	// The market catalog runs on the bounded in-memory store.
	marketCfg := market.Config{
		EventPublisher: eventBus,
	}
	marketModule := market.New(marketCfg)

	notificationCfg := notifications.Config{
		EventSubscriber: eventBus,
		Logger:          logger,
	}
	_ = notifications.New(notificationCfg)

	// Build HTTP router
	router := buildRouter(accountModule, basketModule, marketModule)

	// Apply middleware
	handler := httpserver.Middleware(router, httpserver.Recovery(logger), httpserver.Logging(logger), httpserver.CORS([]string{"*"}), httpserver.Metrics())

	// Create and start server
	cfg := httpserver.DefaultConfig()
	server := httpserver.New(cfg, handler, logger)

	// Graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")
}

// buildRouter creates the main HTTP router with all module handlers.
func buildRouter(accountModule account.Module, basketModule basket.Module, marketModule market.Module) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API version prefix
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"1.0.0"}`))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", httpserver.MetricsHandler())

	// Each module registers its own routes (same pattern as event subscriptions)
	accountModule.RegisterRoutes(mux)
	basketModule.RegisterRoutes(mux)
	marketModule.RegisterRoutes(mux)

	return mux
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
