package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	shoplabroot "github.com/set-night/shoplab"
	"github.com/set-night/shoplab/internal/config"
	"github.com/set-night/shoplab/internal/generator"
	"github.com/set-night/shoplab/internal/handler"
	"github.com/set-night/shoplab/internal/middleware"
	"github.com/set-night/shoplab/internal/repository"
	"github.com/set-night/shoplab/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Select storage backend
	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer cleanup()

	// Initialize services
	gen := generator.New(cfg)
	shoppingService := service.NewShoppingService(store, gen)

	// Initialize handler and routes
	h := handler.New(handler.Deps{
		Cfg:      cfg,
		Shopping: shoppingService,
	})

	mux := http.NewServeMux()
	h.Register(mux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           middleware.Recover(middleware.Logging(mux)),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}

// newStore builds the configured storage backend and returns it together
// with a cleanup function.
func newStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		migrationsFS, err := fs.Sub(shoplabroot.MigrationsFS, "migrations")
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("load embedded migrations: %w", err)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return repository.NewPostgresStore(pool), pool.Close, nil

	case "redis":
		store, err := repository.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case "memory":
		slog.Warn("using in-memory store, data will not survive restarts")
		return repository.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
