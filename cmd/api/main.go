// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Shelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and an optional .env file).
//  3. Select the storage backend: in-memory, or PostgreSQL with migrations.
//  4. Connect to Redis when configured and put the book cache in front of the catalog.
//  5. Wire security, services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taibuivan/shelf/internal/api"
	"github.com/taibuivan/shelf/internal/catalog/book"
	"github.com/taibuivan/shelf/internal/library/listitem"
	"github.com/taibuivan/shelf/internal/platform/config"
	"github.com/taibuivan/shelf/internal/platform/constants"
	"github.com/taibuivan/shelf/internal/platform/metrics"
	"github.com/taibuivan/shelf/internal/platform/migration"
	pgstore "github.com/taibuivan/shelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/shelf/internal/platform/redis"
	"github.com/taibuivan/shelf/internal/platform/sec"
	"github.com/taibuivan/shelf/internal/users/auth"
)

// stores groups the repository implementations selected at startup.
type stores struct {
	users     auth.UserRepository
	books     book.BookRepository
	listItems listitem.ListItemRepository
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", err))
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
	)

	// Root context for background work; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Metrics ────────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// ── 4. Storage ────────────────────────────────────────────────────────
	var health api.HealthDependencies
	var repositories stores

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repositories = stores{
			users:     auth.NewUserRepository(pool),
			books:     book.NewBookRepository(pool),
			listItems: listitem.NewListItemRepository(pool),
		}
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	default:
		log.Warn("using_in_memory_store", slog.String("hint", "data is lost on restart"))
		repositories = stores{
			users:     auth.NewMemoryUserRepository(),
			books:     book.NewMemoryBookRepository(book.DefaultCatalog()...),
			listItems: listitem.NewMemoryListItemRepository(),
		}
	}

	// ── 5. Redis (optional) ───────────────────────────────────────────────
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		repositories.books = book.NewCachedBookRepository(repositories.books, rdb, cfg.BookCacheTTL, appMetrics)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 6. Security ───────────────────────────────────────────────────────
	hasher, err := sec.NewHasher(cfg.PasswordIterations)
	must(log, err, "initialize password hasher")

	tokens, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   constants.AuthIssuer,
		Validity: cfg.TokenValidity,
	})
	must(log, err, "initialize token service")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(repositories.users, hasher, tokens, appMetrics, nil)
	bookService := book.NewService(repositories.books)
	listItemService := listitem.NewService(repositories.listItems, bookService, nil)

	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(registry),
		Auth:      auth.NewHandler(authService),
		Books:     book.NewHandler(bookService),
		ListItems: listitem.NewHandler(listItemService),
	}
	security := api.Security{Verifier: tokens, Resolver: authService}

	server := api.NewServer(rootCtx, cfg, log, appMetrics, security, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
