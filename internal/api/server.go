// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/shelf/internal/catalog/book"
	"github.com/taibuivan/shelf/internal/library/listitem"
	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/internal/platform/config"
	"github.com/taibuivan/shelf/internal/platform/constants"
	"github.com/taibuivan/shelf/internal/platform/metrics"
	"github.com/taibuivan/shelf/internal/platform/middleware"
	"github.com/taibuivan/shelf/internal/platform/respond"
	"github.com/taibuivan/shelf/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	// Metrics serves the Prometheus registry on /metrics.
	Metrics http.Handler

	// Auth handles /api/auth (register, login, me).
	Auth *auth.Handler

	// Books serves the read-only catalog.
	Books *book.Handler

	// ListItems serves the caller's reading list.
	ListItems *listitem.Handler
}

// Security holds the collaborators of the bearer authentication middleware.
type Security struct {
	Verifier middleware.TokenVerifier
	Resolver middleware.IdentityResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background work such as rate-limit cleanup.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics, security Security, h Handlers) *Server {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg.TrustedProxies()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Instrument(m))
	r.Use(middleware.ExposeInternals(!cfg.IsProduction()))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, &apperr.AppError{
			Code:       "METHOD_NOT_ALLOWED",
			Message:    "Method not allowed",
			HTTPStatus: http.StatusMethodNotAllowed,
		})
	})

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", h.Metrics)

	// # Application API
	authenticate := middleware.Authenticate(security.Verifier, security.Resolver, m)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(authenticate))

		// Everything else requires a bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(authenticate, middleware.RequireAuth)
			protected.Mount("/books", h.Books.Routes())
			protected.Mount("/list-items", h.ListItems.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
