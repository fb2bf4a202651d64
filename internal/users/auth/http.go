// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/shelf/internal/platform/request"
	"github.com/taibuivan/shelf/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the account HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the account routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Exchanges credentials for a token.
//   - GET  /me       : Returns the caller with a fresh token (requires authenticate).
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(authenticate, middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

/*
Register handles the creation of a new user account.

POST /api/auth/register

Response:
  - 200: {user: {id, username, token}}
  - 400: blank field, weak password or username taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}

/*
Login authenticates a user.

POST /api/auth/login

Response:
  - 200: {user: {id, username, token}}
  - 400: blank field or "username or password is invalid"
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}

// GET /api/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}
