// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listitem

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shelf/internal/platform/request"
	"github.com/taibuivan/shelf/internal/platform/respond"
)

// Handler implements the reading-list HTTP endpoints.
//
// Every route requires an authenticated caller; mount it behind
// [middleware.Authenticate].
type Handler struct {
	itemService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{itemService: service}
}

// Routes returns the reading-list routes.
//
// # Endpoints
//   - GET    /      : Caller's items
//   - POST   /      : Add a book ({bookId})
//   - GET    /{id}  : One item
//   - PUT    /{id}  : Partial update
//   - DELETE /{id}  : Remove
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	return router
}

type createRequest struct {
	BookID string `json:"bookId"`
}

// GET /api/list-items
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.itemService.List(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldListItems: views})
}

/*
Create adds a book to the caller's list.

POST /api/list-items

Response:
  - 200: {listItem}
  - 400: missing bookId, unknown book, or the book is already listed
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.itemService.Create(request.Context(), identity, input.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldListItem: view})
}

// GET /api/list-items/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.itemService.Get(request.Context(), identity, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldListItem: view})
}

/*
Update patches rating, notes, startDate or finishDate.

PUT /api/list-items/{id}

Response:
  - 200: {listItem}
  - 400: validation failure
  - 403: item belongs to someone else
  - 404: no such item
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Access is settled before the body is read, so strangers get 403/404 not 400.
	id := requestutil.Param(request, "id")
	if err := handler.itemService.Authorize(request.Context(), identity, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.itemService.Update(request.Context(), identity, id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldListItem: view})
}

// DELETE /api/list-items/{id}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.itemService.Delete(request.Context(), identity, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{FieldSuccess: true})
}
