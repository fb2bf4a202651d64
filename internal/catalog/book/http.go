// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shelf/internal/platform/request"
	"github.com/taibuivan/shelf/internal/platform/respond"
	"github.com/taibuivan/shelf/pkg/pagination"
)

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// Routes returns the catalog routes. The caller decides which middleware guards them.
//
// # Endpoints
//   - GET /      : Search (?query=&page=&limit=)
//   - GET /{id}  : Single book
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	router.Get("/{id}", handler.get)
	return router
}

/*
Search lists catalog entries.

GET /api/books

Response:
  - 200: {books: [...], meta: {page, limit, total, totalPages}}
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	books, meta, err := handler.bookService.Search(request.Context(), Filter{
		Query:  query.Get("query"),
		Params: pagination.FromQuery(query),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldBooks: books, FieldMeta: meta})
}

// GET /api/books/{id}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.bookService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldBook: book})
}
