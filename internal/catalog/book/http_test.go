// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelf/internal/catalog/book"
)

func newBookRouter() http.Handler {
	service := book.NewService(book.NewMemoryBookRepository(book.DefaultCatalog()...))
	router := chi.NewRouter()
	router.Mount("/books", book.NewHandler(service).Routes())
	return router
}

func TestHandler_Search(t *testing.T) {
	recorder := httptest.NewRecorder()
	newBookRouter().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books?query=the&limit=2", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Books []book.Book `json:"books"`
		Meta  struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	// "the" matches three titles.
	assert.Len(t, body.Books, 2)
	assert.Equal(t, 3, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestHandler_SearchEmptyPage(t *testing.T) {
	recorder := httptest.NewRecorder()
	newBookRouter().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books?query=zzz", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"books":[]`)
}

func TestHandler_Get(t *testing.T) {
	router := newBookRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books/bk-0002", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"coverImageUrl"`)
	assert.Contains(t, recorder.Body.String(), `"title":"Dune"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books/nope", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "No book was found with the id of nope")
}
