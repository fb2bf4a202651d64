// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements the read-only book catalog.

Books are referenced by list items and expanded into their responses. The
catalog supports substring search with page-based pagination and a Redis
read-through cache for single-book lookups.
*/
package book

import (
	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/pkg/pagination"
)

// # Domain Entities

// Book is a catalog entry.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImageURL string `json:"coverImageUrl"`
	PageCount     int    `json:"pageCount"`
	Publisher     string `json:"publisher"`
	Synopsis      string `json:"synopsis"`
}

// Filter narrows a catalog listing.
type Filter struct {
	// Query matches title or author, case-insensitively. Empty matches everything.
	Query string
	pagination.Params
}

// # Field Identifiers

const (
	FieldBook  = "book"
	FieldBooks = "books"
	FieldMeta  = "meta"
)

// NotFound is the error returned for an unknown book id.
func NotFound(id string) *apperr.AppError {
	return apperr.NotFound("No book was found with the id of " + id)
}
