// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/shelf/pkg/pagination"
)

// Service implements the catalog use cases.
type Service struct {
	bookRepository BookRepository
}

// NewService constructs a new [Service].
func NewService(repository BookRepository) *Service {
	return &Service{bookRepository: repository}
}

// Get returns one book or a 404.
func (service *Service) Get(ctx context.Context, id string) (*Book, error) {
	return service.bookRepository.FindByID(ctx, id)
}

// Lookup returns the existing books among ids, keyed by id.
func (service *Service) Lookup(ctx context.Context, ids []string) (map[string]*Book, error) {
	return service.bookRepository.FindByIDs(ctx, ids)
}

// Search lists one page of books matching the filter.
func (service *Service) Search(ctx context.Context, filter Filter) ([]*Book, pagination.Meta, error) {
	books, total, err := service.bookRepository.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	// Encode an empty page as [] rather than null.
	if books == nil {
		books = []*Book{}
	}

	return books, pagination.NewMeta(filter.Params, total), nil
}
