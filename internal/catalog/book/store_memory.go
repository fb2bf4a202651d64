// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryBookRepository serves a fixed catalog from memory.
type MemoryBookRepository struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewMemoryBookRepository returns a repository holding copies of books.
func NewMemoryBookRepository(books ...*Book) *MemoryBookRepository {
	repository := &MemoryBookRepository{books: make(map[string]*Book, len(books))}
	for _, book := range books {
		clone := *book
		repository.books[book.ID] = &clone
	}
	return repository
}

func (repository *MemoryBookRepository) FindByID(_ context.Context, id string) (*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	book, ok := repository.books[id]
	if !ok {
		return nil, NotFound(id)
	}

	clone := *book
	return &clone, nil
}

func (repository *MemoryBookRepository) FindByIDs(_ context.Context, ids []string) (map[string]*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	found := make(map[string]*Book, len(ids))
	for _, id := range ids {
		if book, ok := repository.books[id]; ok {
			clone := *book
			found[id] = &clone
		}
	}
	return found, nil
}

func (repository *MemoryBookRepository) List(_ context.Context, filter Filter) ([]*Book, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var matches []*Book
	for _, book := range repository.books {
		if query == "" ||
			strings.Contains(strings.ToLower(book.Title), query) ||
			strings.Contains(strings.ToLower(book.Author), query) {
			clone := *book
			matches = append(matches, &clone)
		}
	}

	slices.SortFunc(matches, func(a, b *Book) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})

	start, end := filter.Window(len(matches))
	return matches[start:end], len(matches), nil
}
