// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listitem

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryListItemRepository keeps reading lists in process memory.
type MemoryListItemRepository struct {
	mu    sync.RWMutex
	items map[string]*ListItem
}

// NewMemoryListItemRepository returns an empty repository.
func NewMemoryListItemRepository() *MemoryListItemRepository {
	return &MemoryListItemRepository{items: make(map[string]*ListItem)}
}

func clone(item *ListItem) *ListItem {
	copied := *item
	if item.FinishDate != nil {
		finish := *item.FinishDate
		copied.FinishDate = &finish
	}
	return &copied
}

func (repository *MemoryListItemRepository) FindByID(_ context.Context, id string) (*ListItem, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	item, ok := repository.items[id]
	if !ok {
		return nil, NotFound(id)
	}
	return clone(item), nil
}

func (repository *MemoryListItemRepository) FindByOwnerAndBook(_ context.Context, ownerID, bookID string) (*ListItem, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, item := range repository.items {
		if item.OwnerID == ownerID && item.BookID == bookID {
			return clone(item), nil
		}
	}
	return nil, NotFound(bookID)
}

func (repository *MemoryListItemRepository) ListByOwner(_ context.Context, ownerID string) ([]*ListItem, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	owned := []*ListItem{}
	for _, item := range repository.items {
		if item.OwnerID == ownerID {
			owned = append(owned, clone(item))
		}
	}

	slices.SortFunc(owned, func(a, b *ListItem) int {
		return cmp.Or(cmp.Compare(a.StartDate, b.StartDate), cmp.Compare(a.ID, b.ID))
	})
	return owned, nil
}

func (repository *MemoryListItemRepository) Create(_ context.Context, item *ListItem) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.items {
		if existing.OwnerID == item.OwnerID && existing.BookID == item.BookID {
			return Duplicate(item.OwnerID, item.BookID)
		}
	}

	repository.items[item.ID] = clone(item)
	return nil
}

func (repository *MemoryListItemRepository) Update(_ context.Context, item *ListItem) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.items[item.ID]
	if !ok {
		return NotFound(item.ID)
	}

	updated := clone(item)
	updated.OwnerID = existing.OwnerID
	updated.BookID = existing.BookID
	repository.items[item.ID] = updated
	return nil
}

func (repository *MemoryListItemRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[id]; !ok {
		return NotFound(id)
	}
	delete(repository.items, id)
	return nil
}
