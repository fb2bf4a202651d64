// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listitem

import "context"

// ListItemRepository defines the data access contract for reading lists.
//
// Single-item lookups return [NotFound] when nothing matches.
type ListItemRepository interface {
	FindByID(ctx context.Context, id string) (*ListItem, error)

	// FindByOwnerAndBook returns the owner's item for a book, or [NotFound].
	FindByOwnerAndBook(ctx context.Context, ownerID, bookID string) (*ListItem, error)

	// ListByOwner returns the owner's items ordered by start date, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*ListItem, error)

	// Create stores a new item; a second item for the same owner and book fails with [Duplicate].
	Create(ctx context.Context, item *ListItem) error

	// Update replaces the mutable fields (rating, notes, dates).
	Update(ctx context.Context, item *ListItem) error

	Delete(ctx context.Context, id string) error
}
