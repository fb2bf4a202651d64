// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// BookRepository defines the read access contract for the catalog.
type BookRepository interface {

	/*
		FindByID returns one book.

		Returns:
		  - *Book: Hydrated entity
		  - error: [NotFound] or storage failures
	*/
	FindByID(ctx context.Context, id string) (*Book, error)

	/*
		FindByIDs returns the books that exist among ids, keyed by id.
		Unknown ids are skipped, not reported.
	*/
	FindByIDs(ctx context.Context, ids []string) (map[string]*Book, error)

	/*
		List returns one page of books matching the filter, ordered by title,
		together with the total number of matches.
	*/
	List(ctx context.Context, filter Filter) ([]*Book, int, error)
}
