// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listitem

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/shelf/internal/catalog/book"
	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/internal/platform/sec"
	"github.com/taibuivan/shelf/internal/platform/validate"
	"github.com/taibuivan/shelf/pkg/pointer"
	"github.com/taibuivan/shelf/pkg/slice"
	"github.com/taibuivan/shelf/pkg/uuidv7"
)

// maxNotesLength bounds the free-text notes field.
const maxNotesLength = 10000

// BookCatalog is the part of the catalog the reading list depends on.
// Implemented by [book.Service].
type BookCatalog interface {
	Get(ctx context.Context, id string) (*book.Book, error)
	Lookup(ctx context.Context, ids []string) (map[string]*book.Book, error)
}

// Service implements the reading-list use cases for an authenticated caller.
type Service struct {
	itemRepository ListItemRepository
	books          BookCatalog
	clock          sec.Clock
}

// NewService constructs a new [Service]. A nil clock means [time.Now].
func NewService(items ListItemRepository, books BookCatalog, clock sec.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{itemRepository: items, books: books, clock: clock}
}

// # Collection

// List returns the caller's items with books expanded.
func (service *Service) List(ctx context.Context, identity *sec.Identity) ([]*View, error) {
	items, err := service.itemRepository.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list_item_service_list_failed: %w", err)
	}

	bookIDs := slice.Unique(slice.Map(items, func(item *ListItem) string { return item.BookID }))

	books, err := service.books.Lookup(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("list_item_service_expand_failed: %w", err)
	}

	return slice.Map(items, func(item *ListItem) *View { return newView(item, books[item.BookID]) }), nil
}

/*
Create adds a book to the caller's reading list.

Defaults: rating [Unrated], empty notes, start date now, no finish date.

Returns:
  - *View: Created item
  - error: [ErrBookIDRequired], unknown book (400), [Duplicate] (400) or storage failures
*/
func (service *Service) Create(ctx context.Context, identity *sec.Identity, bookID string) (*View, error) {

	// 1. Input
	if bookID == "" {
		return nil, ErrBookIDRequired
	}

	// 2. Book must exist; an unknown book is a client mistake, not a missing route
	expanded, err := service.books.Get(ctx, bookID)
	if err != nil {
		if apperr.HasStatus(err, http.StatusNotFound) {
			return nil, apperr.BadRequest("BOOK_NOT_FOUND", book.NotFound(bookID).Message)
		}
		return nil, fmt.Errorf("list_item_service_book_lookup_failed: %w", err)
	}

	// 3. One item per owner and book
	_, err = service.itemRepository.FindByOwnerAndBook(ctx, identity.ID, bookID)
	if err == nil {
		return nil, Duplicate(identity.ID, bookID)
	}
	if !apperr.HasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("list_item_service_duplicate_check_failed: %w", err)
	}

	// 4. Persist
	item := &ListItem{
		ID:        uuidv7.New(),
		OwnerID:   identity.ID,
		BookID:    bookID,
		Rating:    Unrated,
		Notes:     "",
		StartDate: service.clock().UnixMilli(),
	}

	if err := service.itemRepository.Create(ctx, item); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("list_item_service_create_failed: %w", err)
	}

	return newView(item, expanded), nil
}

// # Single Item

// Get returns one of the caller's items.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*View, error) {
	item, err := service.load(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	return service.expand(ctx, item)
}

// Authorize runs the existence and ownership checks for id without reading
// anything else. Handlers call it before decoding a request body.
func (service *Service) Authorize(ctx context.Context, identity *sec.Identity, id string) error {
	_, err := service.load(ctx, identity, id)
	return err
}

/*
Update applies a partial update to one of the caller's items.

Only rating, notes and the dates can change, and finishDate may not precede
startDate. Validation runs after the existence and ownership checks so a
stranger learns nothing from 400s.
*/
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id string, patch Patch) (*View, error) {
	item, err := service.load(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if patch.Rating != nil {
		validator.Range(FieldRating, *patch.Rating, Unrated, MaxRating)
	}
	if patch.Notes != nil {
		validator.MaxLen(FieldNotes, *patch.Notes, maxNotesLength)
	}

	// Dates are checked as they will be stored, merging the patch over the item.
	startDate := item.StartDate
	pointer.Assign(&startDate, patch.StartDate)
	finishDate := item.FinishDate
	if patch.FinishDate.Set {
		finishDate = patch.FinishDate.Value
	}
	validator.Custom(FieldFinishDate, finishDate != nil && pointer.Val(finishDate) < startDate, "Must not be before startDate")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Assign(&item.Rating, patch.Rating)
	pointer.Assign(&item.Notes, patch.Notes)
	item.StartDate = startDate
	item.FinishDate = finishDate

	if err := service.itemRepository.Update(ctx, item); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("list_item_service_update_failed: %w", err)
	}

	return service.expand(ctx, item)
}

// Delete removes one of the caller's items.
func (service *Service) Delete(ctx context.Context, identity *sec.Identity, id string) error {
	if _, err := service.load(ctx, identity, id); err != nil {
		return err
	}

	if err := service.itemRepository.Delete(ctx, id); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("list_item_service_delete_failed: %w", err)
	}
	return nil
}

// load enforces the access order: existence (404) before ownership (403).
func (service *Service) load(ctx context.Context, identity *sec.Identity, id string) (*ListItem, error) {
	if !uuidv7.Valid(id) {
		return nil, NotFound(id)
	}

	item, err := service.itemRepository.FindByID(ctx, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("list_item_service_load_failed: %w", err)
	}

	if decision := sec.Authorize(identity, item); !decision.Allowed {
		return nil, apperr.Forbidden(decision.Reason)
	}

	return item, nil
}

func (service *Service) expand(ctx context.Context, item *ListItem) (*View, error) {
	expanded, err := service.books.Get(ctx, item.BookID)
	if err != nil && !apperr.HasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("list_item_service_expand_failed: %w", err)
	}
	return newView(item, expanded), nil
}
