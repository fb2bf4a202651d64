// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listitem implements the personal reading list.

A list item links one user to one catalog book and records a rating, notes and
reading dates. Every operation on a single item checks existence first (404)
and ownership second (403) through [sec.Authorize].

Dates are Unix epoch milliseconds on the wire and in storage.
*/
package listitem

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/shelf/internal/catalog/book"
	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/pkg/pointer"
)

// # Domain Entities

// Unrated is the rating of an item the owner has not rated yet.
const Unrated = -1

// MaxRating is the highest accepted rating.
const MaxRating = 5

// ListItem is one entry of a user's reading list.
type ListItem struct {
	ID         string
	OwnerID    string
	BookID     string
	Rating     int
	Notes      string
	StartDate  int64
	FinishDate *int64
}

// OwnerRef implements [sec.Owned].
func (item *ListItem) OwnerRef() string { return item.OwnerID }

// ResourceKind implements [sec.Owned].
func (item *ListItem) ResourceKind() string { return "list item" }

// ResourceRef implements [sec.Owned].
func (item *ListItem) ResourceRef() string { return item.ID }

// View is the response shape of a list item, with its book expanded.
type View struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"ownerId"`
	BookID     string     `json:"bookId"`
	Rating     int        `json:"rating"`
	Notes      string     `json:"notes"`
	StartDate  int64      `json:"startDate"`
	FinishDate *int64     `json:"finishDate"`
	Book       *book.Book `json:"book"`
}

func newView(item *ListItem, expanded *book.Book) *View {
	return &View{
		ID:         item.ID,
		OwnerID:    item.OwnerID,
		BookID:     item.BookID,
		Rating:     item.Rating,
		Notes:      item.Notes,
		StartDate:  item.StartDate,
		FinishDate: item.FinishDate,
		Book:       expanded,
	}
}

// # Updates

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Rating     *int       `json:"rating"`
	Notes      *string    `json:"notes"`
	StartDate  *int64     `json:"startDate"`
	FinishDate NullableMs `json:"finishDate"`
}

// NullableMs distinguishes an absent JSON field from an explicit null.
type NullableMs struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON implements [json.Unmarshaler]. It only runs when the field is present.
func (n *NullableMs) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var value int64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = pointer.To(value)
	return nil
}

// # Field Identifiers

const (
	FieldListItem   = "listItem"
	FieldListItems  = "listItems"
	FieldBookID     = "bookId"
	FieldRating     = "rating"
	FieldNotes      = "notes"
	FieldFinishDate = "finishDate"
	FieldSuccess    = "success"
)

// # Domain Errors

// ErrBookIDRequired is returned when creating an item without a book.
var ErrBookIDRequired = apperr.BadRequest("BOOK_ID_REQUIRED", "No bookId provided")

// NotFound is the error returned for an unknown list item id.
func NotFound(id string) *apperr.AppError {
	return apperr.NotFound("No list item was found with the id of " + id)
}

// Duplicate is the error returned when the owner already tracks the book.
func Duplicate(ownerID, bookID string) *apperr.AppError {
	return apperr.BadRequest("LIST_ITEM_EXISTS",
		fmt.Sprintf("User %s already has a list item for the book with the ID %s", ownerID, bookID))
}
