// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listitem

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelf/internal/platform/dberr"
)

// PostgresListItemRepository implements [ListItemRepository] on the list_items table.
type PostgresListItemRepository struct {
	pool *pgxpool.Pool
}

// NewListItemRepository creates a new PostgreSQL implementation of the ListItemRepository.
func NewListItemRepository(pool *pgxpool.Pool) *PostgresListItemRepository {
	return &PostgresListItemRepository{pool: pool}
}

const listItemColumns = `id, owner_id, book_id, rating, notes, start_date, finish_date`

func scanListItem(row pgx.Row) (*ListItem, error) {
	item := &ListItem{}
	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.BookID,
		&item.Rating,
		&item.Notes,
		&item.StartDate,
		&item.FinishDate,
	)
	return item, err
}

func (repository *PostgresListItemRepository) FindByID(ctx context.Context, id string) (*ListItem, error) {
	const query = `SELECT ` + listItemColumns + ` FROM list_items WHERE id = $1`

	item, err := scanListItem(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_list_item_repo_find_by_id_failed", NotFound(id).Message)
	}
	return item, nil
}

func (repository *PostgresListItemRepository) FindByOwnerAndBook(ctx context.Context, ownerID, bookID string) (*ListItem, error) {
	const query = `SELECT ` + listItemColumns + ` FROM list_items WHERE owner_id = $1 AND book_id = $2`

	item, err := scanListItem(repository.pool.QueryRow(ctx, query, ownerID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_list_item_repo_find_by_owner_and_book_failed", NotFound(bookID).Message)
	}
	return item, nil
}

func (repository *PostgresListItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*ListItem, error) {
	const query = `
		SELECT ` + listItemColumns + `
		FROM list_items
		WHERE owner_id = $1
		ORDER BY start_date, id`

	rows, err := repository.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_list_item_repo_list_failed: %w", err)
	}
	defer rows.Close()

	items := []*ListItem{}
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_list_item_repo_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

/*
Create inserts a row. The (owner_id, book_id) unique constraint backs the
service-level duplicate check.
*/
func (repository *PostgresListItemRepository) Create(ctx context.Context, item *ListItem) error {
	const query = `
		INSERT INTO list_items (` + listItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.BookID,
		item.Rating,
		item.Notes,
		item.StartDate,
		item.FinishDate,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return Duplicate(item.OwnerID, item.BookID)
		}
		return fmt.Errorf("postgres_list_item_repo_create_failed: %w", err)
	}
	return nil
}

// Update writes the mutable columns only; owner and book never change.
func (repository *PostgresListItemRepository) Update(ctx context.Context, item *ListItem) error {
	const query = `
		UPDATE list_items
		SET rating = $2, notes = $3, start_date = $4, finish_date = $5
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query,
		item.ID,
		item.Rating,
		item.Notes,
		item.StartDate,
		item.FinishDate,
	)
	if err != nil {
		return fmt.Errorf("postgres_list_item_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(item.ID)
	}
	return nil
}

func (repository *PostgresListItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM list_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_list_item_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(id)
	}
	return nil
}
