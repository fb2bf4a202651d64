// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelf/internal/platform/dberr"
)

// PostgresBookRepository implements [BookRepository] on the books table.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL implementation of the BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

const bookColumns = `id, title, author, cover_image_url, page_count, publisher, synopsis`

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.CoverImageURL,
		&book.PageCount,
		&book.Publisher,
		&book.Synopsis,
	)
	return book, err
}

// FindByID retrieves a single catalog entry.
func (repository *PostgresBookRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_book_repo_find_by_id_failed", NotFound(id).Message)
	}
	return book, nil
}

// FindByIDs batches the lookup used to expand list items.
func (repository *PostgresBookRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*Book, error) {
	found := make(map[string]*Book, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = ANY($1)`

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres_book_repo_find_by_ids_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		found[book.ID] = book
	}

	return found, rows.Err()
}

/*
List performs a case-insensitive substring search on title and author.

The total is computed with a window function so a page and its count come
back in one round trip.
*/
func (repository *PostgresBookRepository) List(ctx context.Context, filter Filter) ([]*Book, int, error) {
	const query = `
		SELECT ` + bookColumns + `, COUNT(*) OVER() AS total
		FROM books
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
		ORDER BY title, id
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, escapeLike(strings.TrimSpace(filter.Query)), filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		books []*Book
		total int
	)
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.CoverImageURL,
			&book.PageCount,
			&book.Publisher,
			&book.Synopsis,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_book_repo_scan_failed: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_repo_list_failed: %w", err)
	}

	// A page past the end has no rows to carry the window total.
	if len(books) == 0 && filter.Offset() > 0 {
		const countQuery = `
			SELECT COUNT(*) FROM books
			WHERE $1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'`
		if err := repository.pool.QueryRow(ctx, countQuery, escapeLike(strings.TrimSpace(filter.Query))).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("postgres_book_repo_count_failed: %w", err)
		}
	}

	return books, total, nil
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
