// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelf/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, salt, hash, created_at`

/*
Create inserts a new row.

A unique violation on username is reported as [ErrUsernameTaken]; this closes
the race between the service's existence check and the insert.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Salt,
		user.Hash,
		user.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Salt,
		&user.Hash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_id_failed", "No user was found with the id of "+id)
	}

	return user, nil
}

// FindByUsername retrieves a user record by its unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Salt,
		&user.Hash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_username_failed", "No user was found with the username "+username)
	}

	return user, nil
}
