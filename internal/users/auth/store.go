// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups return an [apperr.AppError] with HTTP 404 when no account matches;
// any other error is a storage failure.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or storage failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given (normalised) username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or storage failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: [ErrUsernameTaken] on a duplicate username, or storage failures
	*/
	Create(ctx context.Context, user *User) error
}
