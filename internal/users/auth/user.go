// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user registration, login and identity resolution.

# Architecture

  - Entity: [User] holds the stored credential; [PublicUser] is the only shape
    that leaves the package.
  - Strategy: [Service.Authenticate] turns a username and password into a
    public user or a single uniform rejection.
  - Delivery: [Handler] exposes /auth/register, /auth/login and /auth/me.
*/
package auth

import (
	"time"

	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID        string
	Username  string
	Salt      string
	Hash      string
	CreatedAt time.Time
}

// Credential returns the stored password credential.
func (user *User) Credential() sec.Credential {
	return sec.Credential{Salt: user.Salt, Hash: user.Hash}
}

// Public returns the projection of the user that is safe to expose.
func (user *User) Public() *PublicUser {
	return &PublicUser{ID: user.ID, Username: user.Username}
}

// PublicUser is a [User] without credential material.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Identity converts the public user into a request identity.
func (user *PublicUser) Identity() sec.Identity {
	return sec.Identity{ID: user.ID, Username: user.Username}
}

// AuthUser is the body of every successful auth response: the public user plus a fresh token.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldUser     = "user"
)

// # Domain Errors

var (
	ErrUsernameBlank      = apperr.BadRequest("USERNAME_REQUIRED", "username can't be blank")
	ErrPasswordBlank      = apperr.BadRequest("PASSWORD_REQUIRED", "password can't be blank")
	ErrPasswordWeak       = apperr.BadRequest("PASSWORD_TOO_WEAK", "password is not strong enough")
	ErrUsernameTaken      = apperr.BadRequest("USERNAME_TAKEN", "username taken")
	ErrInvalidCredentials = apperr.BadRequest("INVALID_CREDENTIALS", "username or password is invalid")
)

func userNotFound(id string) error {
	return apperr.NotFound("No user was found with the id of " + id)
}
