// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/internal/platform/metrics"
	"github.com/taibuivan/shelf/internal/platform/sec"
	"github.com/taibuivan/shelf/internal/platform/validate"
	"github.com/taibuivan/shelf/pkg/uuidv7"
)

// # Contracts & Types

// CredentialHasher derives and checks password credentials. Implemented by [sec.Hasher].
type CredentialHasher interface {
	Derive(password string) (sec.Credential, error)
	Verify(password string, credential sec.Credential) bool
}

// TokenIssuer signs identity tokens. Implemented by [sec.TokenService].
type TokenIssuer interface {
	Issue(identity sec.Identity) (string, error)
}

// Service implements the account use cases.
//
// All collaborators are injected; the service itself holds no configuration
// and never branches on the runtime environment.
type Service struct {
	userRepository UserRepository
	hasher         CredentialHasher
	tokens         TokenIssuer
	metrics        *metrics.Metrics
	clock          sec.Clock
}

// NewService constructs a new [Service]. A nil metrics disables instrumentation;
// a nil clock means [time.Now].
func NewService(users UserRepository, hasher CredentialHasher, tokens TokenIssuer, m *metrics.Metrics, clock sec.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		userRepository: users,
		hasher:         hasher,
		tokens:         tokens,
		metrics:        m,
		clock:          clock,
	}
}

// NormalizeUsername trims surrounding whitespace and applies Unicode NFC so that
// visually identical names map to one account.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (credentials Credentials) check() (string, error) {
	username := NormalizeUsername(credentials.Username)
	if username == "" {
		return "", ErrUsernameBlank
	}
	if credentials.Password == "" {
		return "", ErrPasswordBlank
	}
	return username, nil
}

// # Registration Flow

/*
Register creates an account and returns it with a fresh token.

Checks run in a fixed order: blank username, blank password, password
strength, username availability.

Returns:
  - *AuthUser: Created account and token
  - error: One of the Err* domain errors, or storage failures
*/
func (service *Service) Register(ctx context.Context, input Credentials) (*AuthUser, error) {

	// 1. Input Checks
	username, err := input.check()
	if err != nil {
		return nil, err
	}
	if !validate.PasswordAllowed(input.Password) {
		return nil, ErrPasswordWeak
	}

	// 2. Availability
	_, err = service.userRepository.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !apperr.HasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	// 3. Credential Derivation
	credential, err := service.hasher.Derive(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:        uuidv7.New(),
		Username:  username,
		Salt:      credential.Salt,
		Hash:      credential.Hash,
		CreatedAt: service.clock().UTC(),
	}

	// 4. Persistence (the store re-checks uniqueness atomically)
	if err := service.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return service.withToken(user.Public())
}

// # Authentication Flow

/*
Authenticate is the username/password strategy.

Unknown usernames and wrong passwords produce the same [ErrInvalidCredentials]
so callers cannot enumerate accounts. Storage failures are returned wrapped.
*/
func (service *Service) Authenticate(ctx context.Context, username, password string) (*PublicUser, error) {
	user, err := service.userRepository.FindByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if apperr.HasStatus(err, http.StatusNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_authenticate_failed: %w", err)
	}

	if !service.hasher.Verify(password, user.Credential()) {
		return nil, ErrInvalidCredentials
	}

	return user.Public(), nil
}

// Login validates the input, runs [Service.Authenticate] and issues a token.
func (service *Service) Login(ctx context.Context, input Credentials) (*AuthUser, error) {
	username, err := input.check()
	if err != nil {
		return nil, err
	}

	user, err := service.Authenticate(ctx, username, input.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		service.metrics.RecordLogin("rejected")
		return nil, err
	case err != nil:
		service.metrics.RecordLogin("error")
		return nil, err
	}

	service.metrics.RecordLogin("success")
	return service.withToken(user)
}

// # Identity

// Me reloads the caller's account and returns it with a newly issued token.
func (service *Service) Me(ctx context.Context, identity *sec.Identity) (*AuthUser, error) {
	user, err := service.userRepository.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	return service.withToken(user.Public())
}

// ResolveIdentity loads the current identity of a token subject.
// It returns a 404 [apperr.AppError] when the account no longer exists.
func (service *Service) ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	identity := user.Public().Identity()
	return &identity, nil
}

func (service *Service) withToken(user *PublicUser) (*AuthUser, error) {
	token, err := service.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthUser{ID: user.ID, Username: user.Username, Token: token}, nil
}
