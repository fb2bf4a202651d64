// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, token management and the
// ownership guard.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The signing secret never leaves [TokenService]; callers
// only see issued token strings and verified [Claims].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Every error returned by [TokenService.Verify]
// matches exactly one of these with [errors.Is].
var (
	// ErrTokenMalformed covers unparsable tokens, bad signatures, wrong
	// algorithms and missing claims.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenExpired is returned when now >= exp.
	ErrTokenExpired = errors.New("sec: token has expired")

	// ErrTokenNotYetValid is returned when now < nbf, or now < iat.
	ErrTokenNotYetValid = errors.New("sec: token is not valid yet")
)

// TokenErrorKind classifies a verification failure for logging and metrics.
type TokenErrorKind string

const (
	TokenErrorNone        TokenErrorKind = ""
	TokenErrorMalformed   TokenErrorKind = "malformed"
	TokenErrorExpired     TokenErrorKind = "expired"
	TokenErrorNotYetValid TokenErrorKind = "not_yet_valid"
)

// KindOf reports which verification failure err represents.
func KindOf(err error) TokenErrorKind {
	switch {
	case err == nil:
		return TokenErrorNone
	case errors.Is(err, ErrTokenExpired):
		return TokenErrorExpired
	case errors.Is(err, ErrTokenNotYetValid):
		return TokenErrorNotYetValid
	default:
		return TokenErrorMalformed
	}
}

// Clock returns the current instant. Tests inject a fixed one.
type Clock func() time.Time

// Claims represents the payload embedded inside an identity token.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Identity returns the public identity carried by the claims.
func (claims *Claims) Identity() Identity {
	return Identity{ID: claims.UserID, Username: claims.Username}
}

// TokenConfig holds the immutable settings of a [TokenService].
type TokenConfig struct {
	// Secret is the HS256 signing key.
	Secret []byte

	// Issuer is written to and required in the 'iss' claim when non-empty.
	Issuer string

	// Validity is the distance between 'iat' and 'exp'.
	Validity time.Duration

	// Clock defaults to [time.Now].
	Clock Clock
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	validity time.Duration
	clock    Clock
	parser   *jwt.Parser
}

// NewTokenService validates the configuration and builds a [TokenService].
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if cfg.Validity < time.Second {
		return nil, errors.New("sec: token validity must be at least one second")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(clock),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}

	return &TokenService{
		secret:   cfg.Secret,
		issuer:   cfg.Issuer,
		validity: cfg.Validity,
		clock:    clock,
		parser:   jwt.NewParser(options...),
	}, nil
}

// Issue signs a token for identity valid from now until now+validity.
func (service *TokenService) Issue(identity Identity) (string, error) {
	issuedAt := service.clock()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.validity)),
		},
		UserID:   identity.ID,
		Username: identity.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity window of a token.
//
// The signature is checked before any time-based claim, so a tampered token
// is always reported as malformed even when it is also expired.
func (service *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := service.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return service.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return nil, fmt.Errorf("%w: %w", ErrTokenNotYetValid, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if !token.Valid || claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, fmt.Errorf("%w: missing or inconsistent subject", ErrTokenMalformed)
	}

	return claims, nil
}
