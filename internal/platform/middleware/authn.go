// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/shelf/internal/platform/apperr"
	"github.com/taibuivan/shelf/internal/platform/constants"
	"github.com/taibuivan/shelf/internal/platform/ctxutil"
	"github.com/taibuivan/shelf/internal/platform/metrics"
	"github.com/taibuivan/shelf/internal/platform/respond"
	"github.com/taibuivan/shelf/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. Implemented by [sec.TokenService].
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// IdentityResolver loads the current public identity of a token subject.
//
// It must return an error carrying HTTP 404 ([apperr.NotFound]) when the user
// no longer exists; any other error is treated as a system failure.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Rejections written by [Authenticate]. Codes let clients tell them apart;
// all of them are 401.
var (
	errCredentialsRequired = apperr.Unauthorized("No authorization token was found").WithCode("CREDENTIALS_REQUIRED")
	errTokenExpired        = apperr.Unauthorized("Token has expired").WithCode("TOKEN_EXPIRED")
	errTokenNotYetValid    = apperr.Unauthorized("Token is not valid yet").WithCode("TOKEN_NOT_YET_VALID")
	errInvalidToken        = apperr.Unauthorized("Invalid token").WithCode("INVALID_TOKEN")
)

// Authenticate requires a valid 'Authorization: Bearer <token>' header.
//
// # Flow
//  1. Missing header, or a header that is not a bearer credential: 401, not logged.
//  2. Expired or not-yet-valid token: 401, not logged.
//  3. Malformed token (bad signature included): 401, logged with the token and raw error.
//  4. Valid token whose subject no longer exists: 401.
//  5. Otherwise the [sec.Identity] is attached to the context and next runs.
//
// Every rejection writes exactly one response and never calls next.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Credential Extraction ──────────────────────────────────────
			token, ok := BearerToken(request)
			if !ok {
				m.RecordTokenRejection("missing")
				respond.Error(writer, request, errCredentialsRequired)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				kind := sec.KindOf(err)
				m.RecordTokenRejection(string(kind))

				switch kind {
				case sec.TokenErrorExpired:
					respond.Error(writer, request, errTokenExpired)
				case sec.TokenErrorNotYetValid:
					respond.Error(writer, request, errTokenNotYetValid)
				default:
					ctxutil.GetLogger(ctx).WarnContext(ctx, "malformed_token",
						slog.String("token", token),
						slog.String("error", err.Error()),
					)
					respond.Error(writer, request, errInvalidToken)
				}
				return
			}

			// ── 3. Subject Resolution ─────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(ctx, claims.UserID)
			if err != nil {
				if apperr.HasStatus(err, http.StatusNotFound) {
					m.RecordTokenRejection("unknown_subject")
					respond.Error(writer, request, errInvalidToken)
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", identity.ID))
			ctx = ctxutil.WithLogger(ctxutil.WithIdentity(ctx, identity), logger)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no identity.
//
// Handlers mounted behind [Authenticate] never reach this check failing; it
// protects routes that were mounted without it by mistake.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, errCredentialsRequired)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// BearerToken extracts the token from an 'Authorization: Bearer <token>' header.
// The scheme is matched case-insensitively; anything else reports false.
func BearerToken(request *http.Request) (string, bool) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
