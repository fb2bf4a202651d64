// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelf/internal/platform/sec"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "shelf.test"
	testValidity = 60 * 24 * time.Hour
)

var testEpoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// movableClock returns a clock and a setter so a single service can be
// observed at different instants.
func movableClock(start time.Time) (sec.Clock, func(time.Time)) {
	current := start
	return func() time.Time { return current }, func(next time.Time) { current = next }
}

func newTestTokenService(t *testing.T, clock sec.Clock) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   []byte(testSecret),
		Issuer:   testIssuer,
		Validity: testValidity,
		Clock:    clock,
	})
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that an issued token decodes to the same identity and window.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	clock, _ := movableClock(testEpoch)
	service := newTestTokenService(t, clock)

	token, err := service.Issue(sec.Identity{ID: "user-123", Username: "alice"})
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, testEpoch.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, testValidity, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, sec.Identity{ID: "user-123", Username: "alice"}, claims.Identity())
}

/*
TestTokenService_ExpiryBoundary checks that a token is valid strictly before exp and expired from exp on.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	clock, setNow := movableClock(testEpoch)
	service := newTestTokenService(t, clock)

	token, err := service.Issue(sec.Identity{ID: "user-1", Username: "bob"})
	require.NoError(t, err)
	expiresAt := testEpoch.Add(testValidity)

	tests := []struct {
		name string
		now  time.Time
		kind sec.TokenErrorKind
	}{
		{"at_issue", testEpoch, sec.TokenErrorNone},
		{"one_second_before_expiry", expiresAt.Add(-time.Second), sec.TokenErrorNone},
		{"at_expiry", expiresAt, sec.TokenErrorExpired},
		{"expired_1000s_ago", expiresAt.Add(1000 * time.Second), sec.TokenErrorExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setNow(tt.now)
			_, err := service.Verify(token)
			assert.Equal(t, tt.kind, sec.KindOf(err))
			if tt.kind == sec.TokenErrorExpired {
				assert.ErrorIs(t, err, sec.ErrTokenExpired)
			}
		})
	}
}

/*
TestTokenService_NotYetValid covers both a future 'nbf' and a future 'iat'.
*/
func TestTokenService_NotYetValid(t *testing.T) {
	clock, setNow := movableClock(testEpoch)
	service := newTestTokenService(t, clock)

	t.Run("future_issued_at", func(t *testing.T) {
		setNow(testEpoch.Add(time.Hour))
		token, err := service.Issue(sec.Identity{ID: "user-1", Username: "bob"})
		require.NoError(t, err)

		setNow(testEpoch)
		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenNotYetValid)
	})

	t.Run("future_not_before", func(t *testing.T) {
		setNow(testEpoch)
		claims := sec.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				Issuer:    testIssuer,
				IssuedAt:  jwt.NewNumericDate(testEpoch),
				NotBefore: jwt.NewNumericDate(testEpoch.Add(time.Minute)),
				ExpiresAt: jwt.NewNumericDate(testEpoch.Add(time.Hour)),
			},
			UserID:   "user-1",
			Username: "bob",
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.Equal(t, sec.TokenErrorNotYetValid, sec.KindOf(err))

		setNow(testEpoch.Add(time.Minute))
		_, err = service.Verify(token)
		assert.NoError(t, err)
	})
}

/*
TestTokenService_Malformed covers tampering, foreign secrets and garbage input.
*/
func TestTokenService_Malformed(t *testing.T) {
	clock, _ := movableClock(testEpoch)
	service := newTestTokenService(t, clock)

	token, err := service.Issue(sec.Identity{ID: "user-1", Username: "bob"})
	require.NoError(t, err)

	foreign, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   []byte("another-secret"),
		Issuer:   testIssuer,
		Validity: testValidity,
		Clock:    clock,
	})
	require.NoError(t, err)
	foreignToken, err := foreign.Issue(sec.Identity{ID: "user-1", Username: "bob"})
	require.NoError(t, err)

	// Flip the first character of the signature segment.
	signatureStart := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[signatureStart] == 'A' {
		flipped = 'B'
	}
	tampered := token[:signatureStart] + string(flipped) + token[signatureStart+1:]

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, sec.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(testEpoch),
			ExpiresAt: jwt.NewNumericDate(testEpoch.Add(time.Hour)),
		},
		UserID: "user-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "garbage"},
		{"empty", ""},
		{"three_segments_of_noise", "not.a.jwt"},
		{"wrong_secret", foreignToken},
		{"mutated_signature", tampered},
		{"wrong_algorithm", hs384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
			assert.Equal(t, sec.TokenErrorMalformed, sec.KindOf(err))
			assert.NotContains(t, err.Error(), testSecret)
		})
	}
}

/*
TestTokenService_TamperedAndExpired verifies that signature failures win over expiry.
*/
func TestTokenService_TamperedAndExpired(t *testing.T) {
	clock, setNow := movableClock(testEpoch)
	service := newTestTokenService(t, clock)

	token, err := service.Issue(sec.Identity{ID: "user-1", Username: "bob"})
	require.NoError(t, err)

	setNow(testEpoch.Add(testValidity + time.Hour))
	_, err = service.Verify(token + "x")
	assert.Equal(t, sec.TokenErrorMalformed, sec.KindOf(err))
}

func TestNewTokenService_InvalidConfig(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{Validity: time.Hour})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{Secret: []byte("s"), Validity: 0})
	assert.Error(t, err)
}
