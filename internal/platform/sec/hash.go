// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// saltBytes is the amount of random data mixed into every credential.
	saltBytes = 16

	// derivedKeyBytes is the PBKDF2 output length. Stored hashes are twice
	// this long once hex encoded.
	derivedKeyBytes = 512
)

// Credential is the stored form of a password. The plaintext is never kept.
type Credential struct {
	Salt string
	Hash string
}

// Hasher derives and verifies salted PBKDF2-SHA512 password credentials.
//
// The iteration count is fixed at construction. Production wiring uses a high
// value; tests use 1 so that suites stay fast.
type Hasher struct {
	iterations int
}

// NewHasher creates a Hasher that runs the given number of PBKDF2 iterations.
func NewHasher(iterations int) (*Hasher, error) {
	if iterations < 1 {
		return nil, errors.New("sec: hasher iterations must be at least 1")
	}
	return &Hasher{iterations: iterations}, nil
}

// Derive generates a fresh random salt and hashes the password with it.
func (hasher *Hasher) Derive(password string) (Credential, error) {
	salt, err := GenerateSecureToken(saltBytes)
	if err != nil {
		return Credential{}, fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	return Credential{
		Salt: salt,
		Hash: hasher.hash(password, salt),
	}, nil
}

// Verify re-derives the hash with the stored salt and compares it in constant time.
func (hasher *Hasher) Verify(password string, credential Credential) bool {
	if credential.Salt == "" || credential.Hash == "" {
		return false
	}

	candidate := hasher.hash(password, credential.Salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(credential.Hash)) == 1
}

func (hasher *Hasher) hash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hasher.iterations, derivedKeyBytes, sha512.New)
	return hex.EncodeToString(key)
}

// GenerateSecureToken returns n cryptographically random bytes, hex encoded.
func GenerateSecureToken(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
