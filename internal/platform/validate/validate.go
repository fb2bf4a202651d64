// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus the password
// strength policy.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/taibuivan/shelf/internal/platform/apperr"
)

var (
	// Password character classes. "_" is a word character, so it does not
	// count as a symbol.
	passwordSymbol = regexp.MustCompile(`\W`)
	passwordDigit  = regexp.MustCompile(`\d`)
	passwordUpper  = regexp.MustCompile(`[A-Z]`)
	passwordLower  = regexp.MustCompile(`[a-z]`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("INVALID_JSON", "Invalid JSON payload")
)

// minPasswordLength is exclusive: passwords must be longer than this.
const minPasswordLength = 6

// PasswordAllowed reports whether password satisfies the strength policy:
// longer than six characters with at least one symbol, digit, upper-case and
// lower-case letter.
func PasswordAllowed(password string) bool {
	return utf8.RuneCountInString(password) > minPasswordLength &&
		passwordSymbol.MatchString(password) &&
		passwordDigit.MatchString(password) &&
		passwordUpper.MatchString(password) &&
		passwordLower.MatchString(password)
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("finishDate", finish.Before(start), "Must not be before startDate")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
