// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Partial-update payloads decode absent JSON fields as nil pointers; these
helpers keep the patching code free of repetitive nil checks.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
  - Assign: Copies a non-nil value onto a destination.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Assign stores *src into *dst when src is non-nil and reports whether it did.
func Assign[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}
