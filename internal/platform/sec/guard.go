// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # Ownership

// Owned is implemented by every entity that belongs to exactly one user.
type Owned interface {
	// OwnerRef returns the id of the owning user.
	OwnerRef() string

	// ResourceKind is a human-readable noun used in denial messages ("list item").
	ResourceKind() string

	// ResourceRef returns the entity's own id.
	ResourceRef() string
}

// Decision is the outcome of [Authorize].
type Decision struct {
	Allowed bool

	// Reason names the acting identity and the resource when access is denied.
	// It never contains credential material.
	Reason string
}

// Authorize allows access iff the identity owns the resource.
//
// Callers must check that the resource exists first; a missing resource is a
// 404, never an authorization decision.
func Authorize(identity *Identity, resource Owned) Decision {
	if identity != nil && identity.ID != "" && identity.ID == resource.OwnerRef() {
		return Decision{Allowed: true}
	}

	actor := ""
	if identity != nil {
		actor = identity.ID
	}

	return Decision{
		Reason: fmt.Sprintf("User with id %s is not authorized to access the %s %s",
			actor, resource.ResourceKind(), resource.ResourceRef()),
	}
}
