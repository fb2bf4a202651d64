// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/internal/platform/sec"
)

type fakeResource struct {
	id    string
	owner string
}

func (resource fakeResource) OwnerRef() string     { return resource.owner }
func (resource fakeResource) ResourceKind() string { return "list item" }
func (resource fakeResource) ResourceRef() string  { return resource.id }

/*
TestAuthorize checks the owner rule and the content of the denial reason.
*/
func TestAuthorize(t *testing.T) {
	resource := fakeResource{id: "item-9", owner: "user-a"}

	tests := []struct {
		name     string
		identity *sec.Identity
		allowed  bool
	}{
		{"owner", &sec.Identity{ID: "user-a", Username: "alice"}, true},
		{"stranger", &sec.Identity{ID: "user-b", Username: "bob"}, false},
		{"anonymous", nil, false},
		{"empty_id", &sec.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := sec.Authorize(tt.identity, resource)
			assert.Equal(t, tt.allowed, decision.Allowed)

			if tt.allowed {
				assert.Empty(t, decision.Reason)
				return
			}
			assert.Contains(t, decision.Reason, "item-9")
			if tt.identity != nil && tt.identity.ID != "" {
				assert.Equal(t,
					"User with id "+tt.identity.ID+" is not authorized to access the list item item-9",
					decision.Reason)
			}
		})
	}
}

func TestAuthorize_EmptyOwnerNeverMatchesEmptyIdentity(t *testing.T) {
	decision := sec.Authorize(&sec.Identity{}, fakeResource{id: "x"})
	assert.False(t, decision.Allowed)
}
