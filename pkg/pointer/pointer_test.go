// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/pkg/pointer"
)

func TestVal(t *testing.T) {
	assert.Equal(t, 3, pointer.Val(pointer.To(3)))
	assert.Equal(t, "", pointer.Val[string](nil))
}

func TestAssign(t *testing.T) {
	notes := "old"

	assert.False(t, pointer.Assign(&notes, nil))
	assert.Equal(t, "old", notes)

	assert.True(t, pointer.Assign(&notes, pointer.To("new")))
	assert.Equal(t, "new", notes)
}
