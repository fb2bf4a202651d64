// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/pkg/convert"
)

func TestToIntD(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 7},
		{"12", 12},
		{" 3 ", 3},
		{"-4", -4},
		{"abc", 7},
		{"1.5", 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToIntD(tt.in, 7))
		})
	}
}
