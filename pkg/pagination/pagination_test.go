// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/pkg/pagination"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"page=3&limit=5", pagination.Params{Page: 3, Limit: 5}},
		{"page=-1&limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"page=abc&limit=500", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, pagination.FromQuery(values))
		})
	}
}

func TestWindow(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 3}

	start, end := params.Window(7)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	start, end = params.Window(4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 4, end)

	start, end = params.Window(2)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 1, Limit: 3}, 7)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 7, meta.Total)
}
