// Copyright (c) 2026 eZunder. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezunder/ezunder/pkg/pagination"
)

/*
TestFromRequest covers the query parsing and clamping rules for list
endpoints.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", pagination.DefaultLimit, 0},
		{"explicit", "limit=50&offset=10", 50, 10},
		{"limit_clamped_to_max", "limit=5000", pagination.MaxLimit, 0},
		{"zero_limit_falls_back", "limit=0", pagination.DefaultLimit, 0},
		{"negative_limit_falls_back", "limit=-5", pagination.DefaultLimit, 0},
		{"negative_offset_clamped", "offset=-1", pagination.DefaultLimit, 0},
		{"garbage_ignored", "limit=abc&offset=xyz", pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/projects?"+tt.query, nil)

			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

/*
TestNewMeta checks the response metadata shape.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(20, 40, 123)

	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 40, meta.Offset)
	assert.Equal(t, 123, meta.Total)
}
