// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/netinv/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query  string
		want   pagination.Params
		offset int
	}{
		{"", pagination.Params{Page: 1, Limit: 50}, 0},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}, 20},
		{"?page=-1&limit=5000", pagination.Params{Page: 1, Limit: 50}, 0},
		{"?page=abc&limit=0", pagination.Params{Page: 1, Limit: 50}, 0},
	}

	for _, tt := range tests {
		got := pagination.FromRequest(httptest.NewRequest("GET", "/"+tt.query, nil))
		assert.Equal(t, tt.want, got, tt.query)
		assert.Equal(t, tt.offset, got.Offset(), tt.query)
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 10, Total: 31, TotalPages: 4}, pagination.NewMeta(2, 10, 31))
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
