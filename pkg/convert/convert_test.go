// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/netinv/pkg/convert"
)

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"float_integral", float64(42), 42, true},
		{"float_fraction", 4.5, 0, false},
		{"json_number", json.Number("4294967295"), 4294967295, true},
		{"digit_string", " 7 ", 7, true},
		{"word_string", "seven", 0, false},
		{"native_int", 3, 3, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convert.AsInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsSlices(t *testing.T) {
	ints, ok := convert.AsInt64Slice([]any{float64(65000), json.Number("65001")})
	assert.True(t, ok)
	assert.Equal(t, []int64{65000, 65001}, ints)

	_, ok = convert.AsInt64Slice([]any{"x"})
	assert.False(t, ok)
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(12), convert.ToInt64("12"))
	assert.Equal(t, int64(0), convert.ToInt64("abc"))
	assert.Equal(t, int64(0), convert.ToInt64(""))
}
