// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/netinv/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Zürich DC-1":       "zurich-dc-1",
		"  Core  Switches ": "core-switches",
		"rack_a/01":         "rack_a-01",
		"!!!":               "",
	}

	for in, want := range tests {
		assert.Equal(t, want, slug.From(in), in)
	}

	assert.Len(t, slug.From(strings.Repeat("a", 150)), slug.MaxLength)
}
