// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list filters from URL query strings.
//
// Filters accept both repeated keys and comma-separated values, so
// "?site_id=1&site_id=2" and "?site_id=1,2" are equivalent.
package query

import (
	"net/url"
	"strings"

	"github.com/taibuivan/netinv/pkg/convert"
)

// Int64Slice collects the positive integer values of key. Invalid entries are
// ignored.
func Int64Slice(values url.Values, key string) []int64 {
	var out []int64
	for _, raw := range StringSlice(values, key) {
		if n := convert.ToInt64(raw); n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// StringSlice collects the trimmed, non-empty values of key.
func StringSlice(values url.Values, key string) []string {
	var out []string
	for _, value := range values[key] {
		for _, part := range strings.Split(value, ",") {
			if clean := strings.TrimSpace(part); clean != "" {
				out = append(out, clean)
			}
		}
	}
	return out
}
