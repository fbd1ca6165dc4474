// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides type-conversion utilities.

The To* helpers are fault-tolerant (they return a zero value instead of an
error) and are meant for query parameters. The As* helpers are strict: they
report whether a decoded JSON value could be represented as the requested Go
type and are used when applying request attributes onto records.
*/
package convert

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt converts a string to an integer, returning 0 when it cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToInt64 converts a string to an int64, returning 0 when it cannot be parsed.
func ToInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// AsString reports whether v is a JSON string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsInt64 reports whether v is an integral number, accepting the shapes a JSON
// decoder produces (float64, json.Number) as well as native ints and digit strings.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// AsInt64Slice reports whether v is a list of integral numbers.
func AsInt64Slice(v any) ([]int64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	out := make([]int64, 0, len(items))
	for _, item := range items {
		n, ok := AsInt64(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
