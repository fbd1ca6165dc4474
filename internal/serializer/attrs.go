// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/taibuivan/netinv/internal/platform/validate"
)

// NonFieldErrors is the field name used for errors not tied to one attribute.
const NonFieldErrors = validate.NonFieldErrors

// Attrs is a candidate attribute set: field name → proposed value, as decoded
// from a request. Numbers are kept as [json.Number] at the top level.
type Attrs map[string]any

// Copy returns a shallow copy of a.
func (a Attrs) Copy() Attrs {
	out := make(Attrs, len(a))
	maps.Copy(out, a)
	return out
}

// Has reports whether key is present, even with a null value.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// DecodeAttrs parses a JSON object body into [Attrs].
func DecodeAttrs(body []byte) (Attrs, error) {
	if !gjson.ValidBytes(body) {
		return nil, validate.ErrInvalidJSON
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, validate.FieldError(NonFieldErrors, "Expected a JSON object")
	}

	attrs := make(Attrs)
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			attrs[key.String()] = json.Number(value.Raw)
		} else {
			attrs[key.String()] = value.Value()
		}
		return true
	})

	return attrs, nil
}
