// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import (
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/pkg/convert"
)

const (
	msgNotNull     = "This field may not be null"
	msgNotString   = "Must be a string"
	msgNotInteger  = "Must be an integer"
	msgUnknownAttr = "Unknown field"
)

// Patcher assigns attributes onto typed record fields. Each setter is a no-op
// when its key is absent, which is what gives updates their partial-merge
// semantics. Type mismatches are collected and reported by [Patcher.Err].
//
//	func (s *Site) ApplyPatch(attrs serializer.Attrs) error {
//	    p := serializer.NewPatcher(attrs)
//	    p.String("name", &s.Name)
//	    p.NullableString("facility", &s.Facility)
//	    return p.Err()
//	}
type Patcher struct {
	attrs     Attrs
	consumed  map[string]bool
	validator validate.Validator
}

// NewPatcher creates a Patcher over attrs.
func NewPatcher(attrs Attrs) *Patcher {
	return &Patcher{attrs: attrs, consumed: make(map[string]bool, len(attrs))}
}

func (p *Patcher) take(field string) (any, bool) {
	value, ok := p.attrs[field]
	if ok {
		p.consumed[field] = true
	}
	return value, ok
}

// String assigns a non-null string. It reports whether dst was assigned.
func (p *Patcher) String(field string, dst *string) bool {
	value, ok := p.take(field)
	if !ok {
		return false
	}
	if value == nil {
		p.validator.Custom(field, true, msgNotNull)
		return false
	}
	s, ok := convert.AsString(value)
	if !ok {
		p.validator.Custom(field, true, msgNotString)
		return false
	}
	*dst = s
	return true
}

// NullableString assigns a string or clears dst on null.
func (p *Patcher) NullableString(field string, dst **string) bool {
	value, ok := p.take(field)
	if !ok {
		return false
	}
	if value == nil {
		*dst = nil
		return true
	}
	s, ok := convert.AsString(value)
	if !ok {
		p.validator.Custom(field, true, msgNotString)
		return false
	}
	*dst = &s
	return true
}

// Int64 assigns a non-null integer.
func (p *Patcher) Int64(field string, dst *int64) bool {
	value, ok := p.take(field)
	if !ok {
		return false
	}
	if value == nil {
		p.validator.Custom(field, true, msgNotNull)
		return false
	}
	n, ok := convert.AsInt64(value)
	if !ok {
		p.validator.Custom(field, true, msgNotInteger)
		return false
	}
	*dst = n
	return true
}

// NullableInt64 assigns an integer or clears dst on null.
func (p *Patcher) NullableInt64(field string, dst **int64) bool {
	value, ok := p.take(field)
	if !ok {
		return false
	}
	if value == nil {
		*dst = nil
		return true
	}
	n, ok := convert.AsInt64(value)
	if !ok {
		p.validator.Custom(field, true, msgNotInteger)
		return false
	}
	*dst = &n
	return true
}

// Err reports type mismatches and any attribute no setter consumed.
func (p *Patcher) Err() error {
	for _, key := range p.attrs.Keys() {
		if !p.consumed[key] {
			p.validator.Custom(key, true, msgUnknownAttr)
		}
	}
	return p.validator.Err()
}
