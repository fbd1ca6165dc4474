// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/taibuivan/netinv/internal/platform/constants"
)

// PrimaryKeyer is implemented by persisted records.
type PrimaryKeyer interface {
	PrimaryKey() int64
}

// Display returns the human-readable form of obj.
//
// A [fmt.Stringer] is used as-is. Records without a custom form fall back to
// "<Type> object (<pk>)", or "<Type> object" while unsaved. Anything else is
// rendered with %v. A nil value renders as "".
func Display(obj any) string {
	if isNil(obj) {
		return ""
	}

	switch v := obj.(type) {
	case fmt.Stringer:
		return v.String()
	case PrimaryKeyer:
		name := typeName(obj)
		if pk := v.PrimaryKey(); pk != 0 {
			return fmt.Sprintf("%s object (%d)", name, pk)
		}
		return name + " object"
	default:
		return fmt.Sprintf("%v", obj)
	}
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return value.IsNil()
	}
	return false
}

func typeName(obj any) string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Representation is the API form of a record: its JSON object plus a
// read-only "display" member. The display string is computed when the
// representation is marshaled, not when it is created.
type Representation struct {
	value any
}

// Represent wraps obj for output.
func Represent(obj any) Representation {
	return Representation{value: obj}
}

// RepresentAll wraps every element of items.
func RepresentAll[T any](items []T) []Representation {
	out := make([]Representation, 0, len(items))
	for _, item := range items {
		out = append(out, Represent(item))
	}
	return out
}

// Value returns the wrapped record.
func (r Representation) Value() any {
	return r.value
}

// MarshalJSON implements [json.Marshaler].
func (r Representation) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.value)
	if err != nil {
		return nil, err
	}

	if !gjson.ParseBytes(raw).IsObject() {
		return raw, nil
	}

	return sjson.SetBytes(raw, constants.FieldDisplay, Display(r.value))
}
