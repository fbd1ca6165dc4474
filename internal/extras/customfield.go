// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"encoding/json"
	"fmt"

	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
)

// CustomFieldData holds user-defined attributes stored alongside a record.
type CustomFieldData map[string]any

// ValidateCustomFields checks a "custom_fields" attribute. Keys must be
// lowercase identifiers and values scalar or null. A null attribute clears
// the data.
func ValidateCustomFields(value any) (CustomFieldData, error) {
	if value == nil {
		return CustomFieldData{}, nil
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return nil, validate.FieldError(serializer.FieldCustomFields, "Must be an object")
	}

	v := &validate.Validator{}
	data := make(CustomFieldData, len(raw))

	for _, key := range serializer.Attrs(raw).Keys() {
		field := serializer.FieldCustomFields + "." + key
		v.Identifier(field, key)

		switch item := raw[key].(type) {
		case nil, string, bool, float64, json.Number:
			data[key] = item
		default:
			v.Custom(field, true, fmt.Sprintf("Unsupported value type %T", item))
		}
	}

	if err := v.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Merge returns a copy of existing with updates applied. A null update
// deletes the key.
func (data CustomFieldData) Merge(updates CustomFieldData) CustomFieldData {
	out := make(CustomFieldData, len(data)+len(updates))
	for key, value := range data {
		out[key] = value
	}
	for key, value := range updates {
		if value == nil {
			delete(out, key)
			continue
		}
		out[key] = value
	}
	return out
}
