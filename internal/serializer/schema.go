// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import "github.com/taibuivan/netinv/internal/platform/constants"

// Property describes one member of a record's API representation.
type Property struct {
	Type     string    `json:"type"`
	ReadOnly bool      `json:"readOnly,omitempty"`
	Nullable bool      `json:"nullable,omitempty"`
	Items    *Property `json:"items,omitempty"`
}

// Schema is the JSON-schema-like description served by the schema endpoint.
type Schema struct {
	Title      string              `json:"title"`
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
}

// Schema describes the API representation of the record type, including the
// derived display string.
func (m *Meta) Schema() Schema {
	properties := make(map[string]Property, len(m.fields)+2)

	properties["id"] = Property{Type: "integer", ReadOnly: true}
	properties[constants.FieldDisplay] = Property{Type: "string", ReadOnly: true}

	for _, field := range m.fields {
		property := Property{
			Type:     field.SchemaType,
			ReadOnly: field.readOnly,
			Nullable: field.nullable,
		}
		if field.ItemType != "" {
			property.Items = &Property{Type: field.ItemType}
		}
		properties[field.Name] = property
	}

	return Schema{Title: m.Model, Type: "object", Properties: properties}
}
