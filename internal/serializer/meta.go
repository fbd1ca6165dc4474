// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import "fmt"

// Auxiliary attribute names. They are accepted on every writable record but
// validated and persisted outside of FullClean.
const (
	FieldCustomFields = "custom_fields"
	FieldTags         = "tags"
)

// AuxiliaryFields never reach a record's ApplyPatch.
var AuxiliaryFields = []string{FieldCustomFields, FieldTags}

// FieldKind classifies how a field participates in validation.
type FieldKind int

const (
	// KindPlain fields are assigned directly by ApplyPatch.
	KindPlain FieldKind = iota
	// KindManyToMany fields are persisted through a join table after the record exists.
	KindManyToMany
	// KindGenericForeignKey fields are resolved from a (content type, object id) pair.
	KindGenericForeignKey
)

func (k FieldKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindManyToMany:
		return "many_to_many"
	case KindGenericForeignKey:
		return "generic_foreign_key"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field is one entry of a record type's classification table.
type Field struct {
	Name string
	Kind FieldKind

	// SchemaType is the JSON schema type advertised for the field.
	SchemaType string
	// ItemType is the element type for array fields.
	ItemType string

	readOnly bool
	nullable bool

	// TypeField and IDField name the sub-fields of a generic foreign key.
	TypeField string
	IDField   string
}

// Plain declares a directly assignable field.
func Plain(name, schemaType string) Field {
	return Field{Name: name, Kind: KindPlain, SchemaType: schemaType}
}

// List declares a plain array field (e.g. tags).
func List(name, itemType string) Field {
	return Field{Name: name, Kind: KindPlain, SchemaType: "array", ItemType: itemType}
}

// ManyToMany declares a join-table relation whose value is a list of keys.
func ManyToMany(name, itemType string) Field {
	return Field{Name: name, Kind: KindManyToMany, SchemaType: "array", ItemType: itemType}
}

// GenericForeignKey declares a reference resolved from typeField and idField.
// The resolved value itself is always read-only.
func GenericForeignKey(name, typeField, idField string) Field {
	return Field{
		Name:       name,
		Kind:       KindGenericForeignKey,
		SchemaType: "object",
		readOnly:   true,
		nullable:   true,
		TypeField:  typeField,
		IDField:    idField,
	}
}

// ReadOnly returns a copy of f that clients cannot write.
func (f Field) ReadOnly() Field {
	f.readOnly = true
	return f
}

// Nullable returns a copy of f that accepts null.
func (f Field) Nullable() Field {
	f.nullable = true
	return f
}

// IsReadOnly reports whether clients may write f.
func (f Field) IsReadOnly() bool { return f.readOnly }

// IsNullable reports whether f accepts null.
func (f Field) IsNullable() bool { return f.nullable }

// Meta is the static field classification table of one record type.
//
// It is built once, at registration, and is safe for concurrent reads.
type Meta struct {
	// Model is the content type key of the record (e.g. "dcim.site").
	Model string

	fields         []Field
	byName         map[string]Field
	manyToMany     []Field
	genericForeign []Field
}

// NewMeta builds the classification table. It panics on duplicate or
// inconsistent declarations since those are programming errors caught at startup.
func NewMeta(model string, fields ...Field) *Meta {
	meta := &Meta{
		Model:  model,
		fields: fields,
		byName: make(map[string]Field, len(fields)+1),
	}

	meta.byName["id"] = Plain("id", "integer").ReadOnly()

	for _, field := range fields {
		if _, dup := meta.byName[field.Name]; dup {
			panic(fmt.Sprintf("serializer: %s declares field %q twice", model, field.Name))
		}
		meta.byName[field.Name] = field

		switch field.Kind {
		case KindManyToMany:
			meta.manyToMany = append(meta.manyToMany, field)
		case KindGenericForeignKey:
			meta.genericForeign = append(meta.genericForeign, field)
		}
	}

	for _, field := range meta.genericForeign {
		for _, sub := range []string{field.TypeField, field.IDField} {
			if _, ok := meta.byName[sub]; !ok {
				panic(fmt.Sprintf("serializer: %s.%s references undeclared field %q", model, field.Name, sub))
			}
		}
	}

	return meta
}

// Field looks up a declared field by name.
func (m *Meta) Field(name string) (Field, bool) {
	field, ok := m.byName[name]
	return field, ok
}

// Fields returns the declared fields in declaration order.
func (m *Meta) Fields() []Field {
	return m.fields
}

// ManyToManyFields returns the join-table relations.
func (m *Meta) ManyToManyFields() []Field {
	return m.manyToMany
}

// GenericForeignKeys returns the polymorphic references.
func (m *Meta) GenericForeignKeys() []Field {
	return m.genericForeign
}

// Concrete returns a copy of data restricted to attributes a record can take
// in ApplyPatch: auxiliary entries and many-to-many relations are removed.
// data itself is left untouched.
func (m *Meta) Concrete(data Attrs) Attrs {
	attrs := data.Copy()

	for _, name := range AuxiliaryFields {
		delete(attrs, name)
	}

	for _, field := range m.manyToMany {
		delete(attrs, field.Name)
	}

	return attrs
}

// Writable drops attributes that are undeclared or read-only, mirroring how
// unknown input keys are ignored rather than rejected.
func (m *Meta) Writable(data Attrs) (Attrs, []string) {
	out := make(Attrs, len(data))
	var dropped []string

	for _, key := range data.Keys() {
		field, ok := m.byName[key]
		if !ok || field.readOnly {
			dropped = append(dropped, key)
			continue
		}
		out[key] = data[key]
	}

	return out, dropped
}
