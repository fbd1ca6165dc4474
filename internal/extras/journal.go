// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"time"

	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
)

// ContentTypeJournalEntry is the content type key of [JournalEntry].
const ContentTypeJournalEntry = "extras.journalentry"

// FieldAssignedObject is the generic foreign key of a journal entry.
const FieldAssignedObject = "assigned_object"

// Journal entry kinds.
const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindWarning = "warning"
	KindDanger  = "danger"
)

var journalKinds = []string{KindInfo, KindSuccess, KindWarning, KindDanger}

// journalingModels are the content types that accept journal entries.
var journalingModels = map[string]bool{
	"dcim.site":   true,
	"dcim.device": true,
}

// IsJournaling reports whether records of contentType accept journal entries.
func IsJournaling(contentType string) bool {
	return journalingModels[contentType]
}

// JournalEntry is a timestamped operator note about one inventory object.
type JournalEntry struct {
	ID                 int64              `json:"id"`
	AssignedObjectType string             `json:"assigned_object_type"`
	AssignedObjectID   int64              `json:"assigned_object_id"`
	AssignedObject     *serializer.Object `json:"assigned_object"`
	CreatedBy          string             `json:"created_by"`
	Kind               string             `json:"kind"`
	Comments           string             `json:"comments"`
	Tags               []string           `json:"tags"`
	Created            time.Time          `json:"created"`
}

// JournalEntryMeta classifies the fields of [JournalEntry].
var JournalEntryMeta = serializer.NewMeta(ContentTypeJournalEntry,
	serializer.Plain("assigned_object_type", "string"),
	serializer.Plain("assigned_object_id", "integer"),
	serializer.GenericForeignKey(FieldAssignedObject, "assigned_object_type", "assigned_object_id"),
	serializer.Plain("created_by", "string").ReadOnly(),
	serializer.Plain("kind", "string"),
	serializer.Plain("comments", "string"),
	serializer.List(serializer.FieldTags, "string"),
	serializer.Plain("created", "string").ReadOnly(),
)

// NewJournalEntry returns an unsaved entry with defaults applied.
func NewJournalEntry() *JournalEntry {
	return &JournalEntry{Kind: KindInfo}
}

// PrimaryKey implements [serializer.PrimaryKeyer].
func (e *JournalEntry) PrimaryKey() int64 { return e.ID }

// Clone implements [serializer.Record].
func (e *JournalEntry) Clone() *JournalEntry {
	clone := *e
	clone.Tags = append([]string(nil), e.Tags...)
	return &clone
}

// ApplyPatch implements [serializer.Record]. Changing either half of the
// assigned object key drops the resolved reference.
func (e *JournalEntry) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	typeChanged := p.String("assigned_object_type", &e.AssignedObjectType)
	idChanged := p.Int64("assigned_object_id", &e.AssignedObjectID)
	p.String("kind", &e.Kind)
	p.String("comments", &e.Comments)

	if typeChanged || idChanged {
		e.AssignedObject = nil
	}
	return p.Err()
}

// FullClean implements [serializer.Record]. An unresolved assigned object is
// not an error.
func (e *JournalEntry) FullClean() error {
	v := &validate.Validator{}

	v.Required("assigned_object_type", e.AssignedObjectType)
	if e.AssignedObjectType != "" {
		v.Custom("assigned_object_type", !IsJournaling(e.AssignedObjectType),
			"Journaling is not supported for this object type ("+e.AssignedObjectType+")")
	}
	v.Custom("assigned_object_id", e.AssignedObjectID <= 0, "Must be a positive integer")

	v.OneOf("kind", e.Kind, journalKinds...)
	v.Required("comments", e.Comments)

	return v.Err()
}

// GenericKey implements [serializer.GenericRelated].
func (e *JournalEntry) GenericKey(string) (string, int64) {
	return e.AssignedObjectType, e.AssignedObjectID
}

// GenericObject implements [serializer.GenericRelated].
func (e *JournalEntry) GenericObject(string) *serializer.Object {
	return e.AssignedObject
}

// SetGenericObject implements [serializer.GenericRelated].
func (e *JournalEntry) SetGenericObject(_ string, obj *serializer.Object) {
	e.AssignedObject = obj
}
