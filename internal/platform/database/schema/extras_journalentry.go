// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ExtrasJournalEntryTable represents the 'extras.journal_entry' table
type ExtrasJournalEntryTable struct {
	Table              string
	ID                 string
	AssignedObjectType string
	AssignedObjectID   string
	CreatedBy          string
	Kind               string
	Comments           string
	CreatedAt          string
}

// ExtrasJournalEntry is the schema definition for extras.journal_entry
var ExtrasJournalEntry = ExtrasJournalEntryTable{
	Table:              "extras.journal_entry",
	ID:                 "id",
	AssignedObjectType: "assigned_object_type",
	AssignedObjectID:   "assigned_object_id",
	CreatedBy:          "created_by",
	Kind:               "kind",
	Comments:           "comments",
	CreatedAt:          "created_at",
}

// Columns returns the columns read by the journal repository, in scan order.
func (t ExtrasJournalEntryTable) Columns() []string {
	return []string{t.ID, t.AssignedObjectType, t.AssignedObjectID, t.CreatedBy, t.Kind, t.Comments, t.CreatedAt}
}
