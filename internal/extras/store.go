// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import "context"

// JournalFilter narrows journal listings to one assigned object.
type JournalFilter struct {
	AssignedObjectType string
	AssignedObjectID   int64
}

// TagRepository persists tags and their generic assignments.
type TagRepository interface {
	ListTags(ctx context.Context, limit, offset int) ([]*Tag, int, error)
	GetTag(ctx context.Context, id int64) (*Tag, error)
	GetTagsBySlug(ctx context.Context, slugs []string) ([]*Tag, error)
	CreateTag(ctx context.Context, tag *Tag) error
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id int64) error

	// ReplaceTaggedItems sets the full tag set of one object.
	ReplaceTaggedItems(ctx context.Context, contentType string, objectID int64, tagIDs []int64) error
	// TagSlugsFor returns the tag slugs of each object, keyed by object id.
	TagSlugsFor(ctx context.Context, contentType string, objectIDs []int64) (map[int64][]string, error)
	// DeleteTaggedItems removes every assignment of one object.
	DeleteTaggedItems(ctx context.Context, contentType string, objectID int64) error
}

// JournalRepository persists journal entries.
type JournalRepository interface {
	ListEntries(ctx context.Context, filter JournalFilter, limit, offset int) ([]*JournalEntry, int, error)
	GetEntry(ctx context.Context, id int64) (*JournalEntry, error)
	CreateEntry(ctx context.Context, entry *JournalEntry) error
	UpdateEntry(ctx context.Context, entry *JournalEntry) error
	DeleteEntry(ctx context.Context, id int64) error
	// DeleteEntriesFor removes every entry assigned to one object.
	DeleteEntriesFor(ctx context.Context, contentType string, objectID int64) error
}
