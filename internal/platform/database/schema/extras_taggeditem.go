// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ExtrasTaggedItemTable represents the 'extras.tagged_item' table, the generic
// join between tags and any registered content type.
type ExtrasTaggedItemTable struct {
	Table       string
	TagID       string
	ContentType string
	ObjectID    string
}

// ExtrasTaggedItem is the schema definition for extras.tagged_item
var ExtrasTaggedItem = ExtrasTaggedItemTable{
	Table:       "extras.tagged_item",
	TagID:       "tag_id",
	ContentType: "content_type",
	ObjectID:    "object_id",
}
