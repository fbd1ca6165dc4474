// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ExtrasTagTable represents the 'extras.tag' table
type ExtrasTagTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Color       string
	Description string
}

// ExtrasTag is the schema definition for extras.tag
var ExtrasTag = ExtrasTagTable{
	Table:       "extras.tag",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Color:       "color",
	Description: "description",
}

// Columns returns the columns read by the tag repository, in scan order.
func (t ExtrasTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Color, t.Description}
}
