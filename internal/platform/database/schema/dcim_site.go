// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DcimSiteTable represents the 'dcim.site' table
type DcimSiteTable struct {
	Table        string
	ID           string
	Name         string
	Slug         string
	Status       string
	Facility     string
	Description  string
	CustomFields string
	CreatedAt    string
	UpdatedAt    string
}

// DcimSite is the schema definition for dcim.site
var DcimSite = DcimSiteTable{
	Table:        "dcim.site",
	ID:           "id",
	Name:         "name",
	Slug:         "slug",
	Status:       "status",
	Facility:     "facility",
	Description:  "description",
	CustomFields: "custom_fields",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns the columns read by the site repository, in scan order.
func (t DcimSiteTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Status, t.Facility, t.Description, t.CustomFields}
}
