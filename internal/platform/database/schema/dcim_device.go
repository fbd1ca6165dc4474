// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DcimDeviceTable represents the 'dcim.device' table
type DcimDeviceTable struct {
	Table        string
	ID           string
	Name         string
	SiteID       string
	Position     string
	Serial       string
	Status       string
	CustomFields string
	CreatedAt    string
	UpdatedAt    string
}

// DcimDevice is the schema definition for dcim.device
var DcimDevice = DcimDeviceTable{
	Table:        "dcim.device",
	ID:           "id",
	Name:         "name",
	SiteID:       "site_id",
	Position:     "position",
	Serial:       "serial",
	Status:       "status",
	CustomFields: "custom_fields",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns the columns read by the device repository, in scan order.
func (t DcimDeviceTable) Columns() []string {
	return []string{t.ID, t.Name, t.SiteID, t.Position, t.Serial, t.Status, t.CustomFields}
}
