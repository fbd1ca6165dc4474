// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim

import (
	"fmt"
	"slices"

	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/pointer"
)

// ContentTypeDevice is the content type key of [Device].
const ContentTypeDevice = "dcim.device"

// Rack positions are numbered from the bottom.
const (
	MinPosition = 1
	MaxPosition = 48
)

// Device statuses.
const (
	DeviceStatusActive  = "active"
	DeviceStatusPlanned = "planned"
	DeviceStatusOffline = "offline"
	DeviceStatusFailed  = "failed"
)

var deviceStatuses = []string{DeviceStatusActive, DeviceStatusPlanned, DeviceStatusOffline, DeviceStatusFailed}

// Device is a piece of hardware installed at a site.
type Device struct {
	ID           int64                  `json:"id"`
	Name         *string                `json:"name"`
	SiteID       int64                  `json:"site_id"`
	Position     *int64                 `json:"position"`
	Serial       string                 `json:"serial"`
	Status       string                 `json:"status"`
	Tags         []string               `json:"tags"`
	CustomFields extras.CustomFieldData `json:"custom_fields"`
}

// DeviceMeta classifies the fields of [Device].
var DeviceMeta = serializer.NewMeta(ContentTypeDevice,
	serializer.Plain("name", "string").Nullable(),
	serializer.Plain("site_id", "integer"),
	serializer.Plain("position", "integer").Nullable(),
	serializer.Plain("serial", "string"),
	serializer.Plain("status", "string"),
	serializer.List(serializer.FieldTags, "string"),
	serializer.Plain(serializer.FieldCustomFields, "object"),
)

// NewDevice returns an unsaved device with defaults applied.
func NewDevice() *Device {
	return &Device{
		Status:       DeviceStatusActive,
		Tags:         []string{},
		CustomFields: extras.CustomFieldData{},
	}
}

func (d *Device) String() string {
	if d.Name != nil && *d.Name != "" {
		return *d.Name
	}
	if d.ID == 0 {
		return "Unnamed device"
	}
	return fmt.Sprintf("Unnamed device (%d)", d.ID)
}

// PrimaryKey implements [serializer.PrimaryKeyer].
func (d *Device) PrimaryKey() int64 { return d.ID }

// Clone implements [serializer.Record].
func (d *Device) Clone() *Device {
	clone := *d
	clone.Name = pointer.Clone(d.Name)
	clone.Position = pointer.Clone(d.Position)
	clone.Tags = slices.Clone(d.Tags)
	clone.CustomFields = d.CustomFields.Merge(nil)
	return &clone
}

// ApplyPatch implements [serializer.Record].
func (d *Device) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	p.NullableString("name", &d.Name)
	p.Int64("site_id", &d.SiteID)
	p.NullableInt64("position", &d.Position)
	p.String("serial", &d.Serial)
	p.String("status", &d.Status)
	return p.Err()
}

// FullClean implements [serializer.Record].
func (d *Device) FullClean() error {
	v := &validate.Validator{}
	v.Custom("site_id", d.SiteID <= 0, "This field is required")
	if d.Name != nil {
		v.MaxLen("name", *d.Name, 64)
	}
	if d.Position != nil {
		v.Range("position", *d.Position, MinPosition, MaxPosition)
	}
	v.MaxLen("serial", d.Serial, 50)
	v.OneOf("status", d.Status, deviceStatuses...)
	return v.Err()
}
