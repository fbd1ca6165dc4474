// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dcim models the physical inventory: sites and the devices installed
in them.

Both record types are journaling targets and carry tags and custom fields.
Writes go through the validated serializer, so every consistency rule lives
in the record's FullClean and applies equally to API writes and internal
callers.
*/
package dcim

import (
	"math"
	"slices"

	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/convert"
	"github.com/taibuivan/netinv/pkg/slug"
)

// ContentTypeSite is the content type key of [Site].
const ContentTypeSite = "dcim.site"

// FieldASNs is the many-to-many relation between a site and its AS numbers.
const FieldASNs = "asns"

// Site statuses.
const (
	SiteStatusPlanned         = "planned"
	SiteStatusStaging         = "staging"
	SiteStatusActive          = "active"
	SiteStatusDecommissioning = "decommissioning"
	SiteStatusRetired         = "retired"
)

var siteStatuses = []string{SiteStatusPlanned, SiteStatusStaging, SiteStatusActive, SiteStatusDecommissioning, SiteStatusRetired}

// Site is a building or campus holding devices.
type Site struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Status       string                 `json:"status"`
	Facility     string                 `json:"facility"`
	Description  string                 `json:"description"`
	ASNs         []int64                `json:"asns"`
	Tags         []string               `json:"tags"`
	CustomFields extras.CustomFieldData `json:"custom_fields"`
}

// SiteMeta classifies the fields of [Site].
var SiteMeta = serializer.NewMeta(ContentTypeSite,
	serializer.Plain("name", "string"),
	serializer.Plain("slug", "string"),
	serializer.Plain("status", "string"),
	serializer.Plain("facility", "string"),
	serializer.Plain("description", "string"),
	serializer.ManyToMany(FieldASNs, "integer"),
	serializer.List(serializer.FieldTags, "string"),
	serializer.Plain(serializer.FieldCustomFields, "object"),
)

// NewSite returns an unsaved site with defaults applied.
func NewSite() *Site {
	return &Site{
		Status:       SiteStatusActive,
		ASNs:         []int64{},
		Tags:         []string{},
		CustomFields: extras.CustomFieldData{},
	}
}

func (s *Site) String() string { return s.Name }

// PrimaryKey implements [serializer.PrimaryKeyer].
func (s *Site) PrimaryKey() int64 { return s.ID }

// Clone implements [serializer.Record].
func (s *Site) Clone() *Site {
	clone := *s
	clone.ASNs = slices.Clone(s.ASNs)
	clone.Tags = slices.Clone(s.Tags)
	clone.CustomFields = s.CustomFields.Merge(nil)
	return &clone
}

// ApplyPatch implements [serializer.Record].
func (s *Site) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	p.String("name", &s.Name)
	p.String("slug", &s.Slug)
	p.String("status", &s.Status)
	p.String("facility", &s.Facility)
	p.String("description", &s.Description)
	return p.Err()
}

// FullClean implements [serializer.Record].
func (s *Site) FullClean() error {
	v := &validate.Validator{}
	v.Required("name", s.Name).MaxLen("name", s.Name, 100)
	v.Required("slug", s.Slug).MaxLen("slug", s.Slug, slug.MaxLength)
	if s.Slug != "" {
		v.Slug("slug", s.Slug)
	}
	v.OneOf("status", s.Status, siteStatuses...)
	v.MaxLen("facility", s.Facility, 50)
	v.MaxLen("description", s.Description, 200)
	return v.Err()
}

// ValidateASNs checks an "asns" attribute: a list of 32-bit AS numbers.
// Duplicates are dropped and the result is sorted.
func ValidateASNs(value any) ([]int64, error) {
	if value == nil {
		return []int64{}, nil
	}

	asns, ok := convert.AsInt64Slice(value)
	if !ok {
		return nil, validate.FieldError(FieldASNs, "Must be a list of integers")
	}

	v := &validate.Validator{}
	for _, asn := range asns {
		v.Range(FieldASNs, asn, 1, math.MaxUint32)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	slices.Sort(asns)
	return slices.Compact(asns), nil
}
