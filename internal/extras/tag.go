// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/slug"
)

// ContentTypeTag is the content type key of [Tag].
const ContentTypeTag = "extras.tag"

// DefaultTagColor is assigned to tags created without a color.
const DefaultTagColor = "9e9e9e"

// Tag is a free-form label attached to any taggable record.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// TagMeta classifies the writable fields of [Tag].
var TagMeta = serializer.NewMeta(ContentTypeTag,
	serializer.Plain("name", "string"),
	serializer.Plain("slug", "string"),
	serializer.Plain("color", "string"),
	serializer.Plain("description", "string"),
)

// NewTag returns an unsaved tag with defaults applied.
func NewTag() *Tag {
	return &Tag{Color: DefaultTagColor}
}

func (t *Tag) String() string { return t.Name }

// PrimaryKey implements [serializer.PrimaryKeyer].
func (t *Tag) PrimaryKey() int64 { return t.ID }

// Clone implements [serializer.Record].
func (t *Tag) Clone() *Tag {
	clone := *t
	return &clone
}

// ApplyPatch implements [serializer.Record].
func (t *Tag) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	p.String("name", &t.Name)
	p.String("slug", &t.Slug)
	p.String("color", &t.Color)
	p.String("description", &t.Description)
	return p.Err()
}

// FullClean implements [serializer.Record].
func (t *Tag) FullClean() error {
	v := &validate.Validator{}
	v.Required("name", t.Name).MaxLen("name", t.Name, 100)
	v.Required("slug", t.Slug).MaxLen("slug", t.Slug, slug.MaxLength)
	if t.Slug != "" {
		v.Slug("slug", t.Slug)
	}
	v.HexColor("color", t.Color)
	v.MaxLen("description", t.Description, 200)
	return v.Err()
}
