// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/convert"
)

// ParseTagSlugs reads a "tags" attribute: a list of slugs, or of objects
// carrying a "slug" member. Duplicates are dropped.
func ParseTagSlugs(value any) ([]string, error) {
	if value == nil {
		return []string{}, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, validate.FieldError(serializer.FieldTags, "Must be a list of tag slugs")
	}

	seen := make(map[string]bool, len(items))
	slugs := make([]string, 0, len(items))

	for _, item := range items {
		if nested, ok := item.(map[string]any); ok {
			item = nested["slug"]
		}
		s, ok := convert.AsString(item)
		if !ok || s == "" {
			return nil, validate.FieldError(serializer.FieldTags, "Must be a list of tag slugs")
		}
		if !seen[s] {
			seen[s] = true
			slugs = append(slugs, s)
		}
	}

	return slugs, nil
}
