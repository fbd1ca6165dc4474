// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII URL slugs from display names.
//
// Sites and tags default their slug from the name when a client omits it
// ("Zürich DC-1" becomes "zurich-dc-1").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug any record accepts.
const MaxLength = 100

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9_-]+`)
	multiHyphen     = regexp.MustCompile(`-{2,}`)
)

// From converts s into a lowercase ASCII slug of at most [MaxLength] bytes.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(stripAccents, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

// isMn reports whether r is a Unicode non-spacing mark.
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
