// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates time-ordered UUIDv7 strings.
//
// Netinv uses them as request correlation IDs and as the "jti" of minted
// access tokens, where sortable values keep log searches in time order.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to a random v4 value if the
// clock-sequence source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as any UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
