// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package serializer is the write-path guard between HTTP payloads and records.

Decoding a request and checking individual field types is not enough to keep
stored data consistent: records carry cross-field rules (a device position
within the rack, a journal entry pointing at a journaling-capable model) that
live in their FullClean method. A [Serializer] runs those rules on every API
write by materializing a transient record from the candidate attributes and
calling FullClean on it before anything is persisted.

# Pipeline

	request body ──DecodeAttrs──▶ Attrs ──ToInternalValue──▶ Attrs
	     ──Validate──▶ Meta.Concrete ─▶ Clone/New + ApplyPatch
	     ─▶ resolve generic foreign keys ─▶ FullClean ─▶ original Attrs

# Field classification

Every record type registers a [Meta] once. It classifies each field as plain,
many-to-many or generic foreign key, so the validation pass never inspects a
record at run time to find out which attributes can be assigned.

# Display

[Represent] wraps a record so that its JSON form gains a read-only "display"
member computed by [Display] at marshal time.
*/
package serializer
