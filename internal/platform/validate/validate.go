// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Record types build their FullClean rules with it, and the serializer's
// Patcher uses it to report attributes that could not be assigned. Both paths
// therefore produce errors of the same shape.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/netinv/internal/platform/apperr"
)

// NonFieldErrors is the detail key of failures not tied to one field.
const NonFieldErrors = "non_field_errors"

var (
	// slugRegex matches slug format: lowercase letters, digits, hyphens, underscores.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
	// hexColorRegex matches a 6-digit RGB color without the leading '#'.
	hexColorRegex = regexp.MustCompile(`^[0-9a-f]{6}$`)
	// identifierRegex matches custom field names.
	identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. Create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int64) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens, underscores)")
	}
	return v
}

// HexColor fails if the value is not a 6-digit lowercase hex color.
func (v *Validator) HexColor(field, value string) *Validator {
	if !hexColorRegex.MatchString(value) {
		v.add(field, "Must be a 6-digit hexadecimal color (e.g. 9e9e9e)")
	}
	return v
}

// Identifier fails if the value is not a lowercase identifier.
func (v *Validator) Identifier(field, value string) *Validator {
	if !identifierRegex.MatchString(value) {
		v.add(field, "Must start with a letter and contain only lowercase letters, digits and underscores")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
//	v.Custom("position", pos == 0, "Rack units start at 1")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Merge absorbs the field errors of another validation failure. Errors
// without field details are recorded under the "non_field_errors" key.
func (v *Validator) Merge(err error) *Validator {
	if err == nil {
		return v
	}
	if ae := apperr.As(err); ae != nil && len(ae.Details) > 0 {
		v.errs = append(v.errs, ae.Details...)
		return v
	}
	v.add(NonFieldErrors, err.Error())
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
