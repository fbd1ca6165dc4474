// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/netinv/pkg/convert"
)

// Record is implemented by pointer record types (T is the pointer type itself).
type Record[T any] interface {
	// Clone returns an independent copy that ApplyPatch may modify.
	Clone() T
	// ApplyPatch assigns the present attributes onto the record.
	ApplyPatch(attrs Attrs) error
	// FullClean runs every consistency rule of the record.
	FullClean() error
}

// GenericRelated is implemented by records that declare generic foreign keys.
type GenericRelated interface {
	// GenericKey returns the current (content type, object id) sub-field values.
	GenericKey(field string) (contentType string, objectID int64)
	// GenericObject returns the materialized reference, or nil.
	GenericObject(field string) *Object
	// SetGenericObject attaches a resolved reference.
	SetGenericObject(field string, obj *Object)
}

// Object is the brief form of a row referenced through a generic foreign key.
type Object struct {
	ContentType string `json:"object_type"`
	ID          int64  `json:"id"`
	Display     string `json:"display"`
}

// String implements [fmt.Stringer].
func (o *Object) String() string {
	return o.Display
}

// ObjectResolver looks up any registered row by content type and primary key.
// A missing row is reported as (nil, false, nil), never as an error.
type ObjectResolver interface {
	FindByKey(ctx context.Context, contentType string, id int64) (*Object, bool, error)
}

// Observer receives the outcome of every validation pass.
type Observer interface {
	ObserveValidation(model string, err error)
}

// Option configures a [Serializer].
type Option func(*settings)

type settings struct {
	resolver ObjectResolver
	observer Observer
	logger   *slog.Logger
}

// WithResolver sets the lookup used for generic foreign keys.
func WithResolver(resolver ObjectResolver) Option {
	return func(s *settings) { s.resolver = resolver }
}

// WithObserver reports validation outcomes (typically to metrics).
func WithObserver(observer Observer) Option {
	return func(s *settings) { s.observer = observer }
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// Serializer validates candidate attribute sets for one record type.
//
// A Serializer is immutable after construction; [Serializer.Bind] returns a
// copy bound to an existing record for updates. Both are safe for concurrent use.
type Serializer[T Record[T]] struct {
	meta    *Meta
	factory func() T
	settings

	instance T
	bound    bool
}

// New creates an unbound serializer. factory returns a new unsaved record
// carrying the type's defaults.
func New[T Record[T]](meta *Meta, factory func() T, opts ...Option) *Serializer[T] {
	s := &Serializer[T]{meta: meta, factory: factory}
	for _, opt := range opts {
		opt(&s.settings)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Meta returns the record type's classification table.
func (s *Serializer[T]) Meta() *Meta {
	return s.meta
}

// Bind returns a copy of s that validates updates of instance.
func (s *Serializer[T]) Bind(instance T) *Serializer[T] {
	bound := *s
	bound.instance = instance
	bound.bound = true
	return &bound
}

// ToInternalValue drops undeclared and read-only attributes from a decoded body.
func (s *Serializer[T]) ToInternalValue(data Attrs) Attrs {
	writable, dropped := s.meta.Writable(data)
	if len(dropped) > 0 {
		s.logger.Debug("serializer_ignored_attributes",
			slog.String("model", s.meta.Model),
			slog.Any("attributes", dropped),
		)
	}
	return writable
}

// Materialize builds the transient record for data: a new record on create,
// a copy of the bound record on update, with the concrete attributes applied.
// The bound record itself is never modified.
func (s *Serializer[T]) Materialize(data Attrs) (T, error) {
	return s.materialize(s.meta.Concrete(data))
}

func (s *Serializer[T]) materialize(attrs Attrs) (T, error) {
	var instance T
	if s.bound {
		instance = s.instance.Clone()
	} else {
		instance = s.factory()
	}

	if err := instance.ApplyPatch(attrs); err != nil {
		var zero T
		return zero, err
	}
	return instance, nil
}

// Validate enforces the record's own consistency rules on an API write.
//
// It materializes a transient record from data, resolves any generic foreign
// key whose sub-fields were supplied, and runs FullClean. A validation error
// from FullClean is returned unchanged. On success the original data is
// returned untouched.
func (s *Serializer[T]) Validate(ctx context.Context, data Attrs) (Attrs, error) {
	err := s.validate(ctx, data)
	if s.observer != nil {
		s.observer.ObserveValidation(s.meta.Model, err)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Serializer[T]) validate(ctx context.Context, data Attrs) error {
	attrs := s.meta.Concrete(data)

	instance, err := s.materialize(attrs)
	if err != nil {
		return err
	}

	if err := s.resolveGenericForeignKeys(ctx, instance, attrs); err != nil {
		return err
	}

	return instance.FullClean()
}

// resolveGenericForeignKeys attaches references whose sub-fields changed.
// A reference that is already materialized is left alone, and a lookup miss
// leaves the field unresolved.
func (s *Serializer[T]) resolveGenericForeignKeys(ctx context.Context, instance T, attrs Attrs) error {
	fields := s.meta.GenericForeignKeys()
	if len(fields) == 0 {
		return nil
	}

	related, ok := any(instance).(GenericRelated)
	if !ok {
		return fmt.Errorf("serializer: %s declares generic foreign keys but %T does not implement GenericRelated", s.meta.Model, instance)
	}

	for _, field := range fields {
		if related.GenericObject(field.Name) != nil {
			continue
		}
		if !attrs.Has(field.TypeField) && !attrs.Has(field.IDField) {
			continue
		}

		contentType, objectID := related.GenericKey(field.Name)
		if value, ok := attrs[field.TypeField]; ok {
			contentType, _ = convert.AsString(value)
		}
		if value, ok := attrs[field.IDField]; ok {
			objectID, _ = convert.AsInt64(value)
		}

		if contentType == "" || objectID == 0 {
			continue
		}

		if s.resolver == nil {
			return fmt.Errorf("serializer: %s.%s needs an ObjectResolver", s.meta.Model, field.Name)
		}

		obj, found, err := s.resolver.FindByKey(ctx, contentType, objectID)
		if err != nil {
			return fmt.Errorf("serializer: resolve %s.%s: %w", s.meta.Model, field.Name, err)
		}
		if !found {
			s.logger.DebugContext(ctx, "generic_reference_unresolved",
				slog.String("model", s.meta.Model),
				slog.String("field", field.Name),
				slog.String("content_type", contentType),
				slog.Int64("object_id", objectID),
			)
			continue
		}

		related.SetGenericObject(field.Name, obj)
	}

	return nil
}
