// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contenttype keeps the registry of record types that generic foreign
keys may point at, and resolves a (content type, object id) pair to the brief
form of the referenced row.

Each domain package registers its types at startup together with a [Finder].
The [Registry] then serves as the serializer's [serializer.ObjectResolver],
optionally behind a Redis [CachedResolver].
*/
package contenttype

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/platform/metrics"
	"github.com/taibuivan/netinv/internal/serializer"
)

// ContentType identifies one record type, keyed "app_label.model".
type ContentType struct {
	AppLabel string `json:"app_label"`
	Model    string `json:"model"`
	Name     string `json:"name"`
}

// Key returns the "app_label.model" form.
func (ct ContentType) Key() string {
	return ct.AppLabel + "." + ct.Model
}

// ParseKey splits "app_label.model". It does not check registration.
func ParseKey(key string) (appLabel, model string, err error) {
	appLabel, model, found := strings.Cut(key, ".")
	if !found || appLabel == "" || model == "" || strings.Contains(model, ".") {
		return "", "", fmt.Errorf("contenttype: malformed key %q", key)
	}
	return appLabel, model, nil
}

// Finder loads the brief form of one row. A missing row is (nil, false, nil).
type Finder func(ctx context.Context, id int64) (*serializer.Object, bool, error)

// FromGetter adapts a store getter to a [Finder], mapping not-found errors to
// a miss.
func FromGetter[T any](key string, get func(ctx context.Context, id int64) (T, error)) Finder {
	return func(ctx context.Context, id int64) (*serializer.Object, bool, error) {
		record, err := get(ctx, id)
		if err != nil {
			if dberr.IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return NewObject(key, id, record), true, nil
	}
}

// NewObject builds the brief form of record.
func NewObject(key string, id int64, record any) *serializer.Object {
	return &serializer.Object{
		ContentType: key,
		ID:          id,
		Display:     serializer.Display(record),
	}
}

// LookupObserver receives the outcome of every lookup.
type LookupObserver interface {
	ObserveLookup(contentType, outcome string)
}

type entry struct {
	contentType ContentType
	meta        *serializer.Meta
	find        Finder
}

// Registry maps content type keys to their finders. Registration happens at
// startup; lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]entry
	observer LookupObserver
}

// NewRegistry creates an empty registry. observer may be nil.
func NewRegistry(observer LookupObserver) *Registry {
	return &Registry{entries: make(map[string]entry), observer: observer}
}

// Register adds a record type. meta.Model must equal the content type key.
func (registry *Registry) Register(ct ContentType, meta *serializer.Meta, find Finder) error {
	key := ct.Key()
	if meta == nil || meta.Model != key {
		return fmt.Errorf("contenttype: meta for %s is missing or mismatched", key)
	}
	if find == nil {
		return fmt.Errorf("contenttype: %s has no finder", key)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.entries[key]; exists {
		return fmt.Errorf("contenttype: %s already registered", key)
	}
	registry.entries[key] = entry{contentType: ct, meta: meta, find: find}
	return nil
}

// Lookup returns the content type registered under key.
func (registry *Registry) Lookup(key string) (ContentType, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	e, ok := registry.entries[key]
	return e.contentType, ok
}

// List returns every registered content type, sorted by key.
func (registry *Registry) List() []ContentType {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]ContentType, 0, len(registry.entries))
	for _, e := range registry.entries {
		out = append(out, e.contentType)
	}
	slices.SortFunc(out, func(a, b ContentType) int { return strings.Compare(a.Key(), b.Key()) })
	return out
}

// Schemas returns the API schema of every registered type, sorted by key.
func (registry *Registry) Schemas() []serializer.Schema {
	types := registry.List()

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]serializer.Schema, 0, len(types))
	for _, ct := range types {
		out = append(out, registry.entries[ct.Key()].meta.Schema())
	}
	return out
}

// FindByKey implements [serializer.ObjectResolver]. An unregistered content
// type is reported as a miss.
func (registry *Registry) FindByKey(ctx context.Context, key string, id int64) (*serializer.Object, bool, error) {
	registry.mu.RLock()
	e, ok := registry.entries[key]
	registry.mu.RUnlock()

	if !ok {
		registry.observe(key, metrics.LookupMissing)
		return nil, false, nil
	}

	obj, found, err := e.find(ctx, id)
	switch {
	case err != nil:
		registry.observe(key, metrics.LookupError)
		return nil, false, fmt.Errorf("contenttype: find %s %d: %w", key, id, err)
	case !found:
		registry.observe(key, metrics.LookupMissing)
		return nil, false, nil
	default:
		registry.observe(key, metrics.LookupFound)
		return obj, true, nil
	}
}

func (registry *Registry) observe(key, outcome string) {
	if registry.observer != nil {
		registry.observer.ObserveLookup(key, outcome)
	}
}
