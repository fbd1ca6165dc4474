// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package serializer_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
)

// rack has a custom string form, an M2M relation and no generic references.
type rack struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Units int64   `json:"units"`
	Notes *string `json:"notes"`
}

var rackMeta = serializer.NewMeta("test.rack",
	serializer.Plain("name", "string"),
	serializer.Plain("units", "integer"),
	serializer.Plain("notes", "string").Nullable(),
	serializer.ManyToMany("vlans", "integer"),
	serializer.List(serializer.FieldTags, "string"),
	serializer.Plain(serializer.FieldCustomFields, "object"),
)

func newRack() *rack { return &rack{Units: 42} }

func (r *rack) String() string { return "Rack " + r.Name }

func (r *rack) Clone() *rack {
	clone := *r
	return &clone
}

func (r *rack) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	p.String("name", &r.Name)
	p.Int64("units", &r.Units)
	p.NullableString("notes", &r.Notes)
	return p.Err()
}

func (r *rack) FullClean() error {
	v := &validate.Validator{}
	v.Required("name", r.Name).MaxLen("name", r.Name, 20)
	v.Range("units", r.Units, 1, 48)
	return v.Err()
}

// note has no custom string form and a generic foreign key "target".
type note struct {
	ID         int64              `json:"id"`
	TargetType string             `json:"target_type"`
	TargetID   int64              `json:"target_id"`
	Target     *serializer.Object `json:"target"`
	Body       string             `json:"body"`

	onClean func(*note)
}

var noteMeta = serializer.NewMeta("test.note",
	serializer.Plain("target_type", "string"),
	serializer.Plain("target_id", "integer"),
	serializer.GenericForeignKey("target", "target_type", "target_id"),
	serializer.Plain("body", "string"),
)

func (n *note) PrimaryKey() int64 { return n.ID }

func (n *note) Clone() *note {
	clone := *n
	return &clone
}

func (n *note) ApplyPatch(attrs serializer.Attrs) error {
	p := serializer.NewPatcher(attrs)
	typeChanged := p.String("target_type", &n.TargetType)
	idChanged := p.Int64("target_id", &n.TargetID)
	p.String("body", &n.Body)
	if typeChanged || idChanged {
		n.Target = nil
	}
	return p.Err()
}

func (n *note) FullClean() error {
	if n.onClean != nil {
		n.onClean(n)
	}
	v := &validate.Validator{}
	v.Required("body", n.Body)
	v.Custom("target_id", n.Target != nil && n.Target.ID != n.TargetID, "Reference does not match target_id")
	return v.Err()
}

func (n *note) GenericKey(field string) (string, int64) {
	return n.TargetType, n.TargetID
}

func (n *note) GenericObject(field string) *serializer.Object {
	return n.Target
}

func (n *note) SetGenericObject(field string, obj *serializer.Object) {
	n.Target = obj
}

// fakeResolver serves objects from memory and counts lookups.
type fakeResolver struct {
	objects map[string]*serializer.Object
	err     error
	calls   []string
}

func newFakeResolver(objects ...*serializer.Object) *fakeResolver {
	r := &fakeResolver{objects: make(map[string]*serializer.Object)}
	for _, obj := range objects {
		r.objects[fmt.Sprintf("%s:%d", obj.ContentType, obj.ID)] = obj
	}
	return r
}

func (r *fakeResolver) FindByKey(_ context.Context, contentType string, id int64) (*serializer.Object, bool, error) {
	key := fmt.Sprintf("%s:%d", contentType, id)
	r.calls = append(r.calls, key)
	if r.err != nil {
		return nil, false, r.err
	}
	obj, ok := r.objects[key]
	return obj, ok, nil
}

// recordingObserver captures validation outcomes.
type recordingObserver struct {
	outcomes []error
}

func (o *recordingObserver) ObserveValidation(_ string, err error) {
	o.outcomes = append(o.outcomes, err)
}

var errStorageDown = errors.New("storage down")
