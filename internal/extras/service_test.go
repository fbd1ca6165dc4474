// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/apperr"
	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/serializer"
)

// memoryRepo implements TagRepository and JournalRepository in memory.
type memoryRepo struct {
	tags    map[int64]*extras.Tag
	entries map[int64]*extras.JournalEntry
	tagged  map[string][]int64
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		tags:    make(map[int64]*extras.Tag),
		entries: make(map[int64]*extras.JournalEntry),
		tagged:  make(map[string][]int64),
	}
}

func (r *memoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func objectKey(contentType string, id int64) string { return fmt.Sprintf("%s:%d", contentType, id) }

func (r *memoryRepo) ListTags(context.Context, int, int) ([]*extras.Tag, int, error) {
	out := make([]*extras.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		out = append(out, tag.Clone())
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetTag(_ context.Context, id int64) (*extras.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return tag.Clone(), nil
}

func (r *memoryRepo) GetTagsBySlug(_ context.Context, slugs []string) ([]*extras.Tag, error) {
	var out []*extras.Tag
	for _, tag := range r.tags {
		if slices.Contains(slugs, tag.Slug) {
			out = append(out, tag.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateTag(_ context.Context, tag *extras.Tag) error {
	tag.ID = r.id()
	r.tags[tag.ID] = tag.Clone()
	return nil
}

func (r *memoryRepo) UpdateTag(_ context.Context, tag *extras.Tag) error {
	r.tags[tag.ID] = tag.Clone()
	return nil
}

func (r *memoryRepo) DeleteTag(_ context.Context, id int64) error {
	delete(r.tags, id)
	return nil
}

func (r *memoryRepo) ReplaceTaggedItems(_ context.Context, contentType string, objectID int64, tagIDs []int64) error {
	r.tagged[objectKey(contentType, objectID)] = tagIDs
	return nil
}

func (r *memoryRepo) TagSlugsFor(_ context.Context, contentType string, objectIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range objectIDs {
		for _, tagID := range r.tagged[objectKey(contentType, id)] {
			out[id] = append(out[id], r.tags[tagID].Slug)
		}
	}
	return out, nil
}

func (r *memoryRepo) DeleteTaggedItems(_ context.Context, contentType string, objectID int64) error {
	delete(r.tagged, objectKey(contentType, objectID))
	return nil
}

func (r *memoryRepo) ListEntries(_ context.Context, filter extras.JournalFilter, _, _ int) ([]*extras.JournalEntry, int, error) {
	var out []*extras.JournalEntry
	for _, entry := range r.entries {
		if filter.AssignedObjectType != "" && entry.AssignedObjectType != filter.AssignedObjectType {
			continue
		}
		out = append(out, entry.Clone())
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetEntry(_ context.Context, id int64) (*extras.JournalEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return entry.Clone(), nil
}

func (r *memoryRepo) CreateEntry(_ context.Context, entry *extras.JournalEntry) error {
	entry.ID = r.id()
	entry.Created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.entries[entry.ID] = entry.Clone()
	return nil
}

func (r *memoryRepo) UpdateEntry(_ context.Context, entry *extras.JournalEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.entries[entry.ID] = entry.Clone()
	return nil
}

func (r *memoryRepo) DeleteEntry(_ context.Context, id int64) error {
	if _, ok := r.entries[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memoryRepo) DeleteEntriesFor(_ context.Context, contentType string, objectID int64) error {
	for id, entry := range r.entries {
		if entry.AssignedObjectType == contentType && entry.AssignedObjectID == objectID {
			delete(r.entries, id)
		}
	}
	return nil
}

// siteResolver knows a single site.
type siteResolver struct {
	calls int
}

func (r *siteResolver) FindByKey(_ context.Context, contentType string, id int64) (*serializer.Object, bool, error) {
	r.calls++
	if contentType == "dcim.site" && id == 1 {
		return &serializer.Object{ContentType: contentType, ID: id, Display: "DC East"}, true, nil
	}
	return nil, false, nil
}

type fixture struct {
	repo     *memoryRepo
	resolver *siteResolver
	tags     *extras.TagService
	journal  *extras.JournalService
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemoryRepo()
	resolver := &siteResolver{}
	tags := extras.NewTagService(repo, nil, logger)

	return &fixture{
		repo:     repo,
		resolver: resolver,
		tags:     tags,
		journal:  extras.NewJournalService(repo, tags, resolver, nil, logger),
	}
}

func TestTagService_CreateDefaultsSlug(t *testing.T) {
	f := newFixture()

	tag, err := f.tags.Create(context.Background(), serializer.Attrs{"name": "Core Network", "id": json.Number("99")})
	require.NoError(t, err)

	assert.Equal(t, int64(1), tag.ID)
	assert.Equal(t, "core-network", tag.Slug)
	assert.Equal(t, extras.DefaultTagColor, tag.Color)
}

func TestTagService_UpdatePartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.tags.Create(ctx, serializer.Attrs{"name": "Core"})
	require.NoError(t, err)

	updated, err := f.tags.Update(ctx, created.ID, serializer.Attrs{"color": "00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "Core", updated.Name)
	assert.Equal(t, "00ff00", updated.Color)

	_, err = f.tags.Update(ctx, created.ID, serializer.Attrs{"slug": "Not A Slug"})
	assert.True(t, apperr.IsValidation(err))

	stored, err := f.tags.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "core", stored.Slug)
}

func TestTagService_ResolveSlugs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.tags.Create(ctx, serializer.Attrs{"name": "core"})
	require.NoError(t, err)

	tags, err := f.tags.ResolveSlugs(ctx, []string{"core"})
	require.NoError(t, err)
	require.Len(t, tags, 1)

	_, err = f.tags.ResolveSlugs(ctx, []string{"core", "lab", "edge"})
	assert.Equal(t, []string{"Unknown tags: lab, edge"}, apperr.FieldMessages(err)["tags"])
}

func TestJournalService_CreateResolvesAssignedObject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.tags.Create(ctx, serializer.Attrs{"name": "maintenance"})
	require.NoError(t, err)

	entry, err := f.journal.Create(ctx, "alice", serializer.Attrs{
		"assigned_object_type": "dcim.site",
		"assigned_object_id":   json.Number("1"),
		"kind":                 "warning",
		"comments":             "Generator test at 02:00",
		"tags":                 []any{"maintenance"},
		"created_by":           "mallory",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", entry.CreatedBy)
	assert.Equal(t, []string{"maintenance"}, entry.Tags)
	require.NotNil(t, entry.AssignedObject)
	assert.Equal(t, "DC East", entry.AssignedObject.Display)
}

func TestJournalService_CreateWithMissingObject(t *testing.T) {
	f := newFixture()

	entry, err := f.journal.Create(context.Background(), "alice", serializer.Attrs{
		"assigned_object_type": "dcim.device",
		"assigned_object_id":   json.Number("404"),
		"comments":             "Device not racked yet",
	})
	require.NoError(t, err)

	assert.Nil(t, entry.AssignedObject)
	assert.Equal(t, extras.KindInfo, entry.Kind)
	assert.Equal(t, []string{}, entry.Tags)
}

func TestJournalService_CreateInvalid(t *testing.T) {
	f := newFixture()

	_, err := f.journal.Create(context.Background(), "alice", serializer.Attrs{
		"assigned_object_type": "dcim.site",
		"assigned_object_id":   json.Number("1"),
		"kind":                 "panic",
		"comments":             "x",
	})

	assert.Equal(t, map[string][]string{"kind": {"Must be one of: info, success, warning, danger"}}, apperr.FieldMessages(err))
	assert.Empty(t, f.repo.entries)
}

func TestJournalService_CreateUnknownTag(t *testing.T) {
	f := newFixture()

	_, err := f.journal.Create(context.Background(), "alice", serializer.Attrs{
		"assigned_object_type": "dcim.site",
		"assigned_object_id":   json.Number("1"),
		"comments":             "x",
		"tags":                 []any{"ghost"},
	})

	assert.Equal(t, []string{"Unknown tags: ghost"}, apperr.FieldMessages(err)["tags"])
	assert.Empty(t, f.repo.entries)
}

func TestJournalService_UpdatePartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.journal.Create(ctx, "alice", serializer.Attrs{
		"assigned_object_type": "dcim.site",
		"assigned_object_id":   json.Number("1"),
		"comments":             "first",
	})
	require.NoError(t, err)
	callsAfterCreate := f.resolver.calls

	updated, err := f.journal.Update(ctx, created.ID, serializer.Attrs{"kind": "success"})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Comments)
	assert.Equal(t, extras.KindSuccess, updated.Kind)
	assert.Equal(t, "alice", updated.CreatedBy)
	require.NotNil(t, updated.AssignedObject)

	// One lookup to hydrate the bound entry, one to hydrate the result.
	assert.Equal(t, callsAfterCreate+2, f.resolver.calls)

	moved, err := f.journal.Update(ctx, created.ID, serializer.Attrs{"assigned_object_id": json.Number("2")})
	require.NoError(t, err)
	assert.Nil(t, moved.AssignedObject)
	assert.Equal(t, int64(2), moved.AssignedObjectID)

	_, err = f.journal.Update(ctx, 999, serializer.Attrs{"kind": "info"})
	assert.True(t, dberr.IsNotFound(err))
}

func TestJournalService_DeleteFor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, id := range []string{"1", "1", "2"} {
		_, err := f.journal.Create(ctx, "alice", serializer.Attrs{
			"assigned_object_type": "dcim.site",
			"assigned_object_id":   json.Number(id),
			"comments":             "note",
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.journal.DeleteFor(ctx, "dcim.site", 1))

	entries, total, err := f.journal.List(ctx, extras.JournalFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(2), entries[0].AssignedObjectID)
}
