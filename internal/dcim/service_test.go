// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/netinv/internal/dcim"
	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/apperr"
	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/serializer"
)

// memoryRepo implements dcim.Repository in memory.
type memoryRepo struct {
	sites   map[int64]*dcim.Site
	devices map[int64]*dcim.Device
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sites: make(map[int64]*dcim.Site), devices: make(map[int64]*dcim.Device)}
}

func (r *memoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *memoryRepo) ListSites(context.Context, int, int) ([]*dcim.Site, int, error) {
	out := make([]*dcim.Site, 0, len(r.sites))
	for _, site := range r.sites {
		out = append(out, site.Clone())
	}
	slices.SortFunc(out, func(a, b *dcim.Site) int { return int(a.ID - b.ID) })
	return out, len(out), nil
}

func (r *memoryRepo) GetSite(_ context.Context, id int64) (*dcim.Site, error) {
	site, ok := r.sites[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := site.Clone()
	clone.Tags = []string{}
	return clone, nil
}

func (r *memoryRepo) CreateSite(_ context.Context, site *dcim.Site) error {
	site.ID = r.id()
	r.sites[site.ID] = site.Clone()
	return nil
}

func (r *memoryRepo) UpdateSite(_ context.Context, site *dcim.Site, replaceASNs bool) error {
	stored, ok := r.sites[site.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	clone := site.Clone()
	if !replaceASNs {
		clone.ASNs = stored.ASNs
	}
	r.sites[site.ID] = clone
	return nil
}

func (r *memoryRepo) DeleteSite(_ context.Context, id int64) error {
	if _, ok := r.sites[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.sites, id)
	return nil
}

func (r *memoryRepo) ListDevices(_ context.Context, filter dcim.DeviceFilter, _, _ int) ([]*dcim.Device, int, error) {
	out := make([]*dcim.Device, 0)
	for _, device := range r.devices {
		if len(filter.SiteIDs) > 0 && !slices.Contains(filter.SiteIDs, device.SiteID) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, device.Status) {
			continue
		}
		out = append(out, device.Clone())
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetDevice(_ context.Context, id int64) (*dcim.Device, error) {
	device, ok := r.devices[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return device.Clone(), nil
}

func (r *memoryRepo) CreateDevice(_ context.Context, device *dcim.Device) error {
	device.ID = r.id()
	r.devices[device.ID] = device.Clone()
	return nil
}

func (r *memoryRepo) UpdateDevice(_ context.Context, device *dcim.Device) error {
	if _, ok := r.devices[device.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.devices[device.ID] = device.Clone()
	return nil
}

func (r *memoryRepo) DeleteDevice(_ context.Context, id int64) error {
	if _, ok := r.devices[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.devices, id)
	return nil
}

// tagRepo implements extras.TagRepository in memory.
type tagRepo struct {
	tags   map[int64]*extras.Tag
	tagged map[string][]int64
}

func newTagRepo(slugs ...string) *tagRepo {
	repo := &tagRepo{tags: make(map[int64]*extras.Tag), tagged: make(map[string][]int64)}
	for i, s := range slugs {
		id := int64(i + 1)
		repo.tags[id] = &extras.Tag{ID: id, Name: s, Slug: s, Color: extras.DefaultTagColor}
	}
	return repo
}

func objectKey(contentType string, id int64) string { return fmt.Sprintf("%s:%d", contentType, id) }

func (r *tagRepo) ListTags(context.Context, int, int) ([]*extras.Tag, int, error) {
	return nil, 0, errors.New("not used")
}

func (r *tagRepo) GetTag(_ context.Context, id int64) (*extras.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return tag.Clone(), nil
}

func (r *tagRepo) GetTagsBySlug(_ context.Context, slugs []string) ([]*extras.Tag, error) {
	var out []*extras.Tag
	for _, s := range slugs {
		for _, tag := range r.tags {
			if tag.Slug == s {
				out = append(out, tag.Clone())
			}
		}
	}
	return out, nil
}

func (r *tagRepo) CreateTag(context.Context, *extras.Tag) error { return errors.New("not used") }
func (r *tagRepo) UpdateTag(context.Context, *extras.Tag) error { return errors.New("not used") }
func (r *tagRepo) DeleteTag(context.Context, int64) error       { return errors.New("not used") }

func (r *tagRepo) ReplaceTaggedItems(_ context.Context, contentType string, objectID int64, tagIDs []int64) error {
	r.tagged[objectKey(contentType, objectID)] = tagIDs
	return nil
}

func (r *tagRepo) TagSlugsFor(_ context.Context, contentType string, objectIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range objectIDs {
		for _, tagID := range r.tagged[objectKey(contentType, id)] {
			out[id] = append(out[id], r.tags[tagID].Slug)
		}
	}
	return out, nil
}

func (r *tagRepo) DeleteTaggedItems(_ context.Context, contentType string, objectID int64) error {
	delete(r.tagged, objectKey(contentType, objectID))
	return nil
}

// recorder captures journal cleanups and cache invalidations.
type recorder struct {
	cleaned     []string
	invalidated []string
	err         error
}

func (r *recorder) DeleteFor(_ context.Context, contentType string, objectID int64) error {
	r.cleaned = append(r.cleaned, objectKey(contentType, objectID))
	return nil
}

func (r *recorder) Invalidate(_ context.Context, contentType string, id int64) error {
	r.invalidated = append(r.invalidated, objectKey(contentType, id))
	return r.err
}

type fixture struct {
	repo     *memoryRepo
	tags     *tagRepo
	recorder *recorder
	service  *dcim.Service
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemoryRepo()
	tags := newTagRepo("core", "edge")
	rec := &recorder{}

	return &fixture{
		repo:     repo,
		tags:     tags,
		recorder: rec,
		service:  dcim.NewService(repo, extras.NewTagService(tags, nil, logger), rec, rec, nil, logger),
	}
}

func (f *fixture) site(t *testing.T) *dcim.Site {
	t.Helper()
	site, err := f.service.CreateSite(context.Background(), serializer.Attrs{"name": "DC East"})
	require.NoError(t, err)
	return site
}

func TestService_CreateSite(t *testing.T) {
	f := newFixture()

	site, err := f.service.CreateSite(context.Background(), serializer.Attrs{
		"name":          "DC East",
		"asns":          []any{65001.0, 64512.0},
		"tags":          []any{"core", map[string]any{"slug": "edge"}},
		"custom_fields": map[string]any{"power_feed": "A"},
		"id":            json.Number("42"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), site.ID)
	assert.Equal(t, "dc-east", site.Slug)
	assert.Equal(t, dcim.SiteStatusActive, site.Status)
	assert.Equal(t, []int64{64512, 65001}, site.ASNs)
	assert.Equal(t, []string{"core", "edge"}, site.Tags)
	assert.Equal(t, extras.CustomFieldData{"power_feed": "A"}, site.CustomFields)

	stored, err := f.service.GetSite(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Equal(t, site, stored)
}

func TestService_CreateSiteCollectsAuxErrors(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateSite(context.Background(), serializer.Attrs{
		"name":          "DC East",
		"asns":          []any{0.0},
		"custom_fields": map[string]any{"Bad Key": "x"},
	})

	messages := apperr.FieldMessages(err)
	assert.Contains(t, messages, dcim.FieldASNs)
	assert.Contains(t, messages, "custom_fields.Bad Key")
	assert.Empty(t, f.repo.sites)
}

func TestService_CreateSiteRejectsUnknownTag(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateSite(context.Background(), serializer.Attrs{"name": "DC East", "tags": []any{"lab"}})
	assert.Equal(t, []string{"Unknown tags: lab"}, apperr.FieldMessages(err)["tags"])
	assert.Empty(t, f.repo.sites)
}

func TestService_UpdateSitePartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	site, err := f.service.CreateSite(ctx, serializer.Attrs{
		"name":          "DC East",
		"asns":          []any{65001.0},
		"tags":          []any{"core"},
		"custom_fields": map[string]any{"power_feed": "A", "floor": 2.0},
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateSite(ctx, site.ID, serializer.Attrs{
		"status":        "retired",
		"custom_fields": map[string]any{"floor": nil, "cage": "C4"},
	})
	require.NoError(t, err)

	assert.Equal(t, "DC East", updated.Name)
	assert.Equal(t, dcim.SiteStatusRetired, updated.Status)
	assert.Equal(t, []int64{65001}, updated.ASNs)
	assert.Equal(t, []string{"core"}, updated.Tags)
	assert.Equal(t, extras.CustomFieldData{"power_feed": "A", "cage": "C4"}, updated.CustomFields)
	assert.Equal(t, []string{"dcim.site:1"}, f.recorder.invalidated)

	updated, err = f.service.UpdateSite(ctx, site.ID, serializer.Attrs{"asns": []any{}, "tags": []any{}})
	require.NoError(t, err)
	assert.Empty(t, updated.ASNs)
	assert.Empty(t, updated.Tags)
}

func TestService_UpdateSiteInvalidLeavesStoredRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	site := f.site(t)

	_, err := f.service.UpdateSite(ctx, site.ID, serializer.Attrs{"name": ""})
	assert.Equal(t, []string{"This field is required"}, apperr.FieldMessages(err)["name"])

	stored, err := f.service.GetSite(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, "DC East", stored.Name)
	assert.Empty(t, f.recorder.invalidated)
}

func TestService_UpdateSiteNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateSite(context.Background(), 99, serializer.Attrs{"name": "x"})
	assert.True(t, dberr.IsNotFound(err))
}

func TestService_DeleteSiteCleansUp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	site, err := f.service.CreateSite(ctx, serializer.Attrs{"name": "DC East", "tags": []any{"core"}})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteSite(ctx, site.ID))
	assert.Empty(t, f.tags.tagged)
	assert.Equal(t, []string{"dcim.site:1"}, f.recorder.cleaned)
	assert.Equal(t, []string{"dcim.site:1"}, f.recorder.invalidated)

	assert.True(t, dberr.IsNotFound(f.service.DeleteSite(ctx, site.ID)))
}

func TestService_InvalidateFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.recorder.err = errors.New("redis down")
	site := f.site(t)

	_, err := f.service.UpdateSite(context.Background(), site.ID, serializer.Attrs{"facility": "Equinix DC2"})
	assert.NoError(t, err)
}

func TestService_CreateDevice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	site := f.site(t)

	device, err := f.service.CreateDevice(ctx, serializer.Attrs{
		"name":     "edge-sw-01",
		"site_id":  json.Number(fmt.Sprint(site.ID)),
		"position": json.Number("12"),
		"tags":     []any{"edge"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edge-sw-01", serializer.Display(device))
	assert.Equal(t, int64(12), *device.Position)
	assert.Equal(t, []string{"edge"}, device.Tags)

	_, err = f.service.CreateDevice(ctx, serializer.Attrs{"site_id": json.Number("99")})
	assert.Equal(t, []string{"Related object does not exist"}, apperr.FieldMessages(err)["site_id"])

	_, err = f.service.CreateDevice(ctx, serializer.Attrs{"site_id": json.Number("1"), "position": json.Number("0")})
	assert.Equal(t, []string{"Must be between 1 and 48"}, apperr.FieldMessages(err)["position"])
}

func TestService_UpdateDevice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	site := f.site(t)

	device, err := f.service.CreateDevice(ctx, serializer.Attrs{
		"name":    "edge-sw-01",
		"site_id": json.Number(fmt.Sprint(site.ID)),
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateDevice(ctx, device.ID, serializer.Attrs{"name": nil, "serial": "FDO1234"})
	require.NoError(t, err)
	assert.Nil(t, updated.Name)
	assert.Equal(t, "FDO1234", updated.Serial)
	assert.Equal(t, fmt.Sprintf("Unnamed device (%d)", device.ID), serializer.Display(updated))

	_, err = f.service.UpdateDevice(ctx, device.ID, serializer.Attrs{"site_id": json.Number("99")})
	assert.Equal(t, []string{"Related object does not exist"}, apperr.FieldMessages(err)["site_id"])
}

func TestService_ListDevicesFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	east := f.site(t)

	west, err := f.service.CreateSite(ctx, serializer.Attrs{"name": "DC West"})
	require.NoError(t, err)

	for _, siteID := range []int64{east.ID, west.ID, west.ID} {
		_, err := f.service.CreateDevice(ctx, serializer.Attrs{"site_id": json.Number(fmt.Sprint(siteID))})
		require.NoError(t, err)
	}

	devices, total, err := f.service.ListDevices(ctx, dcim.DeviceFilter{SiteIDs: []int64{west.ID}}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, device := range devices {
		assert.Equal(t, west.ID, device.SiteID)
		assert.Equal(t, []string{}, device.Tags)
	}
}

func TestService_DeleteDevice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	site := f.site(t)

	device, err := f.service.CreateDevice(ctx, serializer.Attrs{"site_id": json.Number(fmt.Sprint(site.ID))})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteDevice(ctx, device.ID))
	assert.Equal(t, []string{objectKey(dcim.ContentTypeDevice, device.ID)}, f.recorder.cleaned)

	_, err = f.service.GetDevice(ctx, device.ID)
	assert.True(t, dberr.IsNotFound(err))
}
