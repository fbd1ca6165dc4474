// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/slice"
	"github.com/taibuivan/netinv/pkg/slug"
)

// # Tags

// TagService manages tags and their assignment to taggable records.
type TagService struct {
	repo       TagRepository
	serializer *serializer.Serializer[*Tag]
	logger     *slog.Logger
}

// NewTagService creates a TagService.
func NewTagService(repo TagRepository, opts []serializer.Option, logger *slog.Logger) *TagService {
	return &TagService{
		repo:       repo,
		serializer: serializer.New(TagMeta, NewTag, slices.Concat(opts, []serializer.Option{serializer.WithLogger(logger)})...),
		logger:     logger,
	}
}

func (service *TagService) List(ctx context.Context, limit, offset int) ([]*Tag, int, error) {
	return service.repo.ListTags(ctx, limit, offset)
}

func (service *TagService) Get(ctx context.Context, id int64) (*Tag, error) {
	return service.repo.GetTag(ctx, id)
}

// Create validates data and persists a new tag. The slug defaults from the name.
func (service *TagService) Create(ctx context.Context, data serializer.Attrs) (*Tag, error) {
	data = service.serializer.ToInternalValue(data)
	if name, ok := data["name"].(string); ok && !data.Has("slug") {
		data["slug"] = slug.From(name)
	}

	if _, err := service.serializer.Validate(ctx, data); err != nil {
		return nil, err
	}

	tag, err := service.serializer.Materialize(data)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "tag_created", slog.Int64("tag_id", tag.ID), slog.String("slug", tag.Slug))
	return tag, nil
}

// Update applies a partial update to an existing tag.
func (service *TagService) Update(ctx context.Context, id int64, data serializer.Attrs) (*Tag, error) {
	existing, err := service.repo.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	bound := service.serializer.Bind(existing)
	data = bound.ToInternalValue(data)

	if _, err := bound.Validate(ctx, data); err != nil {
		return nil, err
	}

	tag, err := bound.Materialize(data)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (service *TagService) Delete(ctx context.Context, id int64) error {
	if err := service.repo.DeleteTag(ctx, id); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "tag_deleted", slog.Int64("tag_id", id))
	return nil
}

// ResolveSlugs loads the tags named by slugs, failing on any unknown slug.
func (service *TagService) ResolveSlugs(ctx context.Context, slugs []string) ([]*Tag, error) {
	if len(slugs) == 0 {
		return []*Tag{}, nil
	}

	tags, err := service.repo.GetTagsBySlug(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := slice.Map(tags, func(t *Tag) string { return t.Slug })
	if missing := slice.Difference(slugs, found); len(missing) > 0 {
		return nil, validate.FieldError(serializer.FieldTags, "Unknown tags: "+strings.Join(missing, ", "))
	}
	return tags, nil
}

// TagsFromAttrs resolves the "tags" attribute of a write. It returns nil when
// the attribute is absent, meaning the current assignment is kept.
func (service *TagService) TagsFromAttrs(ctx context.Context, data serializer.Attrs) ([]*Tag, error) {
	if !data.Has(serializer.FieldTags) {
		return nil, nil
	}

	slugs, err := ParseTagSlugs(data[serializer.FieldTags])
	if err != nil {
		return nil, err
	}
	return service.ResolveSlugs(ctx, slugs)
}

// Assign replaces the tag set of one object and returns the assigned slugs.
func (service *TagService) Assign(ctx context.Context, contentType string, objectID int64, tags []*Tag) ([]string, error) {
	ids := slice.Map(tags, func(t *Tag) int64 { return t.ID })
	if err := service.repo.ReplaceTaggedItems(ctx, contentType, objectID, ids); err != nil {
		return nil, fmt.Errorf("extras: assign tags to %s %d: %w", contentType, objectID, err)
	}

	slugs := slice.Map(tags, func(t *Tag) string { return t.Slug })
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}

// SlugsFor returns the tag slugs of each object.
func (service *TagService) SlugsFor(ctx context.Context, contentType string, objectIDs []int64) (map[int64][]string, error) {
	return service.repo.TagSlugsFor(ctx, contentType, objectIDs)
}

// Clear removes every tag from one object.
func (service *TagService) Clear(ctx context.Context, contentType string, objectID int64) error {
	return service.repo.DeleteTaggedItems(ctx, contentType, objectID)
}

// # Journal

// JournalService manages journal entries.
type JournalService struct {
	repo       JournalRepository
	tags       *TagService
	resolver   serializer.ObjectResolver
	serializer *serializer.Serializer[*JournalEntry]
	logger     *slog.Logger
}

// NewJournalService creates a JournalService. resolver resolves the assigned
// object both during validation and on reads.
func NewJournalService(repo JournalRepository, tags *TagService, resolver serializer.ObjectResolver, opts []serializer.Option, logger *slog.Logger) *JournalService {
	opts = slices.Concat(opts, []serializer.Option{serializer.WithResolver(resolver), serializer.WithLogger(logger)})
	return &JournalService{
		repo:       repo,
		tags:       tags,
		resolver:   resolver,
		serializer: serializer.New(JournalEntryMeta, NewJournalEntry, opts...),
		logger:     logger,
	}
}

func (service *JournalService) List(ctx context.Context, filter JournalFilter, limit, offset int) ([]*JournalEntry, int, error) {
	entries, total, err := service.repo.ListEntries(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := service.hydrate(ctx, entries...); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (service *JournalService) Get(ctx context.Context, id int64) (*JournalEntry, error) {
	entry, err := service.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := service.hydrate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Create validates data and records a new entry authored by operator.
func (service *JournalService) Create(ctx context.Context, operator string, data serializer.Attrs) (*JournalEntry, error) {
	data = service.serializer.ToInternalValue(data)

	if _, err := service.serializer.Validate(ctx, data); err != nil {
		return nil, err
	}

	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	entry, err := service.serializer.Materialize(data)
	if err != nil {
		return nil, err
	}
	entry.CreatedBy = operator

	if err := service.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	if tags != nil {
		if _, err := service.tags.Assign(ctx, ContentTypeJournalEntry, entry.ID, tags); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(ctx, "journal_entry_created",
		slog.Int64("entry_id", entry.ID),
		slog.String("assigned_object_type", entry.AssignedObjectType),
		slog.Int64("assigned_object_id", entry.AssignedObjectID),
	)

	if err := service.hydrate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update applies a partial update to an existing entry.
func (service *JournalService) Update(ctx context.Context, id int64, data serializer.Attrs) (*JournalEntry, error) {
	existing, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	bound := service.serializer.Bind(existing)
	data = bound.ToInternalValue(data)

	if _, err := bound.Validate(ctx, data); err != nil {
		return nil, err
	}

	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	entry, err := bound.Materialize(data)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	if tags != nil {
		if _, err := service.tags.Assign(ctx, ContentTypeJournalEntry, entry.ID, tags); err != nil {
			return nil, err
		}
	}

	if err := service.hydrate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (service *JournalService) Delete(ctx context.Context, id int64) error {
	if err := service.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}
	return service.tags.Clear(ctx, ContentTypeJournalEntry, id)
}

// DeleteFor removes the journal of a deleted object.
func (service *JournalService) DeleteFor(ctx context.Context, contentType string, objectID int64) error {
	return service.repo.DeleteEntriesFor(ctx, contentType, objectID)
}

// hydrate fills the assigned object and tags of entries.
func (service *JournalService) hydrate(ctx context.Context, entries ...*JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := slice.Map(entries, func(e *JournalEntry) int64 { return e.ID })
	tags, err := service.tags.SlugsFor(ctx, ContentTypeJournalEntry, ids)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		entry.Tags = tags[entry.ID]
		if entry.Tags == nil {
			entry.Tags = []string{}
		}

		obj, found, err := service.resolver.FindByKey(ctx, entry.AssignedObjectType, entry.AssignedObjectID)
		if err != nil {
			return err
		}
		if found {
			entry.AssignedObject = obj
		} else {
			entry.AssignedObject = nil
		}
	}
	return nil
}
