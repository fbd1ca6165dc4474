// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim

import (
	"context"
	"log/slog"
	"slices"

	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/slice"
	"github.com/taibuivan/netinv/pkg/slug"
)

// Invalidator drops cached resolutions of an object after it changes.
type Invalidator interface {
	Invalidate(ctx context.Context, contentType string, id int64) error
}

// JournalCleaner removes the journal of a deleted object.
type JournalCleaner interface {
	DeleteFor(ctx context.Context, contentType string, objectID int64) error
}

// Service manages sites and devices.
type Service struct {
	repo        Repository
	tags        *extras.TagService
	journal     JournalCleaner
	invalidator Invalidator
	sites       *serializer.Serializer[*Site]
	devices     *serializer.Serializer[*Device]
	logger      *slog.Logger
}

// NewService creates a Service. invalidator may be nil when no resolver cache
// is in use.
func NewService(repo Repository, tags *extras.TagService, journal JournalCleaner, invalidator Invalidator, opts []serializer.Option, logger *slog.Logger) *Service {
	opts = slices.Concat(opts, []serializer.Option{serializer.WithLogger(logger)})
	return &Service{
		repo:        repo,
		tags:        tags,
		journal:     journal,
		invalidator: invalidator,
		sites:       serializer.New(SiteMeta, NewSite, opts...),
		devices:     serializer.New(DeviceMeta, NewDevice, opts...),
		logger:      logger,
	}
}

// # Sites

func (service *Service) ListSites(ctx context.Context, limit, offset int) ([]*Site, int, error) {
	sites, total, err := service.repo.ListSites(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := slice.Map(sites, func(s *Site) int64 { return s.ID })
	tags, err := service.tags.SlugsFor(ctx, ContentTypeSite, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, site := range sites {
		site.Tags = tagsOrEmpty(tags[site.ID])
	}
	return sites, total, nil
}

func (service *Service) GetSite(ctx context.Context, id int64) (*Site, error) {
	site, err := service.repo.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := service.tags.SlugsFor(ctx, ContentTypeSite, []int64{id})
	if err != nil {
		return nil, err
	}
	site.Tags = tagsOrEmpty(tags[id])
	return site, nil
}

// CreateSite validates data and persists a new site. The slug defaults from
// the name.
func (service *Service) CreateSite(ctx context.Context, data serializer.Attrs) (*Site, error) {
	data = service.sites.ToInternalValue(data)
	if name, ok := data["name"].(string); ok && !data.Has("slug") {
		data["slug"] = slug.From(name)
	}

	if _, err := service.sites.Validate(ctx, data); err != nil {
		return nil, err
	}

	aux, err := parseSiteAux(data)
	if err != nil {
		return nil, err
	}
	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	site, err := service.sites.Materialize(data)
	if err != nil {
		return nil, err
	}
	if aux.asns != nil {
		site.ASNs = aux.asns
	}
	if aux.customFields != nil {
		site.CustomFields = site.CustomFields.Merge(aux.customFields)
	}

	if err := service.repo.CreateSite(ctx, site); err != nil {
		return nil, err
	}

	if tags != nil {
		if site.Tags, err = service.tags.Assign(ctx, ContentTypeSite, site.ID, tags); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(ctx, "site_created", slog.Int64("site_id", site.ID), slog.String("slug", site.Slug))
	return site, nil
}

// UpdateSite applies a partial update to an existing site. Custom fields are
// merged key by key; ASNs and tags are replaced when present.
func (service *Service) UpdateSite(ctx context.Context, id int64, data serializer.Attrs) (*Site, error) {
	existing, err := service.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	bound := service.sites.Bind(existing)
	data = bound.ToInternalValue(data)

	if _, err := bound.Validate(ctx, data); err != nil {
		return nil, err
	}

	aux, err := parseSiteAux(data)
	if err != nil {
		return nil, err
	}
	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	site, err := bound.Materialize(data)
	if err != nil {
		return nil, err
	}
	if aux.asns != nil {
		site.ASNs = aux.asns
	}
	if aux.customFields != nil {
		site.CustomFields = site.CustomFields.Merge(aux.customFields)
	}

	if err := service.repo.UpdateSite(ctx, site, aux.asns != nil); err != nil {
		return nil, err
	}

	if tags != nil {
		if site.Tags, err = service.tags.Assign(ctx, ContentTypeSite, site.ID, tags); err != nil {
			return nil, err
		}
	}

	service.invalidate(ctx, ContentTypeSite, site.ID)
	return site, nil
}

// DeleteSite removes a site with its tags and journal. Sites that still hold
// devices cannot be deleted.
func (service *Service) DeleteSite(ctx context.Context, id int64) error {
	if err := service.repo.DeleteSite(ctx, id); err != nil {
		return err
	}
	if err := service.cleanup(ctx, ContentTypeSite, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "site_deleted", slog.Int64("site_id", id))
	return nil
}

type siteAux struct {
	asns         []int64
	customFields extras.CustomFieldData
}

// parseSiteAux validates the attributes a site stores outside its own row.
func parseSiteAux(data serializer.Attrs) (siteAux, error) {
	var aux siteAux
	v := &validate.Validator{}

	if data.Has(FieldASNs) {
		asns, err := ValidateASNs(data[FieldASNs])
		v.Merge(err)
		aux.asns = asns
	}
	if data.Has(serializer.FieldCustomFields) {
		customFields, err := extras.ValidateCustomFields(data[serializer.FieldCustomFields])
		v.Merge(err)
		aux.customFields = customFields
	}

	return aux, v.Err()
}

// # Devices

func (service *Service) ListDevices(ctx context.Context, filter DeviceFilter, limit, offset int) ([]*Device, int, error) {
	devices, total, err := service.repo.ListDevices(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := slice.Map(devices, func(d *Device) int64 { return d.ID })
	tags, err := service.tags.SlugsFor(ctx, ContentTypeDevice, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, device := range devices {
		device.Tags = tagsOrEmpty(tags[device.ID])
	}
	return devices, total, nil
}

func (service *Service) GetDevice(ctx context.Context, id int64) (*Device, error) {
	device, err := service.repo.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := service.tags.SlugsFor(ctx, ContentTypeDevice, []int64{id})
	if err != nil {
		return nil, err
	}
	device.Tags = tagsOrEmpty(tags[id])
	return device, nil
}

// CreateDevice validates data and persists a new device.
func (service *Service) CreateDevice(ctx context.Context, data serializer.Attrs) (*Device, error) {
	data = service.devices.ToInternalValue(data)

	if _, err := service.devices.Validate(ctx, data); err != nil {
		return nil, err
	}

	customFields, err := parseCustomFields(data)
	if err != nil {
		return nil, err
	}
	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	device, err := service.devices.Materialize(data)
	if err != nil {
		return nil, err
	}
	if err := service.requireSite(ctx, device.SiteID); err != nil {
		return nil, err
	}
	if customFields != nil {
		device.CustomFields = device.CustomFields.Merge(customFields)
	}

	if err := service.repo.CreateDevice(ctx, device); err != nil {
		return nil, err
	}

	if tags != nil {
		if device.Tags, err = service.tags.Assign(ctx, ContentTypeDevice, device.ID, tags); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(ctx, "device_created",
		slog.Int64("device_id", device.ID),
		slog.Int64("site_id", device.SiteID),
	)
	return device, nil
}

// UpdateDevice applies a partial update to an existing device.
func (service *Service) UpdateDevice(ctx context.Context, id int64, data serializer.Attrs) (*Device, error) {
	existing, err := service.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}

	bound := service.devices.Bind(existing)
	data = bound.ToInternalValue(data)

	if _, err := bound.Validate(ctx, data); err != nil {
		return nil, err
	}

	customFields, err := parseCustomFields(data)
	if err != nil {
		return nil, err
	}
	tags, err := service.tags.TagsFromAttrs(ctx, data)
	if err != nil {
		return nil, err
	}

	device, err := bound.Materialize(data)
	if err != nil {
		return nil, err
	}
	if device.SiteID != existing.SiteID {
		if err := service.requireSite(ctx, device.SiteID); err != nil {
			return nil, err
		}
	}
	if customFields != nil {
		device.CustomFields = device.CustomFields.Merge(customFields)
	}

	if err := service.repo.UpdateDevice(ctx, device); err != nil {
		return nil, err
	}

	if tags != nil {
		if device.Tags, err = service.tags.Assign(ctx, ContentTypeDevice, device.ID, tags); err != nil {
			return nil, err
		}
	}

	service.invalidate(ctx, ContentTypeDevice, device.ID)
	return device, nil
}

// DeleteDevice removes a device with its tags and journal.
func (service *Service) DeleteDevice(ctx context.Context, id int64) error {
	if err := service.repo.DeleteDevice(ctx, id); err != nil {
		return err
	}
	if err := service.cleanup(ctx, ContentTypeDevice, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "device_deleted", slog.Int64("device_id", id))
	return nil
}

// requireSite fails with a field error when the referenced site is missing.
func (service *Service) requireSite(ctx context.Context, siteID int64) error {
	if _, err := service.repo.GetSite(ctx, siteID); err != nil {
		if dberr.IsNotFound(err) {
			return validate.FieldError("site_id", "Related object does not exist")
		}
		return err
	}
	return nil
}

func parseCustomFields(data serializer.Attrs) (extras.CustomFieldData, error) {
	if !data.Has(serializer.FieldCustomFields) {
		return nil, nil
	}
	return extras.ValidateCustomFields(data[serializer.FieldCustomFields])
}

// # Shared

// cleanup removes what other packages hold about a deleted object.
func (service *Service) cleanup(ctx context.Context, contentType string, id int64) error {
	if err := service.tags.Clear(ctx, contentType, id); err != nil {
		return err
	}
	if err := service.journal.DeleteFor(ctx, contentType, id); err != nil {
		return err
	}
	service.invalidate(ctx, contentType, id)
	return nil
}

// invalidate drops cached resolutions. Failures only cost a stale display
// until the entry expires.
func (service *Service) invalidate(ctx context.Context, contentType string, id int64) {
	if service.invalidator == nil {
		return
	}
	if err := service.invalidator.Invalidate(ctx, contentType, id); err != nil {
		service.logger.WarnContext(ctx, "resolver_cache_invalidate_failed",
			slog.String("content_type", contentType),
			slog.Int64("object_id", id),
			slog.Any("error", err),
		)
	}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
