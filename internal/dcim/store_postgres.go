// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/netinv/internal/extras"
	"github.com/taibuivan/netinv/internal/platform/database/schema"
	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/platform/postgres"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a repository over db.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// siteASNs aggregates the ASNs of the site aliased "s" into a sorted array.
var siteASNs = fmt.Sprintf(
	"COALESCE((SELECT array_agg(a.%s ORDER BY a.%s) FROM %s a WHERE a.%s = s.%s), '{}') AS asns",
	schema.DcimSiteASN.ASN, schema.DcimSiteASN.ASN, schema.DcimSiteASN.Table,
	schema.DcimSiteASN.SiteID, schema.DcimSite.ID,
)

func siteColumns() []string {
	columns := make([]string, 0, 8)
	for _, column := range schema.DcimSite.Columns() {
		columns = append(columns, "s."+column)
	}
	return append(columns, siteASNs)
}

func encodeCustomFields(data extras.CustomFieldData) ([]byte, error) {
	if data == nil {
		data = extras.CustomFieldData{}
	}
	return json.Marshal(data)
}

func decodeCustomFields(raw []byte) (extras.CustomFieldData, error) {
	data := extras.CustomFieldData{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("dcim: decode custom fields: %w", err)
	}
	return data, nil
}

// # Sites

func scanSite(row pgx.Row, extra ...any) (*Site, error) {
	site := NewSite()
	var customFields []byte

	dest := []any{&site.ID, &site.Name, &site.Slug, &site.Status, &site.Facility, &site.Description, &customFields, &site.ASNs}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	data, err := decodeCustomFields(customFields)
	if err != nil {
		return nil, err
	}
	site.CustomFields = data
	return site, nil
}

func (repository *PostgresRepository) ListSites(ctx context.Context, limit, offset int) ([]*Site, int, error) {
	query, args, err := postgres.Builder.
		Select(append(siteColumns(), "COUNT(*) OVER() AS total_count")...).
		From(schema.DcimSite.Table + " s").
		OrderBy("s." + schema.DcimSite.Name).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("dcim: build list_sites: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_sites")
	}
	defer rows.Close()

	sites := make([]*Site, 0)
	total := 0
	for rows.Next() {
		site, err := scanSite(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_site")
		}
		sites = append(sites, site)
	}

	return sites, total, dberr.Wrap(rows.Err(), "list_sites")
}

func (repository *PostgresRepository) GetSite(ctx context.Context, id int64) (*Site, error) {
	query, args, err := postgres.Builder.
		Select(siteColumns()...).
		From(schema.DcimSite.Table + " s").
		Where(squirrel.Eq{"s." + schema.DcimSite.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("dcim: build get_site: %w", err)
	}

	site, err := scanSite(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_site")
	}
	return site, nil
}

func (repository *PostgresRepository) CreateSite(ctx context.Context, site *Site) error {
	customFields, err := encodeCustomFields(site.CustomFields)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder.
		Insert(schema.DcimSite.Table).
		Columns(
			schema.DcimSite.Name, schema.DcimSite.Slug, schema.DcimSite.Status,
			schema.DcimSite.Facility, schema.DcimSite.Description, schema.DcimSite.CustomFields,
		).
		Values(site.Name, site.Slug, site.Status, site.Facility, site.Description, customFields).
		Suffix("RETURNING " + schema.DcimSite.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build create_site: %w", err)
	}

	return postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, args...).Scan(&site.ID); err != nil {
			return dberr.Wrap(err, "create_site")
		}
		return insertSiteASNs(ctx, tx, site.ID, site.ASNs)
	})
}

func (repository *PostgresRepository) UpdateSite(ctx context.Context, site *Site, replaceASNs bool) error {
	customFields, err := encodeCustomFields(site.CustomFields)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder.
		Update(schema.DcimSite.Table).
		Set(schema.DcimSite.Name, site.Name).
		Set(schema.DcimSite.Slug, site.Slug).
		Set(schema.DcimSite.Status, site.Status).
		Set(schema.DcimSite.Facility, site.Facility).
		Set(schema.DcimSite.Description, site.Description).
		Set(schema.DcimSite.CustomFields, customFields).
		Set(schema.DcimSite.UpdatedAt, squirrel.Expr("now()")).
		Where(squirrel.Eq{schema.DcimSite.ID: site.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build update_site: %w", err)
	}

	return postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, "update_site")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		if !replaceASNs {
			return nil
		}

		deleteQuery, deleteArgs, err := postgres.Builder.
			Delete(schema.DcimSiteASN.Table).
			Where(squirrel.Eq{schema.DcimSiteASN.SiteID: site.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("dcim: build delete_site_asns: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
			return dberr.Wrap(err, "delete_site_asns")
		}
		return insertSiteASNs(ctx, tx, site.ID, site.ASNs)
	})
}

func insertSiteASNs(ctx context.Context, tx pgx.Tx, siteID int64, asns []int64) error {
	if len(asns) == 0 {
		return nil
	}

	insert := postgres.Builder.
		Insert(schema.DcimSiteASN.Table).
		Columns(schema.DcimSiteASN.SiteID, schema.DcimSiteASN.ASN)
	for _, asn := range asns {
		insert = insert.Values(siteID, asn)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build insert_site_asns: %w", err)
	}

	_, err = tx.Exec(ctx, query, args...)
	return dberr.Wrap(err, "insert_site_asns")
}

func (repository *PostgresRepository) DeleteSite(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.DcimSite.Table).
		Where(squirrel.Eq{schema.DcimSite.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build delete_site: %w", err)
	}

	return repository.execOne(ctx, "delete_site", query, args)
}

// # Devices

func scanDevice(row pgx.Row, extra ...any) (*Device, error) {
	device := NewDevice()
	var customFields []byte

	dest := []any{&device.ID, &device.Name, &device.SiteID, &device.Position, &device.Serial, &device.Status, &customFields}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	data, err := decodeCustomFields(customFields)
	if err != nil {
		return nil, err
	}
	device.CustomFields = data
	return device, nil
}

func (repository *PostgresRepository) ListDevices(ctx context.Context, filter DeviceFilter, limit, offset int) ([]*Device, int, error) {
	builder := postgres.Builder.
		Select(append(schema.DcimDevice.Columns(), "COUNT(*) OVER() AS total_count")...).
		From(schema.DcimDevice.Table).
		OrderBy(schema.DcimDevice.SiteID, schema.DcimDevice.Name, schema.DcimDevice.ID).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if len(filter.SiteIDs) > 0 {
		builder = builder.Where(squirrel.Eq{schema.DcimDevice.SiteID: filter.SiteIDs})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{schema.DcimDevice.Status: filter.Statuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("dcim: build list_devices: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_devices")
	}
	defer rows.Close()

	devices := make([]*Device, 0)
	total := 0
	for rows.Next() {
		device, err := scanDevice(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_device")
		}
		devices = append(devices, device)
	}

	return devices, total, dberr.Wrap(rows.Err(), "list_devices")
}

func (repository *PostgresRepository) GetDevice(ctx context.Context, id int64) (*Device, error) {
	query, args, err := postgres.Builder.
		Select(schema.DcimDevice.Columns()...).
		From(schema.DcimDevice.Table).
		Where(squirrel.Eq{schema.DcimDevice.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("dcim: build get_device: %w", err)
	}

	device, err := scanDevice(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_device")
	}
	return device, nil
}

func (repository *PostgresRepository) CreateDevice(ctx context.Context, device *Device) error {
	customFields, err := encodeCustomFields(device.CustomFields)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder.
		Insert(schema.DcimDevice.Table).
		Columns(
			schema.DcimDevice.Name, schema.DcimDevice.SiteID, schema.DcimDevice.Position,
			schema.DcimDevice.Serial, schema.DcimDevice.Status, schema.DcimDevice.CustomFields,
		).
		Values(device.Name, device.SiteID, device.Position, device.Serial, device.Status, customFields).
		Suffix("RETURNING " + schema.DcimDevice.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build create_device: %w", err)
	}

	return dberr.Wrap(repository.db.QueryRow(ctx, query, args...).Scan(&device.ID), "create_device")
}

func (repository *PostgresRepository) UpdateDevice(ctx context.Context, device *Device) error {
	customFields, err := encodeCustomFields(device.CustomFields)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder.
		Update(schema.DcimDevice.Table).
		Set(schema.DcimDevice.Name, device.Name).
		Set(schema.DcimDevice.SiteID, device.SiteID).
		Set(schema.DcimDevice.Position, device.Position).
		Set(schema.DcimDevice.Serial, device.Serial).
		Set(schema.DcimDevice.Status, device.Status).
		Set(schema.DcimDevice.CustomFields, customFields).
		Set(schema.DcimDevice.UpdatedAt, squirrel.Expr("now()")).
		Where(squirrel.Eq{schema.DcimDevice.ID: device.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build update_device: %w", err)
	}

	return repository.execOne(ctx, "update_device", query, args)
}

func (repository *PostgresRepository) DeleteDevice(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.DcimDevice.Table).
		Where(squirrel.Eq{schema.DcimDevice.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("dcim: build delete_device: %w", err)
	}

	return repository.execOne(ctx, "delete_device", query, args)
}

// execOne runs a statement that must affect exactly one row.
func (repository *PostgresRepository) execOne(ctx context.Context, operation, query string, args []any) error {
	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, operation)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
