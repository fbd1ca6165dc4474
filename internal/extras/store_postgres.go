// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/netinv/internal/platform/database/schema"
	"github.com/taibuivan/netinv/internal/platform/dberr"
	"github.com/taibuivan/netinv/internal/platform/postgres"
)

// PostgresRepository implements [TagRepository] and [JournalRepository].
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a repository over db.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Tags

func scanTag(row pgx.Row) (*Tag, error) {
	tag := &Tag{}
	err := row.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.Color, &tag.Description)
	return tag, err
}

func (repository *PostgresRepository) ListTags(ctx context.Context, limit, offset int) ([]*Tag, int, error) {
	query, args, err := postgres.Builder.
		Select(append(schema.ExtrasTag.Columns(), "COUNT(*) OVER() AS total_count")...).
		From(schema.ExtrasTag.Table).
		OrderBy(schema.ExtrasTag.Name).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("extras: build list_tags: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	total := 0
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.Color, &tag.Description, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	return tags, total, dberr.Wrap(rows.Err(), "list_tags")
}

func (repository *PostgresRepository) GetTag(ctx context.Context, id int64) (*Tag, error) {
	query, args, err := postgres.Builder.
		Select(schema.ExtrasTag.Columns()...).
		From(schema.ExtrasTag.Table).
		Where(squirrel.Eq{schema.ExtrasTag.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("extras: build get_tag: %w", err)
	}

	tag, err := scanTag(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}
	return tag, nil
}

func (repository *PostgresRepository) GetTagsBySlug(ctx context.Context, slugs []string) ([]*Tag, error) {
	query, args, err := postgres.Builder.
		Select(schema.ExtrasTag.Columns()...).
		From(schema.ExtrasTag.Table).
		Where(squirrel.Eq{schema.ExtrasTag.Slug: slugs}).
		OrderBy(schema.ExtrasTag.Name).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("extras: build get_tags_by_slug: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tags_by_slug")
	}
	defer rows.Close()

	tags := make([]*Tag, 0, len(slugs))
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	return tags, dberr.Wrap(rows.Err(), "get_tags_by_slug")
}

func (repository *PostgresRepository) CreateTag(ctx context.Context, tag *Tag) error {
	query, args, err := postgres.Builder.
		Insert(schema.ExtrasTag.Table).
		Columns(schema.ExtrasTag.Name, schema.ExtrasTag.Slug, schema.ExtrasTag.Color, schema.ExtrasTag.Description).
		Values(tag.Name, tag.Slug, tag.Color, tag.Description).
		Suffix("RETURNING " + schema.ExtrasTag.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build create_tag: %w", err)
	}

	return dberr.Wrap(repository.db.QueryRow(ctx, query, args...).Scan(&tag.ID), "create_tag")
}

func (repository *PostgresRepository) UpdateTag(ctx context.Context, tag *Tag) error {
	query, args, err := postgres.Builder.
		Update(schema.ExtrasTag.Table).
		Set(schema.ExtrasTag.Name, tag.Name).
		Set(schema.ExtrasTag.Slug, tag.Slug).
		Set(schema.ExtrasTag.Color, tag.Color).
		Set(schema.ExtrasTag.Description, tag.Description).
		Where(squirrel.Eq{schema.ExtrasTag.ID: tag.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build update_tag: %w", err)
	}

	return repository.execOne(ctx, "update_tag", query, args)
}

func (repository *PostgresRepository) DeleteTag(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.ExtrasTag.Table).
		Where(squirrel.Eq{schema.ExtrasTag.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build delete_tag: %w", err)
	}

	return repository.execOne(ctx, "delete_tag", query, args)
}

// # Tagged items

func (repository *PostgresRepository) ReplaceTaggedItems(ctx context.Context, contentType string, objectID int64, tagIDs []int64) error {
	return postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := deleteTaggedItems(ctx, tx, contentType, objectID); err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}

		insert := postgres.Builder.
			Insert(schema.ExtrasTaggedItem.Table).
			Columns(schema.ExtrasTaggedItem.TagID, schema.ExtrasTaggedItem.ContentType, schema.ExtrasTaggedItem.ObjectID)
		for _, tagID := range tagIDs {
			insert = insert.Values(tagID, contentType, objectID)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("extras: build insert_tagged_items: %w", err)
		}

		_, err = tx.Exec(ctx, query, args...)
		return dberr.Wrap(err, "insert_tagged_items")
	})
}

func (repository *PostgresRepository) DeleteTaggedItems(ctx context.Context, contentType string, objectID int64) error {
	return deleteTaggedItems(ctx, repository.db, contentType, objectID)
}

func deleteTaggedItems(ctx context.Context, db postgres.Querier, contentType string, objectID int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.ExtrasTaggedItem.Table).
		Where(squirrel.Eq{
			schema.ExtrasTaggedItem.ContentType: contentType,
			schema.ExtrasTaggedItem.ObjectID:    objectID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build delete_tagged_items: %w", err)
	}

	_, err = db.Exec(ctx, query, args...)
	return dberr.Wrap(err, "delete_tagged_items")
}

func (repository *PostgresRepository) TagSlugsFor(ctx context.Context, contentType string, objectIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(objectIDs))
	if len(objectIDs) == 0 {
		return out, nil
	}

	query, args, err := postgres.Builder.
		Select("ti."+schema.ExtrasTaggedItem.ObjectID, "t."+schema.ExtrasTag.Slug).
		From(schema.ExtrasTaggedItem.Table + " ti").
		Join(fmt.Sprintf("%s t ON t.%s = ti.%s", schema.ExtrasTag.Table, schema.ExtrasTag.ID, schema.ExtrasTaggedItem.TagID)).
		Where(squirrel.Eq{
			"ti." + schema.ExtrasTaggedItem.ContentType: contentType,
			"ti." + schema.ExtrasTaggedItem.ObjectID:    objectIDs,
		}).
		OrderBy("t." + schema.ExtrasTag.Slug).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("extras: build tag_slugs_for: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "tag_slugs_for")
	}
	defer rows.Close()

	for rows.Next() {
		var objectID int64
		var slug string
		if err := rows.Scan(&objectID, &slug); err != nil {
			return nil, dberr.Wrap(err, "scan_tagged_item")
		}
		out[objectID] = append(out[objectID], slug)
	}

	return out, dberr.Wrap(rows.Err(), "tag_slugs_for")
}

// # Journal entries

func scanEntry(row pgx.Row) (*JournalEntry, error) {
	entry := &JournalEntry{}
	err := row.Scan(&entry.ID, &entry.AssignedObjectType, &entry.AssignedObjectID,
		&entry.CreatedBy, &entry.Kind, &entry.Comments, &entry.Created)
	return entry, err
}

func (repository *PostgresRepository) ListEntries(ctx context.Context, filter JournalFilter, limit, offset int) ([]*JournalEntry, int, error) {
	builder := postgres.Builder.
		Select(append(schema.ExtrasJournalEntry.Columns(), "COUNT(*) OVER() AS total_count")...).
		From(schema.ExtrasJournalEntry.Table).
		OrderBy(schema.ExtrasJournalEntry.CreatedAt + " DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.AssignedObjectType != "" {
		builder = builder.Where(squirrel.Eq{schema.ExtrasJournalEntry.AssignedObjectType: filter.AssignedObjectType})
	}
	if filter.AssignedObjectID != 0 {
		builder = builder.Where(squirrel.Eq{schema.ExtrasJournalEntry.AssignedObjectID: filter.AssignedObjectID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("extras: build list_journal_entries: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_journal_entries")
	}
	defer rows.Close()

	entries := make([]*JournalEntry, 0)
	total := 0
	for rows.Next() {
		entry := &JournalEntry{}
		if err := rows.Scan(&entry.ID, &entry.AssignedObjectType, &entry.AssignedObjectID,
			&entry.CreatedBy, &entry.Kind, &entry.Comments, &entry.Created, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_journal_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, dberr.Wrap(rows.Err(), "list_journal_entries")
}

func (repository *PostgresRepository) GetEntry(ctx context.Context, id int64) (*JournalEntry, error) {
	query, args, err := postgres.Builder.
		Select(schema.ExtrasJournalEntry.Columns()...).
		From(schema.ExtrasJournalEntry.Table).
		Where(squirrel.Eq{schema.ExtrasJournalEntry.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("extras: build get_journal_entry: %w", err)
	}

	entry, err := scanEntry(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "get_journal_entry")
	}
	return entry, nil
}

func (repository *PostgresRepository) CreateEntry(ctx context.Context, entry *JournalEntry) error {
	query, args, err := postgres.Builder.
		Insert(schema.ExtrasJournalEntry.Table).
		Columns(
			schema.ExtrasJournalEntry.AssignedObjectType,
			schema.ExtrasJournalEntry.AssignedObjectID,
			schema.ExtrasJournalEntry.CreatedBy,
			schema.ExtrasJournalEntry.Kind,
			schema.ExtrasJournalEntry.Comments,
		).
		Values(entry.AssignedObjectType, entry.AssignedObjectID, entry.CreatedBy, entry.Kind, entry.Comments).
		Suffix(fmt.Sprintf("RETURNING %s, %s", schema.ExtrasJournalEntry.ID, schema.ExtrasJournalEntry.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build create_journal_entry: %w", err)
	}

	err = repository.db.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.Created)
	return dberr.Wrap(err, "create_journal_entry")
}

func (repository *PostgresRepository) UpdateEntry(ctx context.Context, entry *JournalEntry) error {
	query, args, err := postgres.Builder.
		Update(schema.ExtrasJournalEntry.Table).
		Set(schema.ExtrasJournalEntry.AssignedObjectType, entry.AssignedObjectType).
		Set(schema.ExtrasJournalEntry.AssignedObjectID, entry.AssignedObjectID).
		Set(schema.ExtrasJournalEntry.Kind, entry.Kind).
		Set(schema.ExtrasJournalEntry.Comments, entry.Comments).
		Where(squirrel.Eq{schema.ExtrasJournalEntry.ID: entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build update_journal_entry: %w", err)
	}

	return repository.execOne(ctx, "update_journal_entry", query, args)
}

func (repository *PostgresRepository) DeleteEntry(ctx context.Context, id int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.ExtrasJournalEntry.Table).
		Where(squirrel.Eq{schema.ExtrasJournalEntry.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build delete_journal_entry: %w", err)
	}

	return repository.execOne(ctx, "delete_journal_entry", query, args)
}

func (repository *PostgresRepository) DeleteEntriesFor(ctx context.Context, contentType string, objectID int64) error {
	query, args, err := postgres.Builder.
		Delete(schema.ExtrasJournalEntry.Table).
		Where(squirrel.Eq{
			schema.ExtrasJournalEntry.AssignedObjectType: contentType,
			schema.ExtrasJournalEntry.AssignedObjectID:   objectID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("extras: build delete_journal_entries_for: %w", err)
	}

	_, err = repository.db.Exec(ctx, query, args...)
	return dberr.Wrap(err, "delete_journal_entries_for")
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
