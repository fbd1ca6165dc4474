// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates low-level database errors into [apperr.AppError].
package dberr

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/netinv/internal/platform/apperr"
	"github.com/taibuivan/netinv/internal/platform/validate"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Object")

// Wrap classifies a database error. It hides driver details from the client
// while keeping them as the cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("An object with these values already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			invalid := validate.FieldError(pgErr.ColumnName, "Referenced object does not exist")
			invalid.Cause = err
			return invalid
		}
	}

	slog.Debug("database_error", slog.String("action", action), slog.Any("error", err))
	return apperr.Internal(err)
}

// IsNotFound reports whether err is the not-found classification.
func IsNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == apperr.CodeNotFound
}
