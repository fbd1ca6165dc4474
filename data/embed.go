// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the SQL migrations so the server binary carries its schema.
package data

import "embed"

// Migrations holds the golang-migrate files under "migrations/".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of [Migrations] holding the files.
const MigrationsDir = "migrations"
