// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of every Netinv table, so
// repositories never spell SQL identifiers by hand. It mirrors
// data/migrations and must change with it.
package schema
