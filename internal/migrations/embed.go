// Package migrations embeds the goose SQL migrations for each supported
// database dialect.
package migrations

import "embed"

// SQLite holds the migrations for the local database: the settings table,
// reminder lists and reminders, and mindful sessions.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// Postgres holds the migrations for a Postgres-backed settings area.
//
//go:embed postgres/*.sql
var Postgres embed.FS
