package migrations

import "embed"

// FS contains embedded SQLite migrations for activities storage.
//
//go:embed *.sql
var FS embed.FS
