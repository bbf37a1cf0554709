package db

import "embed"

// MigrationsFS holds the SQL schema migrations so the binary can run
// them without shipping the files separately.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
