package migrations

import "embed"

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Files stores forward-only SQL migrations embedded into the binary, one
// directory per SQL dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS
