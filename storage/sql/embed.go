package sql

import "embed"

// SchemaFS holds the Postgres migrations, applied in file name order
// by the sql migrate command
//
//go:embed schema/*.sql
var SchemaFS embed.FS
