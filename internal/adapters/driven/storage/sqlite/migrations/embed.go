// Package migrations holds the schema of the SQLite index store, applied
// in file name order.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
