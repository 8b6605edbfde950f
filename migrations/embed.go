// Package migrations embeds the SQL schema so the server binary can migrate
// without the migrations directory on disk.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file
//
//go:embed *.sql
var FS embed.FS
