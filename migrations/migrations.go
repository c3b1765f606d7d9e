// Package migrations embeds the PostgreSQL schema so binaries can migrate
// without the source tree.
package migrations

import "embed"

// FS holds the numbered golang-migrate files.
//
//go:embed *.sql
var FS embed.FS
