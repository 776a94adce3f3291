// Package migrations embeds the goose SQL migrations applied to the local
// SQLite database on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
