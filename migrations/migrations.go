// Package migrations embeds the MySQL schema for golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
