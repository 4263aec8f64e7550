// Package migrations embeds the goose migrations shared by the postgres and
// sqlite run-record stores.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
