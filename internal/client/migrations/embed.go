// Package migrations embeds the goose migrations for the client state store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
