// Package migrations embeds the SQL schema for the hotel directory and room
// inventory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
