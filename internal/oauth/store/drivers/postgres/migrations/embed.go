package migrations

import "embed"

// Migrations holds the postgres schema.
//
//go:embed *.sql
var Migrations embed.FS
