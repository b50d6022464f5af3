// Package catalog embeds the goose migrations for the catalog schema.
package catalog

import "embed"

// FS holds every *.sql migration, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
