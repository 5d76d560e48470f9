// Package migrations embeds the versioned schema migration files for both
// supported database engines.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
