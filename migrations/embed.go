// Package migrations embeds the schema migrations for every supported database.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
