// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files of every supported dialect,
// laid out as migrations/<dialect>/<version>_<name>.sql.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
