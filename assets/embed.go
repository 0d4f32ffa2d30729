// Package assets embeds the files the server needs at runtime: the default
// palette and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed palette.toml sql/*.sql
var FS embed.FS

// Palette returns the embedded default palette (TOML).
func Palette() ([]byte, error) {
	return FS.ReadFile("palette.toml")
}

// Migrations returns the migration scripts rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is a compile-time embed path.
		panic(err)
	}
	return sub
}
