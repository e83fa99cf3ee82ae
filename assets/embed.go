// Package assets embeds the static data the server ships with:
// the language catalog and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed languages.json migrations/*.sql
var FS embed.FS

// Catalog returns the raw embedded catalog document.
func Catalog() ([]byte, error) {
	return FS.ReadFile("languages.json")
}

// Migrations returns the embedded migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		// the directory is embedded above; Sub only fails on an invalid name
		panic(err)
	}
	return sub
}
