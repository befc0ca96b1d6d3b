// Package web holds the embedded registration page and dashboard.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static returns the embedded asset tree rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(content, "static")
}
