// Package assets provides the embedded dashboard single-page application.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed web/dist
var embeddedFiles embed.FS

// IndexFile is the SPA entry document served for every non-API path.
const IndexFile = "index.html"

// Dist returns the dashboard build rooted at its dist directory.
func Dist() fs.FS {
	dist, err := fs.Sub(embeddedFiles, "web/dist")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return dist
}
