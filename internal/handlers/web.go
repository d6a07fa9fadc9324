package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// WebHandler serves the dashboard single-page application.
type WebHandler struct {
	files      fs.FS
	fileServer http.Handler
	indexFile  string
}

// NewWebHandler creates a handler serving files from files and indexFile for client-side routes.
func NewWebHandler(files fs.FS, indexFile string) *WebHandler {
	return &WebHandler{
		files:      files,
		fileServer: http.FileServer(http.FS(files)),
		indexFile:  indexFile,
	}
}

// Serve answers any path that no API route matched. Existing files are served as-is,
// everything else gets the SPA entry document. Unknown API paths get a JSON 404.
func (h *WebHandler) Serve(c *gin.Context) {
	reqPath := c.Request.URL.Path
	if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
		return
	}

	name := strings.TrimPrefix(path.Clean(reqPath), "/")
	if name != "" && name != h.indexFile {
		if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
			h.fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}
	}

	h.Index(c)
}

// Index writes the SPA entry document.
func (h *WebHandler) Index(c *gin.Context) {
	data, err := fs.ReadFile(h.files, h.indexFile)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dashboard not built"})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
