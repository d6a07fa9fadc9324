package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/cnc-monitor/internal/handlers"
)

func setupWebRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	files := fstest.MapFS{
		"index.html":     {Data: []byte("<!doctype html><title>CNC</title>")},
		"assets/app.js":  {Data: []byte("console.log('ok')")},
		"assets/app.css": {Data: []byte("body{}")},
	}
	web := handlers.NewWebHandler(files, "index.html")

	r := gin.New()
	r.NoRoute(web.Serve)
	return r
}

func TestWebHandler(t *testing.T) {
	r := setupWebRouter()

	tests := []struct {
		name        string
		method      string
		target      string
		wantStatus  int
		wantContain string
	}{
		{"root serves index", http.MethodGet, "/", http.StatusOK, "<title>CNC</title>"},
		{"client route serves index", http.MethodGet, "/machines/machine-1", http.StatusOK, "<title>CNC</title>"},
		{"static asset", http.MethodGet, "/assets/app.js", http.StatusOK, "console.log"},
		{"missing asset falls back to index", http.MethodGet, "/assets/missing.js", http.StatusOK, "<title>CNC</title>"},
		{"unknown api path", http.MethodGet, "/api/unknown", http.StatusNotFound, `"error"`},
		{"post to page", http.MethodPost, "/", http.StatusMethodNotAllowed, `"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantContain)
		})
	}
}

func TestWebHandler_IndexHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	setupWebRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestWebHandler_NotBuilt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(handlers.NewWebHandler(fstest.MapFS{}, "index.html").Serve)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
