// Package router wires HTTP routes and middleware for the dashboard server.
package router

import (
	"io/fs"
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/cnc-monitor/internal/assets"
	"github.com/pandeptwidyaop/cnc-monitor/internal/config"
	"github.com/pandeptwidyaop/cnc-monitor/internal/handlers"
	"github.com/pandeptwidyaop/cnc-monitor/internal/metrics"
	"github.com/pandeptwidyaop/cnc-monitor/internal/middleware"
	"github.com/pandeptwidyaop/cnc-monitor/internal/services"
)

// New builds the HTTP engine. health and limiter may be nil.
func New(
	cfg *config.Config,
	productionService *services.ProductionService,
	m *metrics.Metrics,
	health healthcheck.Handler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(zap.L(), true))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(m.Middleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	productionHandler := handlers.NewProductionHandler(productionService)

	api := r.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	{
		api.GET("/machines", productionHandler.Machines)
		api.GET("/production-programs", productionHandler.Programs)
		api.GET("/export/csv", productionHandler.ExportCSV)
		api.GET("/stats", productionHandler.Stats)
		api.GET("/version", handlers.Version)
	}

	if health != nil {
		r.GET("/live", gin.WrapH(health))
		r.GET("/ready", gin.WrapH(health))
	}
	r.GET("/metrics", gin.WrapH(m.Handler()))

	web := handlers.NewWebHandler(webFiles(cfg.Web.StaticDir), assets.IndexFile)
	r.NoRoute(web.Serve)

	return r
}

func webFiles(staticDir string) fs.FS {
	if staticDir == "" {
		return assets.Dist()
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		zap.S().Warnw("Static directory not usable, serving embedded dashboard", "dir", staticDir, "error", err)
		return assets.Dist()
	}
	return os.DirFS(staticDir)
}
