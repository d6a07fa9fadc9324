// Package main is the entry point for the CNC production monitor server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pandeptwidyaop/cnc-monitor/internal/config"
	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/handlers"
	"github.com/pandeptwidyaop/cnc-monitor/internal/logger"
	"github.com/pandeptwidyaop/cnc-monitor/internal/metrics"
	"github.com/pandeptwidyaop/cnc-monitor/internal/middleware"
	"github.com/pandeptwidyaop/cnc-monitor/internal/router"
	"github.com/pandeptwidyaop/cnc-monitor/internal/services"
	"github.com/pandeptwidyaop/cnc-monitor/internal/systemd"
	"github.com/pandeptwidyaop/cnc-monitor/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "systemd-unit":
			if err := printUnit(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "systemd-unit: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load config from %s: %v, using environment and defaults\n", *configPath, err)
		cfg, err = config.Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.New(cfg.Logging.Level)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		zap.S().Errorw("Server stopped with error", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

// application holds the wired server and the resources it owns.
type application struct {
	server     *http.Server
	production *services.ProductionService
	db         *database.DB
}

// setup validates cfg, bootstraps the store and wires the HTTP server without binding a port.
// In strict mode a store failure is returned; otherwise the service starts in fallback mode.
func setup(ctx context.Context, cfg *config.Config) (*application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := metrics.New()

	db, err := openDatabase(ctx, cfg)
	if err != nil && cfg.Database.Strict {
		return nil, fmt.Errorf("database startup: %w", err)
	}

	var (
		primary services.Store
		sqlDB   *sql.DB
	)
	if db != nil {
		primary = services.NewSQLStore(db, cfg.Database.GetQueryTimeout())
		sqlDB = db.DB
	}
	productionService := services.NewProductionService(primary, services.NewMemoryStore(), services.ProductionOptions{
		Strict:        cfg.Database.Strict,
		StatsCacheTTL: cfg.API.GetStatsCacheTTL(),
		Metrics:       m,
	})
	health := handlers.NewHealthHandler(sqlDB, productionService, m.Registry)

	var limiter *middleware.RateLimiter
	if cfg.API.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.API.RateLimit, cfg.API.RateLimitBurst, 10*time.Minute)
		go limiter.Run(time.Minute, ctx.Done())
	}

	return &application{
		server: &http.Server{
			Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:      router.New(cfg, productionService, m, health, limiter),
			ReadTimeout:  cfg.Server.GetReadTimeout(),
			WriteTimeout: cfg.Server.GetWriteTimeout(),
			IdleTimeout:  cfg.Server.GetIdleTimeout(),
		},
		production: productionService,
		db:         db,
	}, nil
}

func (a *application) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		zap.S().Warnw("Error closing database", "error", err)
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg *config.Config) error {
	zap.S().Infow("Starting CNC monitor",
		"version", version.Version,
		"environment", cfg.Server.Environment,
		"strict", cfg.Database.Strict,
	)

	app, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	listener, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.S().Infow("Listening", "addr", listener.Addr().String(), "fallback_mode", app.production.FallbackMode())
		if err := app.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	zap.S().Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openDatabase connects, creates the schema and seeds an empty database. On failure the
// returned DB is nil and any partially opened pool is closed.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.New(ctx, &cfg.Database, cfg.Server.IsProduction())
	if err != nil {
		zap.S().Warnw("Failed to connect to database", "error", err)
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		zap.S().Warnw("Failed to run migrations", "error", err)
		_ = db.Close()
		return nil, err
	}

	if err := db.Seed(ctx); err != nil {
		zap.S().Warnw("Failed to seed database", "error", err)
		_ = db.Close()
		return nil, err
	}

	zap.S().Infow("Database ready")
	return db, nil
}

// printUnit writes a systemd unit for this binary to stdout.
func printUnit(args []string) error {
	fs := flag.NewFlagSet("systemd-unit", flag.ContinueOnError)
	configPath := fs.String("config", "", "absolute path to config file")
	envFile := fs.String("env-file", "/etc/cnc-monitor/env", "absolute path to an EnvironmentFile holding DATABASE_URL")
	user := fs.String("user", "", "system user to run as")
	if err := fs.Parse(args); err != nil {
		return err
	}

	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	out, err := systemd.Render(systemd.UnitConfig{
		ExecPath:        execPath,
		ConfigPath:      *configPath,
		EnvironmentFile: *envFile,
		User:            *user,
	})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
