package handlers

import (
	"database/sql"
	"errors"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
)

// FallbackReporter reports whether reads are served from sample data.
type FallbackReporter interface {
	FallbackMode() bool
}

// NewHealthHandler builds liveness and readiness checks. Readiness passes when the database
// answers a ping or the process already serves sample data. registry may be nil.
func NewHealthHandler(db *sql.DB, fallback FallbackReporter, registry prometheus.Registerer) healthcheck.Handler {
	var health healthcheck.Handler
	if registry != nil {
		health = healthcheck.NewMetricsHandler(registry, "cnc_monitor")
	} else {
		health = healthcheck.NewHandler()
	}

	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(1000))
	health.AddReadinessCheck("store", storeCheck(db, fallback))
	return health
}

func storeCheck(db *sql.DB, fallback FallbackReporter) healthcheck.Check {
	ping := func() error { return errors.New("database not configured") }
	if db != nil {
		ping = healthcheck.DatabasePingCheck(db, time.Second)
	}
	return func() error {
		if fallback != nil && fallback.FallbackMode() {
			return nil
		}
		return ping()
	}
}
