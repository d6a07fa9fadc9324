// Package database provides Postgres access, schema creation and seeding.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pandeptwidyaop/cnc-monitor/internal/config"
)

// DB wraps a sql.DB connection pool.
type DB struct {
	*sql.DB
}

// New opens a bounded connection pool against the configured Postgres server and verifies it
// with a ping. production selects TLS without certificate validation unless the URL sets sslmode.
func New(ctx context.Context, cfg *config.DatabaseConfig, production bool) (*DB, error) {
	dsn, err := BuildDSN(cfg.URL, production, cfg.GetConnectTimeout())
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.GetConnMaxIdleTime())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Classify(err)
	}

	return &DB{db}, nil
}

// BuildDSN converts a connection URL or key/value string into a lib/pq key/value DSN and fills
// in sslmode and connect_timeout when the caller did not set them.
func BuildDSN(raw string, production bool, connectTimeout time.Duration) (string, error) {
	if raw == "" {
		return "", config.ErrConfigurationMissing
	}

	dsn := raw
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		parsed, err := pq.ParseURL(raw)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		dsn = parsed
	}

	if !hasParam(dsn, "sslmode") {
		if production {
			dsn += " sslmode=require"
		} else {
			dsn += " sslmode=disable"
		}
	}

	if !hasParam(dsn, "connect_timeout") && connectTimeout > 0 {
		seconds := int(math.Ceil(connectTimeout.Seconds()))
		dsn += fmt.Sprintf(" connect_timeout=%d", seconds)
	}

	return strings.TrimSpace(dsn), nil
}

func hasParam(dsn, key string) bool {
	return strings.HasPrefix(dsn, key+"=") || strings.Contains(dsn, " "+key+"=")
}

// Migrate creates the schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	return runMigrations(ctx, db.DB)
}

// Seed inserts the sample dataset when the machines table is empty.
func (db *DB) Seed(ctx context.Context) error {
	return seed(ctx, db.DB)
}
