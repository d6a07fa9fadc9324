package database

import (
	"context"
	"database/sql"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS machines (
		id VARCHAR(50) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		status VARCHAR(20) NOT NULL,
		work_time INTEGER NOT NULL DEFAULT 0,
		idle_time INTEGER NOT NULL DEFAULT 0,
		emergency_time INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS production_programs (
		id VARCHAR(50) PRIMARY KEY,
		program_name VARCHAR(200) NOT NULL,
		machine_id VARCHAR(50) NOT NULL REFERENCES machines(id),
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		work_time INTEGER NOT NULL DEFAULT 0,
		idle_time INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(50) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_production_programs_start_date ON production_programs(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_production_programs_machine_id ON production_programs(machine_id)`,
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return Classify(err)
		}
	}
	return nil
}
