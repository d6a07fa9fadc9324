package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
	"go.uber.org/zap"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(value string) *time.Time {
	t := ts(value)
	return &t
}

// SeedMachines returns a fresh copy of the sample machines.
func SeedMachines() []models.Machine {
	return []models.Machine{
		{ID: "machine-1", Name: "NEXT VECTOR-01", Status: models.MachineWorking, WorkTime: 452, IdleTime: 15, EmergencyTime: 0},
		{ID: "machine-2", Name: "NEXT VECTOR-02", Status: models.MachineIdle, WorkTime: 405, IdleTime: 62, EmergencyTime: 0},
		{ID: "machine-3", Name: "NEXT VECTOR-03", Status: models.MachineEmergency, WorkTime: 318, IdleTime: 125, EmergencyTime: 24},
	}
}

// SeedPrograms returns a fresh copy of the sample production programs.
func SeedPrograms() []models.ProductionProgram {
	return []models.ProductionProgram{
		{
			ID: "prog-1", ProgramName: "Panel boczny PB-120", MachineID: "machine-1",
			StartDate: ts("2024-01-15T10:00:00Z"), EndDate: tsPtr("2024-01-15T14:15:00Z"),
			WorkTime: 250, IdleTime: 5, Status: models.ProgramCompleted,
		},
		{
			ID: "prog-2", ProgramName: "Wspornik WS-45", MachineID: "machine-2",
			StartDate: ts("2024-01-15T08:00:00Z"), EndDate: tsPtr("2024-01-15T11:07:00Z"),
			WorkTime: 175, IdleTime: 12, Status: models.ProgramCompleted,
		},
		{
			ID: "prog-3", ProgramName: "Kołnierz KF-200", MachineID: "machine-3",
			StartDate: ts("2024-01-14T16:00:00Z"), EndDate: tsPtr("2024-01-14T17:18:00Z"),
			WorkTime: 75, IdleTime: 3, Status: models.ProgramEmergency,
		},
		{
			ID: "prog-4", ProgramName: "Płyta montażowa PM-08", MachineID: "machine-1",
			StartDate: ts("2024-01-14T11:00:00Z"), EndDate: tsPtr("2024-01-14T15:15:00Z"),
			WorkTime: 248, IdleTime: 7, Status: models.ProgramCompleted,
		},
		{
			ID: "prog-5", ProgramName: "Obudowa OB-330", MachineID: "machine-2",
			StartDate: ts("2024-01-14T07:00:00Z"), EndDate: tsPtr("2024-01-14T10:27:00Z"),
			WorkTime: 198, IdleTime: 9, Status: models.ProgramCompleted,
		},
	}
}

const (
	insertMachineSQL = `INSERT INTO machines (id, name, status, work_time, idle_time, emergency_time)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertProgramSQL = `INSERT INTO production_programs (id, program_name, machine_id, start_date, end_date, work_time, idle_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

func seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM machines").Scan(&count); err != nil {
		return Classify(err)
	}
	if count > 0 {
		zap.S().Debugf("Skipping seed, %d machines present", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range SeedMachines() {
		if _, err := tx.ExecContext(ctx, insertMachineSQL,
			m.ID, m.Name, string(m.Status), m.WorkTime, m.IdleTime, m.EmergencyTime,
		); err != nil {
			return Classify(err)
		}
	}

	for _, p := range SeedPrograms() {
		var endDate sql.NullTime
		if p.EndDate != nil {
			endDate = sql.NullTime{Time: *p.EndDate, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertProgramSQL,
			p.ID, p.ProgramName, p.MachineID, p.StartDate, endDate, p.WorkTime, p.IdleTime, string(p.Status),
		); err != nil {
			return Classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Classify(err)
	}

	zap.S().Infof("Seeded %d machines and %d production programs", len(SeedMachines()), len(SeedPrograms()))
	return nil
}
