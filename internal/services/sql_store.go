package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

// SQLStore reads machines and programs from Postgres.
type SQLStore struct {
	db      *database.DB
	timeout time.Duration
}

// NewSQLStore creates a store bounded by timeout per query. A zero timeout disables the bound.
func NewSQLStore(db *database.DB, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, timeout: timeout}
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// ListMachines returns all machines ordered by name.
func (s *SQLStore) ListMachines(ctx context.Context) ([]models.Machine, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, status, work_time, idle_time, emergency_time FROM machines ORDER BY name, id",
	)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	machines := []models.Machine{}
	for rows.Next() {
		var m models.Machine
		var status string
		if err := rows.Scan(&m.ID, &m.Name, &status, &m.WorkTime, &m.IdleTime, &m.EmergencyTime); err != nil {
			return nil, database.Classify(err)
		}
		m.Status = models.MachineStatus(status)
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err)
	}
	return machines, nil
}

// ListPrograms returns programs matching filter, newest first.
func (s *SQLStore) ListPrograms(ctx context.Context, filter models.ProgramFilter) ([]models.ProductionProgram, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args := buildProgramWhere("", filter)
	query := "SELECT id, program_name, machine_id, start_date, end_date, work_time, idle_time, status FROM production_programs" +
		where + " ORDER BY start_date DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	programs := []models.ProductionProgram{}
	for rows.Next() {
		var p models.ProductionProgram
		var endDate sql.NullTime
		var status string
		if err := rows.Scan(&p.ID, &p.ProgramName, &p.MachineID, &p.StartDate, &endDate, &p.WorkTime, &p.IdleTime, &status); err != nil {
			return nil, database.Classify(err)
		}
		p.StartDate = p.StartDate.UTC()
		p.EndDate = nullTimePtr(endDate)
		p.Status = models.ProgramStatus(status)
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err)
	}
	return programs, nil
}

// ListProgramsForExport returns programs matching filter joined with their machine name, newest first.
func (s *SQLStore) ListProgramsForExport(ctx context.Context, filter models.ProgramFilter) ([]models.ExportRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args := buildProgramWhere("pp.", filter)
	query := `SELECT pp.program_name, pp.start_date, pp.end_date, pp.work_time, pp.idle_time, pp.status, m.name AS machine_name
		FROM production_programs pp
		JOIN machines m ON pp.machine_id = m.id` +
		where + " ORDER BY pp.start_date DESC, pp.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	exportRows := []models.ExportRow{}
	for rows.Next() {
		var r models.ExportRow
		var endDate sql.NullTime
		var status string
		if err := rows.Scan(&r.ProgramName, &r.StartDate, &endDate, &r.WorkTime, &r.IdleTime, &status, &r.MachineName); err != nil {
			return nil, database.Classify(err)
		}
		r.StartDate = r.StartDate.UTC()
		r.EndDate = nullTimePtr(endDate)
		r.Status = models.ProgramStatus(status)
		exportRows = append(exportRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err)
	}
	return exportRows, nil
}

// buildProgramWhere renders the optional filter as a parameterized WHERE clause.
func buildProgramWhere(prefix string, filter models.ProgramFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("%sstart_date >= $%d", prefix, len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("%sstart_date <= $%d", prefix, len(args)))
	}
	if filter.MachineID != "" {
		args = append(args, filter.MachineID)
		conditions = append(conditions, fmt.Sprintf("%smachine_id = $%d", prefix, len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
