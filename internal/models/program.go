package models

import "time"

// ProgramStatus is the outcome label of a production program run.
type ProgramStatus string

const (
	// ProgramCompleted marks a run that finished successfully.
	ProgramCompleted ProgramStatus = "Zakończono pomyślnie"
	// ProgramEmergency marks a run interrupted by an emergency stop.
	ProgramEmergency ProgramStatus = "emergency"
)

// ProductionProgram represents one historical execution of a cutting job on a machine.
type ProductionProgram struct {
	ID          string        `json:"id"`
	ProgramName string        `json:"program_name"`
	MachineID   string        `json:"machine_id"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	WorkTime    int           `json:"work_time"`
	IdleTime    int           `json:"idle_time"`
	Status      ProgramStatus `json:"status"`
}

// ExportRow is a production program joined with the display name of its machine.
type ExportRow struct {
	ProgramName string
	StartDate   time.Time
	EndDate     *time.Time
	WorkTime    int
	IdleTime    int
	Status      ProgramStatus
	MachineName string
}

// ProgramFilter narrows program queries. Nil or empty fields impose no constraint.
type ProgramFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	MachineID string
}

// Matches reports whether p satisfies every constraint set on the filter.
func (f ProgramFilter) Matches(p *ProductionProgram) bool {
	if f.StartDate != nil && p.StartDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && p.StartDate.After(*f.EndDate) {
		return false
	}
	if f.MachineID != "" && p.MachineID != f.MachineID {
		return false
	}
	return true
}
