package services

import (
	"context"
	"sort"

	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

// MemoryStore serves the built-in sample dataset. It is immutable after construction
// and safe for concurrent use.
type MemoryStore struct {
	machines []models.Machine
	programs []models.ProductionProgram
}

// NewMemoryStore creates a store holding the same rows the database is seeded with.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWith(database.SeedMachines(), database.SeedPrograms())
}

// NewMemoryStoreWith creates a store over the given rows.
func NewMemoryStoreWith(machines []models.Machine, programs []models.ProductionProgram) *MemoryStore {
	s := &MemoryStore{
		machines: append([]models.Machine(nil), machines...),
		programs: append([]models.ProductionProgram(nil), programs...),
	}
	sort.SliceStable(s.machines, func(i, j int) bool {
		if s.machines[i].Name != s.machines[j].Name {
			return s.machines[i].Name < s.machines[j].Name
		}
		return s.machines[i].ID < s.machines[j].ID
	})
	sort.SliceStable(s.programs, func(i, j int) bool {
		a, b := s.programs[i], s.programs[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return a.ID < b.ID
	})
	return s
}

// ListMachines returns a copy of all machines ordered by name.
func (s *MemoryStore) ListMachines(_ context.Context) ([]models.Machine, error) {
	return append([]models.Machine{}, s.machines...), nil
}

// ListPrograms returns copies of the programs matching filter, newest first.
func (s *MemoryStore) ListPrograms(_ context.Context, filter models.ProgramFilter) ([]models.ProductionProgram, error) {
	programs := []models.ProductionProgram{}
	for i := range s.programs {
		if filter.Matches(&s.programs[i]) {
			programs = append(programs, s.programs[i])
		}
	}
	return programs, nil
}

// ListProgramsForExport joins programs with their machine names. Programs whose machine
// is unknown are dropped, as an inner join would.
func (s *MemoryStore) ListProgramsForExport(_ context.Context, filter models.ProgramFilter) ([]models.ExportRow, error) {
	names := make(map[string]string, len(s.machines))
	for _, m := range s.machines {
		names[m.ID] = m.Name
	}

	rows := []models.ExportRow{}
	for i := range s.programs {
		p := &s.programs[i]
		if !filter.Matches(p) {
			continue
		}
		name, ok := names[p.MachineID]
		if !ok {
			continue
		}
		rows = append(rows, models.ExportRow{
			ProgramName: p.ProgramName,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			WorkTime:    p.WorkTime,
			IdleTime:    p.IdleTime,
			Status:      p.Status,
			MachineName: name,
		})
	}
	return rows, nil
}
