package services

import (
	"context"

	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

// Store is a read-only source of machines and production programs.
// Implementations must return results in the same order for the same data:
// machines by name, programs by start date descending, ties broken by id.
type Store interface {
	ListMachines(ctx context.Context) ([]models.Machine, error)
	ListPrograms(ctx context.Context, filter models.ProgramFilter) ([]models.ProductionProgram, error)
	ListProgramsForExport(ctx context.Context, filter models.ProgramFilter) ([]models.ExportRow, error)
}
