package services

import (
	"math"

	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

// ComputeStats aggregates the dashboard summary over an unfiltered snapshot.
// Averages and percentages are rounded half away from zero.
func ComputeStats(programs []models.ProductionProgram, machines []models.Machine) models.Stats {
	var stats models.Stats

	totalWork := 0
	for _, p := range programs {
		switch p.Status {
		case models.ProgramCompleted:
			stats.TotalProduction++
		case models.ProgramEmergency:
			stats.EmergencyCount++
		}
		totalWork += p.WorkTime
		stats.TotalDowntime += p.IdleTime
	}
	if len(programs) > 0 {
		stats.AvgWorkTime = int(math.Round(float64(totalWork) / float64(len(programs))))
	}

	for _, m := range machines {
		if m.Status == models.MachineWorking {
			stats.WorkingMachines++
		}
	}
	stats.TotalMachines = len(machines)
	if stats.TotalMachines > 0 {
		stats.Efficiency = int(math.Round(float64(stats.WorkingMachines) / float64(stats.TotalMachines) * 100))
	}

	return stats
}
