package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

func TestComputeStats_SeedData(t *testing.T) {
	stats := ComputeStats(database.SeedPrograms(), database.SeedMachines())

	assert.Equal(t, models.Stats{
		TotalProduction: 4,
		AvgWorkTime:     189,
		TotalDowntime:   36,
		EmergencyCount:  1,
		WorkingMachines: 1,
		TotalMachines:   3,
		Efficiency:      33,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, models.Stats{}, ComputeStats(nil, nil))
}

func TestComputeStats_RoundsHalfUp(t *testing.T) {
	programs := []models.ProductionProgram{
		{ID: "a", WorkTime: 1, Status: models.ProgramCompleted},
		{ID: "b", WorkTime: 2, Status: "aborted"},
	}
	machines := []models.Machine{
		{ID: "m1", Status: models.MachineWorking},
		{ID: "m2", Status: models.MachineIdle},
		{ID: "m3", Status: models.MachineWorking},
		{ID: "m4", Status: models.MachineWorking},
		{ID: "m5", Status: models.MachineEmergency},
		{ID: "m6", Status: models.MachineIdle},
		{ID: "m7", Status: models.MachineIdle},
		{ID: "m8", Status: models.MachineIdle},
	}

	stats := ComputeStats(programs, machines)

	assert.Equal(t, 2, stats.AvgWorkTime)
	assert.Equal(t, 1, stats.TotalProduction)
	assert.Equal(t, 0, stats.EmergencyCount)
	// 3 of 8 working is 37.5%
	assert.Equal(t, 38, stats.Efficiency)
}

func TestComputeStats_Pure(t *testing.T) {
	programs := database.SeedPrograms()
	machines := database.SeedMachines()

	first := ComputeStats(programs, machines)
	second := ComputeStats(programs, machines)

	assert.Equal(t, first, second)
	assert.Equal(t, database.SeedPrograms(), programs)
	assert.Equal(t, database.SeedMachines(), machines)
}
