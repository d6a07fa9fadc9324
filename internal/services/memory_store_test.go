package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

func timePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func programIDs(programs []models.ProductionProgram) []string {
	ids := make([]string, 0, len(programs))
	for _, p := range programs {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestMemoryStore_ListMachines(t *testing.T) {
	store := NewMemoryStore()

	machines, err := store.ListMachines(context.Background())
	require.NoError(t, err)

	require.Len(t, machines, 3)
	assert.Equal(t, "NEXT VECTOR-01", machines[0].Name)
	assert.Equal(t, "NEXT VECTOR-02", machines[1].Name)
	assert.Equal(t, "NEXT VECTOR-03", machines[2].Name)
}

func TestMemoryStore_ListMachinesSortsByName(t *testing.T) {
	store := NewMemoryStoreWith([]models.Machine{
		{ID: "b", Name: "Zeta"},
		{ID: "a", Name: "Alpha"},
		{ID: "c", Name: "Alpha"},
	}, nil)

	machines, err := store.ListMachines(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c", "b"}, []string{machines[0].ID, machines[1].ID, machines[2].ID})
}

func TestMemoryStore_ListPrograms_NoFilter(t *testing.T) {
	store := NewMemoryStore()

	programs, err := store.ListPrograms(context.Background(), models.ProgramFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"prog-1", "prog-2", "prog-3", "prog-4", "prog-5"}, programIDs(programs))
	for i := 1; i < len(programs); i++ {
		assert.False(t, programs[i].StartDate.After(programs[i-1].StartDate))
	}
}

func TestMemoryStore_ListPrograms_Filters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.ProgramFilter
		want   []string
	}{
		{
			name:   "start and machine",
			filter: models.ProgramFilter{StartDate: timePtr(t, "2024-01-15T00:00:00Z"), MachineID: "machine-1"},
			want:   []string{"prog-1"},
		},
		{
			name:   "start only",
			filter: models.ProgramFilter{StartDate: timePtr(t, "2024-01-15T00:00:00Z")},
			want:   []string{"prog-1", "prog-2"},
		},
		{
			name:   "end only",
			filter: models.ProgramFilter{EndDate: timePtr(t, "2024-01-14T12:00:00Z")},
			want:   []string{"prog-4", "prog-5"},
		},
		{
			name:   "machine only",
			filter: models.ProgramFilter{MachineID: "machine-2"},
			want:   []string{"prog-2", "prog-5"},
		},
		{
			name: "window",
			filter: models.ProgramFilter{
				StartDate: timePtr(t, "2024-01-14T11:00:00Z"),
				EndDate:   timePtr(t, "2024-01-15T08:00:00Z"),
			},
			want: []string{"prog-2", "prog-3", "prog-4"},
		},
		{
			name:   "unknown machine",
			filter: models.ProgramFilter{MachineID: "machine-9"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			programs, err := store.ListPrograms(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, programIDs(programs))
		})
	}
}

func TestMemoryStore_ListPrograms_ByOwnMachine(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, p := range database.SeedPrograms() {
		programs, err := store.ListPrograms(ctx, models.ProgramFilter{MachineID: p.MachineID})
		require.NoError(t, err)
		assert.Contains(t, programIDs(programs), p.ID)
	}
}

func TestMemoryStore_ListProgramsForExport(t *testing.T) {
	store := NewMemoryStore()

	rows, err := store.ListProgramsForExport(context.Background(), models.ProgramFilter{MachineID: "machine-3"})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Kołnierz KF-200", rows[0].ProgramName)
	assert.Equal(t, "NEXT VECTOR-03", rows[0].MachineName)
	assert.Equal(t, models.ProgramEmergency, rows[0].Status)
	assert.Equal(t, 75, rows[0].WorkTime)
	assert.Equal(t, 3, rows[0].IdleTime)
}

func TestMemoryStore_ExportDropsOrphans(t *testing.T) {
	store := NewMemoryStoreWith(
		[]models.Machine{{ID: "m1", Name: "Known"}},
		[]models.ProductionProgram{
			{ID: "p1", MachineID: "m1", StartDate: time.Unix(10, 0)},
			{ID: "p2", MachineID: "missing", StartDate: time.Unix(20, 0)},
		},
	)

	rows, err := store.ListProgramsForExport(context.Background(), models.ProgramFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Known", rows[0].MachineName)
}

func TestMemoryStore_ResultsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	machines, err := store.ListMachines(ctx)
	require.NoError(t, err)
	machines[0].Name = "mutated"

	again, err := store.ListMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEXT VECTOR-01", again[0].Name)
}
