package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
)

func testRows() []rating.Row {
	return []rating.Row{
		{Team: "8838A", Rating: 1612.34, ScheduleStrength: 0.8, DriverSkills: 88, ProgrammingSkills: 102},
		{Team: "9090B", Rating: 1500.5, ScheduleStrength: 0.3, DriverSkills: 0, ProgrammingSkills: 15},
	}
}

func TestStore_WriteThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	store := NewStore(path)

	require.NoError(t, store.Write(testRows()), "write should succeed")

	rows, err := store.Load()
	require.NoError(t, err, "load should succeed")
	require.Len(t, rows, 2)
	assert.Equal(t, "8838A", rows[0].Team)
	assert.Equal(t, 1612.34, rows[0].Rating)
	assert.Equal(t, 0.8, rows[0].ScheduleStrength)
	assert.Equal(t, 102, rows[0].ProgrammingSkills)
	assert.Equal(t, 1500.5, rows[1].Rating)
}

func TestStore_WriteUsesFixedDecimalColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	store := NewStore(path)

	require.NoError(t, store.Write(testRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "team_name,elo,strength_of_schedule,driver_skills,programming_skills\n")
	assert.Contains(t, string(data), "8838A,1612.34,0.8000,88,102\n", "ratings use 2 decimals, schedule strength uses 4")
	assert.Contains(t, string(data), "9090B,1500.50,0.3000,0,15\n")
}

func TestStore_WriteReplacesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	store := NewStore(path)

	require.NoError(t, store.Write(testRows()))
	require.NoError(t, store.Write([]rating.Row{{Team: "1111C", Rating: 1490, ScheduleStrength: 0.5}}))

	rows, err := store.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1, "old rows should be gone")
	assert.Equal(t, "1111C", rows[0].Team)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestStore_WriteEmptyTableKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	store := NewStore(path)

	require.NoError(t, store.Write(nil))

	rows, err := store.Load()
	require.NoError(t, err, "empty table is still a valid snapshot")
	assert.Empty(t, rows)
}

func TestStore_LoadMissingFileWrapsNotExist(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist, "missing snapshot should be distinguishable")
}

func TestStore_LoadRejectsForeignHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected snapshot header")
}

func TestStore_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "output", "dashboard_data.csv")
	store := NewStore(path)

	require.NoError(t, store.Write(testRows()), "write should create parent directories")

	_, err := store.ModTime()
	assert.NoError(t, err)
}
