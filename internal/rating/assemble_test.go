package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescale_MapsObservedRangeOntoTarget(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	rows := []Row{
		{Team: "LOW", ScheduleStrength: 1500},
		{Team: "MID", ScheduleStrength: 1600},
		{Team: "HIGH", ScheduleStrength: 1700},
	}

	applied := engine.rescaleScheduleStrength(rows)

	require.True(t, applied)
	assert.Equal(t, 0.30, rows[0].ScheduleStrength, "Minimum must land exactly on the lower bound")
	assert.Equal(t, 0.55, rows[1].ScheduleStrength, "Midpoint must land exactly halfway")
	assert.Equal(t, 0.80, rows[2].ScheduleStrength, "Maximum must land exactly on the upper bound")
}

func TestRescale_SkipsDegenerateRange(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	rows := []Row{
		{Team: "A", ScheduleStrength: 1550},
		{Team: "B", ScheduleStrength: 1550},
		{Team: "C", ScheduleStrength: 1550},
	}

	applied := engine.rescaleScheduleStrength(rows)

	assert.False(t, applied, "Identical values have no range to map")
	for _, r := range rows {
		assert.Equal(t, 1550.0, r.ScheduleStrength, "Raw values stay untouched when rescale is skipped")
	}
}

func TestRescale_SkipsSingleRow(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	rows := []Row{{Team: "ONLY", ScheduleStrength: 1487.5}}

	applied := engine.rescaleScheduleStrength(rows)

	assert.False(t, applied)
	assert.Equal(t, 1487.5, rows[0].ScheduleStrength)
}

func TestRescale_HonorsConfiguredBounds(t *testing.T) {
	engine := NewEngine(Config{BaseRating: 1500, KFactor: 32, RescaleMin: 0, RescaleMax: 1})
	rows := []Row{
		{Team: "A", ScheduleStrength: 1480},
		{Team: "B", ScheduleStrength: 1520},
	}

	applied := engine.rescaleScheduleStrength(rows)

	require.True(t, applied)
	assert.Equal(t, 0.0, rows[0].ScheduleStrength)
	assert.Equal(t, 1.0, rows[1].ScheduleStrength)
}

func TestRound_Places(t *testing.T) {
	assert.Equal(t, 1516.35, round(1516.3456, 2))
	assert.Equal(t, 0.5679, round(0.56789, 4))
	assert.Equal(t, 1500.0, round(1500.0000001, 2))
}
