package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadder_RatingInsertsBaseOnFirstSight(t *testing.T) {
	lad := newLadder(1500, 32)

	assert.Equal(t, 1500.0, lad.rating("NEW1"), "Unknown teams start at the base rating")
	lad.ratings["NEW1"] = 1540
	assert.Equal(t, 1540.0, lad.rating("NEW1"), "Known teams keep their current rating")
}

func TestLadder_HeadToHeadFromEvenRatings(t *testing.T) {
	lad := newLadder(1500, 32)

	pairs := lad.apply(outcome{winners: []string{"A"}, losers: []string{"B"}})

	assert.Equal(t, 1, pairs)
	assert.InDelta(t, 1516.0, lad.ratings["A"], 1e-9)
	assert.InDelta(t, 1484.0, lad.ratings["B"], 1e-9)
	assert.Equal(t, []string{"B"}, lad.opponents["A"])
	assert.Equal(t, []string{"A"}, lad.opponents["B"])
}

func TestLadder_DrawAtEqualRatingsMovesNothing(t *testing.T) {
	lad := newLadder(1500, 32)

	lad.apply(outcome{winners: []string{"A"}, losers: []string{"B"}, draw: true})

	assert.Equal(t, 1500.0, lad.ratings["A"], "Expected and actual are both 0.5")
	assert.Equal(t, 1500.0, lad.ratings["B"])
	assert.Equal(t, []string{"B"}, lad.opponents["A"], "Draws still record the encounter")
	assert.Equal(t, []string{"A"}, lad.opponents["B"])
}

func TestLadder_DrawMovesTheFavoredTeamDown(t *testing.T) {
	lad := newLadder(1500, 32)
	lad.ratings["STRONG"] = 1600
	lad.ratings["WEAK"] = 1400

	lad.apply(outcome{winners: []string{"STRONG"}, losers: []string{"WEAK"}, draw: true})

	assert.Less(t, lad.ratings["STRONG"], 1600.0, "The favorite drew below expectation")
	assert.Greater(t, lad.ratings["WEAK"], 1400.0, "The underdog drew above expectation")
}

func TestLadder_AllianceUpdateCrossesEveryPair(t *testing.T) {
	lad := newLadder(1500, 32)

	pairs := lad.apply(outcome{winners: []string{"A", "B"}, losers: []string{"C", "D"}})

	require.Equal(t, 4, pairs)
	assert.ElementsMatch(t, []string{"C", "D"}, lad.opponents["A"], "Each winner faced both losers")
	assert.ElementsMatch(t, []string{"C", "D"}, lad.opponents["B"])
	assert.ElementsMatch(t, []string{"A", "B"}, lad.opponents["C"], "Each loser faced both winners")
	assert.ElementsMatch(t, []string{"A", "B"}, lad.opponents["D"])
}

func TestLadder_ScheduleStrengthAveragesFinalRatings(t *testing.T) {
	lad := newLadder(1500, 32)

	// A beats B, then A beats B again, then C beats A. Schedule
	// strength must use the ratings as they stand after all three.
	lad.apply(outcome{winners: []string{"A"}, losers: []string{"B"}})
	lad.apply(outcome{winners: []string{"A"}, losers: []string{"B"}})
	lad.apply(outcome{winners: []string{"C"}, losers: []string{"A"}})

	strength := lad.scheduleStrength()

	finalB := lad.ratings["B"]
	finalC := lad.ratings["C"]
	expectedA := (finalB + finalB + finalC) / 3
	assert.InDelta(t, expectedA, strength["A"], 1e-9, "Repeated opponents count once per encounter")

	finalA := lad.ratings["A"]
	assert.InDelta(t, finalA, strength["C"], 1e-9)
	assert.InDelta(t, finalA, strength["B"], 1e-9)
}

func TestLadder_ScheduleStrengthAfterSingleWin(t *testing.T) {
	lad := newLadder(1500, 32)

	lad.apply(outcome{winners: []string{"A"}, losers: []string{"B"}})
	strength := lad.scheduleStrength()

	assert.InDelta(t, 1484.0, strength["A"], 1e-9, "Winner's schedule strength is the loser's final rating")
	assert.InDelta(t, 1516.0, strength["B"], 1e-9, "Loser's schedule strength is the winner's final rating")
}

func TestLadder_ScheduleStrengthDefaultsToBase(t *testing.T) {
	lad := newLadder(1500, 32)
	lad.seed([]string{"IDLE"})

	strength := lad.scheduleStrength()

	assert.Equal(t, 1500.0, strength["IDLE"], "No opponents means base schedule strength")
}
