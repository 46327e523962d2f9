package rating

import (
	"testing"

	"github.com/hlzx-cpu/VEX-rankings/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_HigherScoreWins(t *testing.T) {
	redWin := models.Match{RedTeams: []string{"R1"}, BlueTeams: []string{"B1"}, RedScore: 15, BlueScore: 3}
	result, ok := classify(&redWin)
	require.True(t, ok)
	assert.Equal(t, []string{"R1"}, result.winners)
	assert.Equal(t, []string{"B1"}, result.losers)
	assert.False(t, result.draw)

	blueWin := models.Match{RedTeams: []string{"R1"}, BlueTeams: []string{"B1"}, RedScore: 3, BlueScore: 15}
	result, ok = classify(&blueWin)
	require.True(t, ok)
	assert.Equal(t, []string{"B1"}, result.winners)
	assert.Equal(t, []string{"R1"}, result.losers)
}

func TestClassify_EqualScoresAreADraw(t *testing.T) {
	m := models.Match{RedTeams: []string{"R1", "R2"}, BlueTeams: []string{"B1", "B2"}, RedScore: 8, BlueScore: 8}

	result, ok := classify(&m)

	require.True(t, ok)
	assert.True(t, result.draw)
	assert.Equal(t, []string{"R1", "R2"}, result.winners)
	assert.Equal(t, []string{"B1", "B2"}, result.losers)
}

func TestClassify_EmptyRosterIsDiscarded(t *testing.T) {
	noRed := models.Match{BlueTeams: []string{"B1"}, RedScore: 0, BlueScore: 10}
	_, ok := classify(&noRed)
	assert.False(t, ok, "A match without a red roster cannot be rated")

	noBlue := models.Match{RedTeams: []string{"R1"}, RedScore: 10, BlueScore: 0}
	_, ok = classify(&noBlue)
	assert.False(t, ok, "A match without a blue roster cannot be rated")
}

func TestClassify_ZeroZeroIsStillADraw(t *testing.T) {
	m := models.Match{RedTeams: []string{"R1"}, BlueTeams: []string{"B1"}}

	result, ok := classify(&m)

	require.True(t, ok, "Unscored matches arrive as 0-0 and count as draws")
	assert.True(t, result.draw)
}
