package rating

import (
	"github.com/hlzx-cpu/VEX-rankings/internal/models"
)

// outcome is a match reduced to rating terms
type outcome struct {
	winners []string
	losers  []string
	draw    bool
}

// classify splits a match into a winning and a losing roster. The
// higher score wins; equal scores are a draw, with winners/losers then
// holding red/blue in that order. ok is false for records with an
// empty roster on either side; those must not touch rating state.
func classify(m *models.Match) (outcome, bool) {
	if len(m.RedTeams) == 0 || len(m.BlueTeams) == 0 {
		return outcome{}, false
	}

	switch {
	case m.RedScore > m.BlueScore:
		return outcome{winners: m.RedTeams, losers: m.BlueTeams}, true
	case m.BlueScore > m.RedScore:
		return outcome{winners: m.BlueTeams, losers: m.RedTeams}, true
	default:
		return outcome{winners: m.RedTeams, losers: m.BlueTeams, draw: true}, true
	}
}
