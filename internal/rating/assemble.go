package rating

import (
	"math"
	"sort"

	"github.com/hlzx-cpu/VEX-rankings/internal/models"
)

// assemble merges the final ratings and schedule strengths with best
// skills scores, applies the exclusion and rescale policy, rounds, and
// sorts the rows by rating descending.
func (e *Engine) assemble(lad *ladder, strength map[string]float64, skills []models.SkillsRecord, summary *Summary) []Row {
	best := make(models.BestSkills)
	for i := range skills {
		best.Add(&skills[i])
	}

	rows := make([]Row, 0, len(lad.ratings))
	for team := range lad.ratings {
		rounded := round(lad.ratings[team], 2)
		sos := round(strength[team], 4)

		// A team still at the base rating with base schedule strength
		// was pulled in from the roster but never played a valid match.
		if rounded == e.cfg.BaseRating && sos == e.cfg.BaseRating {
			summary.ExcludedTeams++
			continue
		}

		scores := best.Lookup(team)
		rows = append(rows, Row{
			Team:              team,
			Rating:            rounded,
			ScheduleStrength:  sos,
			DriverSkills:      scores.Driver,
			ProgrammingSkills: scores.Programming,
		})
	}

	summary.RescaleApplied = e.rescaleScheduleStrength(rows)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Team < rows[j].Team
	})

	return rows
}

// rescaleScheduleStrength linearly remaps the schedule-strength column
// from its observed [min, max] onto the configured target range.
// Skipped when fewer than two rows remain or every row carries the
// same value (no meaningful range, and max == min would divide by
// zero).
func (e *Engine) rescaleScheduleStrength(rows []Row) bool {
	if len(rows) < 2 {
		return false
	}

	min, max := rows[0].ScheduleStrength, rows[0].ScheduleStrength
	for _, r := range rows[1:] {
		if r.ScheduleStrength < min {
			min = r.ScheduleStrength
		}
		if r.ScheduleStrength > max {
			max = r.ScheduleStrength
		}
	}
	if max <= min {
		return false
	}

	span := e.cfg.RescaleMax - e.cfg.RescaleMin
	for i := range rows {
		scaled := e.cfg.RescaleMin + (rows[i].ScheduleStrength-min)/(max-min)*span
		rows[i].ScheduleStrength = round(scaled, 4)
	}
	return true
}

// round rounds v to the given number of decimal places
func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
