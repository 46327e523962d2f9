package rating

import (
	"errors"
	"sort"

	"github.com/hlzx-cpu/VEX-rankings/internal/models"
)

// ErrNoValidMatches is returned by Compute when the match log holds
// nothing that can contribute to ratings. Callers must leave any
// previously published table untouched in that case.
var ErrNoValidMatches = errors.New("no valid matches to rate")

// Config parameterizes a rating pass
type Config struct {
	// BaseRating seeds every team and marks never-played teams
	BaseRating float64
	// KFactor scales each pairwise rating step
	KFactor float64
	// RescaleMin and RescaleMax bound the published schedule-strength range
	RescaleMin float64
	RescaleMax float64
}

// DefaultConfig returns the standard ladder parameters
func DefaultConfig() Config {
	return Config{
		BaseRating: 1500,
		KFactor:    32,
		RescaleMin: 0.30,
		RescaleMax: 0.80,
	}
}

// Engine computes team ratings from a season's match log
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given parameters
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Row is one team's line in the final rating table
type Row struct {
	Team              string  `json:"team_name"`
	Rating            float64 `json:"elo"`
	ScheduleStrength  float64 `json:"strength_of_schedule"`
	DriverSkills      int     `json:"driver_skills"`
	ProgrammingSkills int     `json:"programming_skills"`
}

// Summary carries per-pass diagnostics
type Summary struct {
	TotalMatches   int
	ValidMatches   int
	InvalidMatches int
	Draws          int
	PairUpdates    int
	RankedTeams    int
	ExcludedTeams  int
	RescaleApplied bool
}

// Table is the result of one rating pass
type Table struct {
	Rows    []Row
	Summary Summary
}

// Compute runs one complete rating pass: order the match log, apply
// every valid match to the ladder, derive schedule strength from the
// final ratings, then merge skills and assemble the output table.
// Deterministic for identical inputs.
func (e *Engine) Compute(matches []models.Match, teams []string, skills []models.SkillsRecord) (*Table, error) {
	ordered := sortChronological(matches)

	lad := newLadder(e.cfg.BaseRating, e.cfg.KFactor)
	lad.seed(teams)

	summary := Summary{TotalMatches: len(matches)}
	for i := range ordered {
		result, ok := classify(&ordered[i])
		if !ok {
			summary.InvalidMatches++
			continue
		}
		summary.ValidMatches++
		if result.draw {
			summary.Draws++
		}
		summary.PairUpdates += lad.apply(result)
	}

	if summary.ValidMatches == 0 {
		return nil, ErrNoValidMatches
	}

	strength := lad.scheduleStrength()
	rows := e.assemble(lad, strength, skills, &summary)
	summary.RankedTeams = len(rows)

	return &Table{Rows: rows, Summary: summary}, nil
}

// sortChronological orders matches by start time ascending, leaving
// the input untouched. Matches without a usable timestamp go last and
// keep their relative input order. Ratings are path dependent, so the
// processing order decides the result.
func sortChronological(matches []models.Match) []models.Match {
	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := &ordered[i], &ordered[j]
		switch {
		case !a.HasStartTime():
			return false
		case !b.HasStartTime():
			return true
		default:
			return a.StartedAt.Before(b.StartedAt)
		}
	})

	return ordered
}
