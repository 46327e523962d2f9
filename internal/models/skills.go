package models

// Discipline is a skills-challenge kind
type Discipline string

const (
	DisciplineDriver      Discipline = "driver"
	DisciplineProgramming Discipline = "programming"
)

// SkillsRecord is a single skills run by one team
type SkillsRecord struct {
	Team       string
	Discipline Discipline
	Score      int
}

// SkillsInput is used for parsing skills runs from the API
type SkillsInput struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Team     IDInfo `json:"team"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"`
	Attempts int    `json:"attempts"`
}

// ToSkillsRecord converts SkillsInput (from API) to a SkillsRecord.
// Returns nil when the run has no usable team identifier.
func (si *SkillsInput) ToSkillsRecord() *SkillsRecord {
	team := si.Team.Identifier()
	if team == "" {
		return nil
	}
	return &SkillsRecord{
		Team:       team,
		Discipline: Discipline(si.Type),
		Score:      si.Score,
	}
}

// SkillsScores holds a team's best score per discipline
type SkillsScores struct {
	Driver      int
	Programming int
}

// BestSkills accumulates the maximum observed score per team per
// discipline. Runs of unknown disciplines are ignored.
type BestSkills map[string]*SkillsScores

// Add folds one skills run into the accumulator
func (b BestSkills) Add(rec *SkillsRecord) {
	if rec == nil {
		return
	}
	best, ok := b[rec.Team]
	if !ok {
		best = &SkillsScores{}
		b[rec.Team] = best
	}
	switch rec.Discipline {
	case DisciplineDriver:
		if rec.Score > best.Driver {
			best.Driver = rec.Score
		}
	case DisciplineProgramming:
		if rec.Score > best.Programming {
			best.Programming = rec.Score
		}
	}
}

// Lookup returns the best scores for a team, zero-valued when the team
// has no recorded runs
func (b BestSkills) Lookup(team string) SkillsScores {
	if best, ok := b[team]; ok {
		return *best
	}
	return SkillsScores{}
}
