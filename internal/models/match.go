package models

import (
	"time"
)

// Match represents one alliance-vs-alliance match outcome. A zero
// StartedAt means the upstream record carried no usable timestamp;
// such matches order after all timestamped ones.
type Match struct {
	EventID   int
	MatchID   int
	StartedAt time.Time
	RedTeams  []string
	BlueTeams []string
	RedScore  int
	BlueScore int
}

// HasStartTime reports whether the match carries a usable timestamp
func (m *Match) HasStartTime() bool {
	return !m.StartedAt.IsZero()
}

// MatchInput is used for parsing matches from the API
type MatchInput struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Round     int             `json:"round"`
	Instance  int             `json:"instance"`
	MatchNum  int             `json:"matchnum"`
	Scheduled string          `json:"scheduled"`
	Started   string          `json:"started"`
	Field     string          `json:"field"`
	Scored    bool            `json:"scored"`
	Alliances []AllianceInput `json:"alliances"`
}

// AllianceInput is one side of a match. Score is null upstream until
// the match has been scored.
type AllianceInput struct {
	Color string              `json:"color"`
	Score *int                `json:"score"`
	Teams []AllianceTeamInput `json:"teams"`
}

// AllianceTeamInput is a single roster slot on an alliance
type AllianceTeamInput struct {
	Team    *IDInfo `json:"team"`
	Sitting bool    `json:"sitting"`
}

// ToMatch converts MatchInput (from API) to a Match model.
// Returns nil for records that cannot contribute to ratings:
// fewer than two alliances, or either roster empty.
func (mi *MatchInput) ToMatch(eventID int) *Match {
	if len(mi.Alliances) < 2 {
		return nil
	}

	red := mi.allianceByColor("red", 0)
	blue := mi.allianceByColor("blue", 1)

	redTeams := rosterIdentifiers(red)
	blueTeams := rosterIdentifiers(blue)
	if len(redTeams) == 0 || len(blueTeams) == 0 {
		return nil
	}

	match := &Match{
		EventID:   eventID,
		MatchID:   mi.ID,
		RedTeams:  redTeams,
		BlueTeams: blueTeams,
		RedScore:  scoreOrZero(red.Score),
		BlueScore: scoreOrZero(blue.Score),
	}

	// Parse start time; failures leave the zero value
	if started, err := time.Parse(time.RFC3339, mi.Started); err == nil {
		match.StartedAt = started
	}

	return match
}

// allianceByColor returns the alliance with the given color, falling
// back to the given position when colors are missing
func (mi *MatchInput) allianceByColor(color string, fallback int) *AllianceInput {
	for i := range mi.Alliances {
		if mi.Alliances[i].Color == color {
			return &mi.Alliances[i]
		}
	}
	return &mi.Alliances[fallback]
}

// rosterIdentifiers collects the non-blank team identifiers of an alliance
func rosterIdentifiers(a *AllianceInput) []string {
	var ids []string
	for i := range a.Teams {
		if a.Teams[i].Team == nil {
			continue
		}
		if id := a.Teams[i].Team.Identifier(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
