package models

import (
	"strconv"
	"strings"
)

// Season represents a VEX U competition season
type Season struct {
	ID         int
	Name       string
	YearsStart int
	YearsEnd   int
}

// SeasonInput is used for parsing seasons from the API
type SeasonInput struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Start      string `json:"start"`
	End        string `json:"end"`
	YearsStart int    `json:"years_start"`
	YearsEnd   int    `json:"years_end"`
}

// ToSeason converts SeasonInput (from API) to Season model
func (si *SeasonInput) ToSeason() *Season {
	return &Season{
		ID:         si.ID,
		Name:       si.Name,
		YearsStart: si.YearsStart,
		YearsEnd:   si.YearsEnd,
	}
}

// ContainsYear reports whether the season name mentions the given year,
// e.g. "VEX U Robotics Competition 2025-2026: Push Back" contains 2025
func (s *Season) ContainsYear(year int) bool {
	return strings.Contains(s.Name, strconv.Itoa(year))
}
