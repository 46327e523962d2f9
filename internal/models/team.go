package models

// Team represents a registered VEX U team
type Team struct {
	ID     int
	Number string
}

// IDInfo is the compact team reference RobotEvents embeds in match
// alliances and skills runs. Number is only populated on the full
// /teams payload; the embedded form carries the number in Name.
type IDInfo struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
	Code   string `json:"code"`
}

// Identifier returns the team number, falling back to the name
func (r *IDInfo) Identifier() string {
	if r.Number != "" {
		return r.Number
	}
	return r.Name
}

// TeamInput is used for parsing teams from the API
type TeamInput struct {
	ID           int    `json:"id"`
	Number       string `json:"number"`
	TeamName     string `json:"team_name"`
	RobotName    string `json:"robot_name"`
	Organization string `json:"organization"`
	Grade        string `json:"grade"`
	Registered   bool   `json:"registered"`
}

// ToTeam converts TeamInput (from API) to Team model
func (ti *TeamInput) ToTeam() *Team {
	return &Team{
		ID:     ti.ID,
		Number: ti.Number,
	}
}
