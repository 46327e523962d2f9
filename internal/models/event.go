package models

// Event represents a tournament within a season
type Event struct {
	ID        int
	SKU       string
	Name      string
	Divisions []Division
}

// Division is a competition division within an event. Most VEX U events
// run a single default division; larger ones split into several.
type Division struct {
	ID   int
	Name string
}

// EventInput is used for parsing events from the API
type EventInput struct {
	ID        int             `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Ongoing   bool            `json:"ongoing"`
	Divisions []DivisionInput `json:"divisions"`
}

// DivisionInput is the division object embedded in event payloads
type DivisionInput struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// ToEvent converts EventInput (from API) to Event model
func (ei *EventInput) ToEvent() *Event {
	event := &Event{
		ID:   ei.ID,
		SKU:  ei.SKU,
		Name: ei.Name,
	}

	for _, d := range ei.Divisions {
		event.Divisions = append(event.Divisions, Division{ID: d.ID, Name: d.Name})
	}

	return event
}
