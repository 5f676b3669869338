package models

// IncidentReport is the request body for reporting a new incident. The raw
// text goes to the parser; coordinates and street id are optional hints from
// the reporter.
type IncidentReport struct {
	RawText   string   `json:"raw_text" binding:"required,min=5"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	StreetID  *string  `json:"street_id,omitempty"`
}
