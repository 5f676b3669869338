package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Incident is a stored risk report. RawText is kept verbatim for audit; the
// parsed fields come from the incident parser. Incidents are never deleted,
// only marked resolved.
type Incident struct {
	ID               string     `json:"id"`
	RawText          string     `json:"raw_text"`
	ParsedStreet     *string    `json:"parsed_street"`
	ResolvedStreetID *string    `json:"resolved_street_id,omitempty"`
	Severity         int        `json:"severity"`
	Category         *string    `json:"category"`
	Location         *orb.Point `json:"location,omitempty"`
	ReportedAt       time.Time  `json:"reported_at"`
	Resolved         bool       `json:"resolved"`
}
