package models

import (
	"encoding/json"
	"time"

	"github.com/paulmach/orb"
)

// Street is an edge in the walking graph. It carries a physical distance in
// metres for standard routing and a danger score in [0, 100] that the risk
// updater adjusts as incidents come in. Geometry is the street's drawn shape;
// it is used for rendering the path, never for cost.
type Street struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	StartID       string         `json:"start_intersection_id"`
	EndID         string         `json:"end_intersection_id"`
	Geometry      orb.LineString `json:"geometry"`
	DistanceM     float64        `json:"distance_m"`
	DangerScore   float64        `json:"danger_score"`
	IsAccessible  bool           `json:"is_accessible"`
	Bidirectional bool           `json:"bidirectional"`
	UpdatedAt     time.Time      `json:"updated_at,omitempty"`
}

// UnmarshalJSON treats omitted is_accessible and bidirectional fields as
// true, so a street is walkable both ways and accessible unless the source
// data says otherwise.
func (s *Street) UnmarshalJSON(data []byte) error {
	type street Street
	aux := street{IsAccessible: true, Bidirectional: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Street(aux)
	return nil
}
