package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Intersection is a node in the walking graph, typically the junction of two
// or more streets. Location is stored as [longitude, latitude].
type Intersection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  orb.Point `json:"location"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
