package models

import "github.com/paulmach/orb"

// RouteResult is the computed route returned to the client. Coordinates is
// the full display geometry, ordered in the direction of travel so the
// frontend can draw it without reorienting segments.
type RouteResult struct {
	Path            []string    `json:"path"`
	Coordinates     []orb.Point `json:"coordinates"`
	TotalCost       float64     `json:"total_cost"`
	Mode            string      `json:"mode"`
	ADARequired     bool        `json:"ada_required"`
	HazardsBypassed int         `json:"hazards_bypassed"`
}

// APIError is the uniform error body for all endpoints.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
