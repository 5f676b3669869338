package graph

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// coordTolerance is the shared-endpoint tolerance in degrees used when
// stitching street geometries together.
const coordTolerance = 1e-9

// distanceM returns the great-circle distance in metres between two
// [lng, lat] points.
func distanceM(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// samePoint reports whether two coordinates coincide within coordTolerance.
func samePoint(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) <= coordTolerance && math.Abs(a[1]-b[1]) <= coordTolerance
}

// reversed returns a copy of ls with its coordinate order flipped.
func reversed(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}
