package graph

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// DemoGraph returns the built-in demo city graph: a six-intersection grid
// around the Missouri S&T campus in Rolla, MO. It serves as the default data
// set when no graph file is configured and as the fixture for tests.
func DemoGraph() ([]models.Intersection, []models.Street) {
	now := time.Now().UTC()

	intersections := []models.Intersection{
		{ID: "n-havener", Name: "Havener Center", Location: orb.Point{-91.7713, 37.9554}, Tags: []string{"campus", "well_lit"}, CreatedAt: now},
		{ID: "n-library", Name: "Curtis Laws Wilson Library", Location: orb.Point{-91.7743, 37.9554}, Tags: []string{"campus", "well_lit"}, CreatedAt: now},
		{ID: "n-10th-pine", Name: "10th & Pine St", Location: orb.Point{-91.7713, 37.9530}, Tags: []string{"well_lit"}, CreatedAt: now},
		{ID: "n-10th-state", Name: "10th & State St", Location: orb.Point{-91.7743, 37.9530}, CreatedAt: now},
		{ID: "n-12th-pine", Name: "12th & Pine St", Location: orb.Point{-91.7713, 37.9505}, Tags: []string{"residential"}, CreatedAt: now},
		{ID: "n-innovation", Name: "Innovation Lab", Location: orb.Point{-91.7743, 37.9505}, Tags: []string{"residential", "dimly_lit"}, CreatedAt: now},
	}

	loc := func(i int) orb.Point { return intersections[i].Location }
	edge := func(id, name string, a, b int, dist, danger float64, accessible bool) models.Street {
		return models.Street{
			ID:            id,
			Name:          name,
			StartID:       intersections[a].ID,
			EndID:         intersections[b].ID,
			Geometry:      orb.LineString{loc(a), loc(b)},
			DistanceM:     dist,
			DangerScore:   danger,
			IsAccessible:  accessible,
			Bidirectional: true,
			UpdatedAt:     now,
		}
	}

	streets := []models.Street{
		edge("s-pine-top", "Pine St (Havener→Library)", 0, 1, 280.0, 5.0, true),
		edge("s-rolla-upper", "Rolla St (Pine→10th)", 0, 2, 270.0, 10.0, true),
		edge("s-state-upper", "State St (Pine→10th)", 1, 3, 270.0, 15.0, false),
		edge("s-10th", "10th St (Rolla→State)", 2, 3, 280.0, 8.0, true),
		edge("s-rolla-lower", "Rolla St (10th→12th)", 2, 4, 280.0, 20.0, true),
		edge("s-state-lower", "State St (10th→12th)", 3, 5, 280.0, 65.0, false),
		edge("s-12th", "12th St (Pine→Innovation)", 4, 5, 280.0, 40.0, true),
	}

	return intersections, streets
}
