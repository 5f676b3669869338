package graph

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

func TestNearestBasic(t *testing.T) {
	idx := NewSpatialIndex([]models.Intersection{
		{ID: "a", Name: "A", Location: orb.Point{0, 0}},
		{ID: "b", Name: "B", Location: orb.Point{1, 1}},
	})

	cases := []struct {
		lng, lat float64
		want     string
	}{
		{0.1, 0.1, "a"},
		{0.9, 0.9, "b"},
		{0, 0, "a"},
		{1, 1, "b"},
	}
	for _, tc := range cases {
		got, err := idx.Nearest(tc.lng, tc.lat)
		if err != nil {
			t.Fatalf("Nearest(%v, %v) returned error: %v", tc.lng, tc.lat, err)
		}
		if got != tc.want {
			t.Errorf("Nearest(%v, %v) = %s, want %s", tc.lng, tc.lat, got, tc.want)
		}
	}
}

func TestNearestTieBreaksOnID(t *testing.T) {
	// Both nodes are exactly equidistant from the query point; the
	// lexicographically smaller id must win regardless of insert order.
	nodes := []models.Intersection{
		{ID: "zz", Name: "Z", Location: orb.Point{0, 1}},
		{ID: "aa", Name: "A", Location: orb.Point{0, -1}},
	}
	idx := NewSpatialIndex(nodes)

	got, err := idx.Nearest(0, 0)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if got != "aa" {
		t.Errorf("expected tie-break to aa, got %s", got)
	}
}

func TestNearestAtHighLatitude(t *testing.T) {
	// At 80 degrees north a degree of longitude spans ~19 km against ~111 km
	// per degree of latitude, so degree-space ranking puts all nine decoys
	// (0.4 degrees north, ~44 km away) ahead of the true nearest node
	// (0.5 degrees east, ~10 km away). The widened candidate pool must still
	// surface it for the great-circle re-rank.
	nodes := []models.Intersection{
		{ID: "target", Name: "East", Location: orb.Point{0.5, 80}},
	}
	for i := 0; i < 9; i++ {
		nodes = append(nodes, models.Intersection{
			ID:       "decoy-" + string(rune('a'+i)),
			Name:     "North",
			Location: orb.Point{0.01 * float64(i), 80.4},
		})
	}
	idx := NewSpatialIndex(nodes)

	got, err := idx.Nearest(0, 80)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if got != "target" {
		t.Errorf("expected target, got %s", got)
	}
}

func TestNearestEmptyIndex(t *testing.T) {
	idx := NewSpatialIndex(nil)
	_, err := idx.Nearest(0, 0)
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("expected ErrEmptyGraph, got %v", err)
	}
}

func TestNearestOnDemoGraph(t *testing.T) {
	intersections, _ := DemoGraph()
	idx := NewSpatialIndex(intersections)

	// Just off the Havener Center corner.
	got, err := idx.Nearest(-91.7714, 37.9553)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if got != "n-havener" {
		t.Errorf("expected n-havener, got %s", got)
	}
}

func TestRebuildSwapsNodeSet(t *testing.T) {
	idx := NewSpatialIndex([]models.Intersection{
		{ID: "a", Name: "A", Location: orb.Point{0, 0}},
	})

	idx.Rebuild([]models.Intersection{
		{ID: "b", Name: "B", Location: orb.Point{10, 10}},
	})

	got, err := idx.Nearest(0, 0)
	if err != nil {
		t.Fatalf("Nearest returned error: %v", err)
	}
	if got != "b" {
		t.Errorf("expected rebuilt index to serve b, got %s", got)
	}

	idx.Rebuild(nil)
	if _, err := idx.Nearest(0, 0); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("expected ErrEmptyGraph after empty rebuild, got %v", err)
	}
}
