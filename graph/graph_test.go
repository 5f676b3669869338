package graph

import (
	"errors"
	"sync"
	"testing"

	"github.com/paulmach/orb"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

func TestApplyDangerScoreClampsAndBumps(t *testing.T) {
	store := demoStore(t)

	if err := store.ApplyDangerScore("s-10th", 150); err != nil {
		t.Fatalf("ApplyDangerScore returned error: %v", err)
	}
	e, err := store.Edge("s-10th")
	if err != nil {
		t.Fatalf("Edge returned error: %v", err)
	}
	if e.DangerScore != 100 {
		t.Errorf("expected score clamped to 100, got %v", e.DangerScore)
	}

	if err := store.ApplyDangerScore("s-10th", -3); err != nil {
		t.Fatalf("ApplyDangerScore returned error: %v", err)
	}
	e, _ = store.Edge("s-10th")
	if e.DangerScore != 0 {
		t.Errorf("expected score clamped to 0, got %v", e.DangerScore)
	}
}

func TestApplyDangerScoreUnknownStreet(t *testing.T) {
	store := demoStore(t)
	err := store.ApplyDangerScore("s-nope", 50)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotIsolatedFromLaterWrites(t *testing.T) {
	store := demoStore(t)
	snap := store.Snapshot()

	if err := store.ApplyDangerScore("s-pine-top", 99); err != nil {
		t.Fatalf("ApplyDangerScore returned error: %v", err)
	}

	// The earlier snapshot still routes on the old score.
	res, err := snap.Route("n-havener", "n-library", ModeSafest, false)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if res.TotalCost != 5 {
		t.Errorf("snapshot leaked a later write: cost %v, want 5", res.TotalCost)
	}

	res, err = store.Snapshot().Route("n-havener", "n-library", ModeSafest, false)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	// New snapshot reroutes around the now-dangerous Pine St:
	// Rolla (10) + 10th (8) + State (15).
	if res.TotalCost != 33 {
		t.Errorf("fresh snapshot cost %v, want 33 via 10th St", res.TotalCost)
	}
}

func TestMostDangerousInvalidatedByWrite(t *testing.T) {
	store := demoStore(t)

	top := store.MostDangerous(1)
	if len(top) != 1 || top[0].ID != "s-state-lower" {
		t.Fatalf("expected s-state-lower on top, got %v", top)
	}

	if err := store.ApplyDangerScore("s-pine-top", 90); err != nil {
		t.Fatalf("ApplyDangerScore returned error: %v", err)
	}
	top = store.MostDangerous(2)
	if len(top) != 2 || top[0].ID != "s-pine-top" {
		t.Errorf("expected updated ranking led by s-pine-top, got %v", top)
	}
}

func TestFindStreetsByName(t *testing.T) {
	store := demoStore(t)

	matches := store.FindStreetsByName("state st")
	if len(matches) != 2 {
		t.Fatalf("expected 2 State St segments, got %d", len(matches))
	}
	if matches[0].ID != "s-state-lower" || matches[1].ID != "s-state-upper" {
		t.Errorf("expected id-ordered matches, got %v, %v", matches[0].ID, matches[1].ID)
	}

	if got := store.FindStreetsByName("  "); got != nil {
		t.Errorf("blank name should match nothing, got %v", got)
	}
	if got := store.FindStreetsByName("no such road"); got != nil {
		t.Errorf("unknown name should match nothing, got %v", got)
	}
}

func TestNewStoreRejectsInvalidGraphs(t *testing.T) {
	node := models.Intersection{ID: "a", Name: "A", Location: orb.Point{0, 0}}

	cases := []struct {
		name    string
		streets []models.Street
	}{
		{"unknown endpoint", []models.Street{{ID: "e1", Name: "X", StartID: "a", EndID: "ghost", DistanceM: 1}}},
		{"negative distance", []models.Street{{ID: "e1", Name: "X", StartID: "a", EndID: "a", DistanceM: -1}}},
		{"score out of range", []models.Street{{ID: "e1", Name: "X", StartID: "a", EndID: "a", DistanceM: 1, DangerScore: 101}}},
	}
	for _, tc := range cases {
		if _, err := NewStore([]models.Intersection{node}, tc.streets, nil); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	dup := []models.Intersection{node, node}
	if _, err := NewStore(dup, nil, nil); err == nil {
		t.Error("duplicate intersection id: expected error")
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	store := demoStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap := store.Snapshot()
				if _, err := snap.Route("n-library", "n-innovation", ModeSafest, false); err != nil {
					t.Errorf("concurrent route failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			score := float64(j % 101)
			if err := store.ApplyDangerScore("s-10th", score); err != nil {
				t.Errorf("concurrent write failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	e, err := store.Edge("s-10th")
	if err != nil {
		t.Fatalf("Edge returned error: %v", err)
	}
	if e.DangerScore < 0 || e.DangerScore > 100 {
		t.Errorf("score out of bounds after concurrent writes: %v", e.DangerScore)
	}
}
