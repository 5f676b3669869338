package graph

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// Store holds the canonical intersection and street collections. It is the
// single writer of danger scores: every mutation goes through
// ApplyDangerScore under the write lock, and readers work from point-in-time
// snapshots, so a route computation never observes a half-applied update.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]models.Intersection
	edges map[string]models.Street

	// most-dangerous view, memoized until the next score write
	dangerous []models.Street

	log *zap.SugaredLogger
}

// NewStore builds a Store from seeded collections, validating the §3-style
// invariants: endpoints must reference existing intersections, distances must
// be non-negative and danger scores within [0, 100].
func NewStore(intersections []models.Intersection, streets []models.Street, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	nodes := make(map[string]models.Intersection, len(intersections))
	for _, n := range intersections {
		if n.ID == "" {
			return nil, fmt.Errorf("intersection %q has no id", n.Name)
		}
		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate intersection id %s", n.ID)
		}
		nodes[n.ID] = n
	}

	edges := make(map[string]models.Street, len(streets))
	for _, s := range streets {
		if s.ID == "" {
			return nil, fmt.Errorf("street %q has no id", s.Name)
		}
		if _, dup := edges[s.ID]; dup {
			return nil, fmt.Errorf("duplicate street id %s", s.ID)
		}
		if _, ok := nodes[s.StartID]; !ok {
			return nil, fmt.Errorf("street %s start intersection %s: %w", s.ID, s.StartID, ErrNotFound)
		}
		if _, ok := nodes[s.EndID]; !ok {
			return nil, fmt.Errorf("street %s end intersection %s: %w", s.ID, s.EndID, ErrNotFound)
		}
		if s.DistanceM < 0 {
			return nil, fmt.Errorf("street %s has negative distance %.2f", s.ID, s.DistanceM)
		}
		if s.DangerScore < 0 || s.DangerScore > 100 {
			return nil, fmt.Errorf("street %s danger score %.2f outside [0,100]", s.ID, s.DangerScore)
		}
		edges[s.ID] = s
	}

	log.Infow("graph store initialized", "intersections", len(nodes), "streets", len(edges))
	return &Store{nodes: nodes, edges: edges, log: log}, nil
}

// Snapshot returns an immutable point-in-time view of the graph, sufficient
// to run a full shortest-path search. The copy is taken under the read lock;
// a score applied after Snapshot returns is not visible to it.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make(map[string]models.Intersection, len(s.nodes))
	for id, n := range s.nodes {
		nodes[id] = n
	}

	edges := make([]models.Street, 0, len(s.edges))
	for _, e := range s.edges {
		edges = append(edges, e)
	}
	// Fixed adjacency ordering keeps path selection deterministic.
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	return &Snapshot{nodes: nodes, edges: edges}
}

// ApplyDangerScore sets a street's danger score to newScore clamped into
// [0, 100]. This is the only mutation entry point in the store.
func (s *Store) ApplyDangerScore(streetID string, newScore float64) error {
	clamped := newScore
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.edges[streetID]
	if !ok {
		return fmt.Errorf("street %s: %w", streetID, ErrNotFound)
	}

	old := e.DangerScore
	e.DangerScore = clamped
	e.UpdatedAt = time.Now().UTC()
	s.edges[streetID] = e
	s.dangerous = nil

	s.log.Infow("danger score updated", "street", e.Name, "id", streetID, "old", old, "new", clamped)
	return nil
}

// Node returns the intersection with the given id.
func (s *Store) Node(id string) (models.Intersection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return models.Intersection{}, fmt.Errorf("intersection %s: %w", id, ErrNotFound)
	}
	return n, nil
}

// Edge returns the street with the given id.
func (s *Store) Edge(id string) (models.Street, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.edges[id]
	if !ok {
		return models.Street{}, fmt.Errorf("street %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// Intersections returns all graph nodes, ordered by id, for map rendering.
func (s *Store) Intersections() []models.Intersection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Intersection, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Streets returns all graph edges with their current danger scores, ordered
// by id, for the dashboard view.
func (s *Store) Streets() []models.Street {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Street, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindStreetsByName returns streets whose display name contains name,
// case-insensitively, ordered by id. Incident reports reference streets by
// name, so one report may match several segments of the same street.
func (s *Store) FindStreetsByName(name string) []models.Street {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Street
	for _, e := range s.edges {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MostDangerous returns the n streets with the highest danger scores. The
// sorted view is memoized and invalidated by ApplyDangerScore.
func (s *Store) MostDangerous(n int) []models.Street {
	if n <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dangerous == nil {
		s.dangerous = make([]models.Street, 0, len(s.edges))
		for _, e := range s.edges {
			s.dangerous = append(s.dangerous, e)
		}
		sort.Slice(s.dangerous, func(i, j int) bool {
			if s.dangerous[i].DangerScore != s.dangerous[j].DangerScore {
				return s.dangerous[i].DangerScore > s.dangerous[j].DangerScore
			}
			return s.dangerous[i].ID < s.dangerous[j].ID
		})
	}

	if n > len(s.dangerous) {
		n = len(s.dangerous)
	}
	out := make([]models.Street, n)
	copy(out, s.dangerous[:n])
	return out
}
