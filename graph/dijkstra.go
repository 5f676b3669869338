package graph

import (
	"container/heap"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// Mode selects the edge cost function for a route computation.
type Mode string

const (
	// ModeSafest weights edges by danger score.
	ModeSafest Mode = "safest"
	// ModeShortest weights edges by physical distance in metres.
	ModeShortest Mode = "shortest"
)

// ParseMode maps a request string to a Mode; the empty string defaults to
// safest, matching the API's default routing strategy.
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(input) {
	case "", "safest":
		return ModeSafest, nil
	case "shortest":
		return ModeShortest, nil
	default:
		return "", fmt.Errorf("unknown routing mode %q", input)
	}
}

// minEdgeWeight floors every edge weight so Dijkstra still orders paths by
// hop count across zero-danger edges.
const minEdgeWeight = 0.01

// Snapshot is a consistent read view of the graph used for one planning
// operation. It is safe for concurrent use; nothing mutates it after
// Store.Snapshot returns it.
type Snapshot struct {
	nodes map[string]models.Intersection
	edges []models.Street // sorted by id
}

// NodeCount returns the number of intersections in the snapshot.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

type neighbor struct {
	to     string
	weight float64
	street *models.Street
	// forward is true when traversal runs in the street's stored
	// start->end orientation.
	forward bool
}

// adjacency expands the undirected street list into per-node neighbor lists.
// When adaRequired is set, inaccessible streets are dropped entirely and
// counted; this is also the single place a one-way check would live.
func (s *Snapshot) adjacency(mode Mode, adaRequired bool) (map[string][]neighbor, int) {
	adj := make(map[string][]neighbor, len(s.nodes))
	bypassed := 0

	for i := range s.edges {
		e := &s.edges[i]
		if adaRequired && !e.IsAccessible {
			bypassed++
			continue
		}

		w := e.DistanceM
		if mode == ModeSafest {
			w = e.DangerScore
		}
		if w < minEdgeWeight {
			w = minEdgeWeight
		}

		adj[e.StartID] = append(adj[e.StartID], neighbor{to: e.EndID, weight: w, street: e, forward: true})
		if e.Bidirectional {
			adj[e.EndID] = append(adj[e.EndID], neighbor{to: e.StartID, weight: w, street: e, forward: false})
		}
	}
	return adj, bypassed
}

type queueItem struct {
	node string
	cost float64
	seq  int // insertion order; breaks cost ties first-discovered
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// Route computes the lowest-cost path from start to end under the selected
// mode. All edge weights are non-negative, so a plain label-setting Dijkstra
// with early exit on the destination is exact.
func (s *Snapshot) Route(start, end string, mode Mode, adaRequired bool) (*models.RouteResult, error) {
	if len(s.nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	if _, ok := s.nodes[start]; !ok {
		return nil, fmt.Errorf("start intersection %s: %w", start, ErrNotFound)
	}
	if _, ok := s.nodes[end]; !ok {
		return nil, fmt.Errorf("end intersection %s: %w", end, ErrNotFound)
	}

	adj, bypassed := s.adjacency(mode, adaRequired)

	dist := map[string]float64{start: 0}
	prevNode := make(map[string]string)
	prevEdge := make(map[string]neighbor)
	visited := make(map[string]bool)

	seq := 0
	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{node: start, cost: 0, seq: seq})

	found := false
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == end {
			found = true
			break
		}

		for _, nb := range adj[u] {
			alt := dist[u] + nb.weight
			if d, ok := dist[nb.to]; !ok || alt < d {
				dist[nb.to] = alt
				prevNode[nb.to] = u
				prevEdge[nb.to] = nb
				seq++
				heap.Push(pq, &queueItem{node: nb.to, cost: alt, seq: seq})
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%s -> %s: %w", start, end, ErrUnreachable)
	}

	path := []string{end}
	for cur := end; cur != start; cur = prevNode[cur] {
		path = append(path, prevNode[cur])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	coords := s.buildCoordinates(path, prevEdge)

	return &models.RouteResult{
		Path:            path,
		Coordinates:     coords,
		TotalCost:       math.Round(dist[end]*10000) / 10000,
		Mode:            string(mode),
		ADARequired:     adaRequired,
		HazardsBypassed: bypassed,
	}, nil
}

// buildCoordinates concatenates the traversed streets' geometries in the
// direction of travel. A street stored end->start relative to the traversal
// is reversed before stitching, and shared endpoints are deduplicated so the
// sequence runs continuously from the start node to the end node.
func (s *Snapshot) buildCoordinates(path []string, prevEdge map[string]neighbor) []orb.Point {
	coords := []orb.Point{s.nodes[path[0]].Location}

	for _, nodeID := range path[1:] {
		nb := prevEdge[nodeID]

		seg := nb.street.Geometry
		if len(seg) < 2 {
			// Degenerate geometry: fall back to the straight segment.
			seg = orb.LineString{s.nodes[nb.street.StartID].Location, s.nodes[nb.street.EndID].Location}
		}
		if !nb.forward {
			seg = reversed(seg)
		}

		for _, p := range seg {
			if samePoint(p, coords[len(coords)-1]) {
				continue
			}
			coords = append(coords, p)
		}
	}
	return coords
}
