package graph

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// nearestCandidates is the baseline number of R-tree neighbors pulled before
// the exact great-circle re-rank. The tree ranks candidates in raw degree
// space, where a degree of longitude shrinks by cos(lat), so the pool is
// widened with latitude to keep the true nearest node inside it.
const nearestCandidates = 8

// candidateCount widens the candidate pool by 1/cos(lat), capped so queries
// near the poles stay bounded.
func candidateCount(lat float64) int {
	scale := math.Cos(lat * math.Pi / 180)
	if scale < 0.1 {
		scale = 0.1
	}
	return int(math.Ceil(nearestCandidates / scale))
}

// nearestToleranceM is the distance window, in metres, within which two
// candidates count as equidistant and the id tie-break applies. A millimetre
// absorbs floating-point noise while staying far below real node spacing.
const nearestToleranceM = 1e-3

// SpatialIndex answers nearest-intersection queries. The node set is a
// read-only projection of the store, correct only as of the last Rebuild;
// rebuilds publish a fresh tree so in-flight lookups never see a partially
// built structure.
type SpatialIndex struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	size int
}

type indexedNode struct {
	node     models.Intersection
	envelope rtreego.Rect
}

func (n *indexedNode) Bounds() rtreego.Rect { return n.envelope }

// NewSpatialIndex builds an index over the given intersections.
func NewSpatialIndex(nodes []models.Intersection) *SpatialIndex {
	idx := &SpatialIndex{}
	idx.Rebuild(nodes)
	return idx
}

// Rebuild replaces the index contents. The new tree is constructed off to the
// side and swapped in under the lock, so concurrent Nearest calls block only
// for the pointer swap.
func (idx *SpatialIndex) Rebuild(nodes []models.Intersection) {
	tree := rtreego.NewTree(2, 25, 50)
	count := 0
	for _, n := range nodes {
		rect, err := rtreego.NewRect(
			rtreego.Point{n.Location.Lon(), n.Location.Lat()},
			[]float64{coordTolerance, coordTolerance},
		)
		if err != nil {
			continue
		}
		tree.Insert(&indexedNode{node: n, envelope: rect})
		count++
	}

	idx.mu.Lock()
	idx.tree = tree
	idx.size = count
	idx.mu.Unlock()
}

// Nearest returns the id of the intersection closest to (lng, lat).
// Candidates equidistant within tolerance resolve to the lexicographically
// smaller id, which keeps the result deterministic and testable.
func (idx *SpatialIndex) Nearest(lng, lat float64) (string, error) {
	idx.mu.RLock()
	tree, size := idx.tree, idx.size
	idx.mu.RUnlock()

	if size == 0 {
		return "", ErrEmptyGraph
	}

	query := orb.Point{lng, lat}
	results := tree.NearestNeighbors(candidateCount(lat), rtreego.Point{lng, lat})

	bestID := ""
	bestDist := math.Inf(1)
	for _, item := range results {
		if item == nil {
			continue
		}
		in := item.(*indexedNode)
		d := distanceM(query, in.node.Location)
		switch {
		case bestID == "" || d < bestDist-nearestToleranceM:
			bestID, bestDist = in.node.ID, d
		case math.Abs(d-bestDist) <= nearestToleranceM && in.node.ID < bestID:
			bestID = in.node.ID
			if d < bestDist {
				bestDist = d
			}
		}
	}
	return bestID, nil
}
