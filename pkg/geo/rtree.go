// Package geo projects geographic coordinates onto character grids and indexes
// route waypoints for nearest-point lookups.
package geo

import (
	"math"
	"sort"
	"sync"

	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/dhconnelly/rtreego"
)

const (
	tolerance   = 1e-7
	minChildren = 4
	maxChildren = 16
	dimensions  = 2
	earthRadius = 6371000.0 // meters
)

// waypoint wraps a route vertex for R-Tree indexing
type waypoint struct {
	index int
	coord models.Coordinate
	rect  *rtreego.Rect
}

func (w *waypoint) Bounds() *rtreego.Rect {
	return w.rect
}

// WaypointIndex is a thread-safe R-Tree over the vertices of one route
type WaypointIndex struct {
	tree *rtreego.Rtree
	mu   sync.RWMutex
	size int
}

// NewWaypointIndex indexes every coordinate of a route path by its position in the path
func NewWaypointIndex(coords []models.Coordinate) *WaypointIndex {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for i, c := range coords {
		p := rtreego.Point{c.Lat, c.Lng}
		tree.Insert(&waypoint{index: i, coord: c, rect: p.ToRect(tolerance)})
	}

	return &WaypointIndex{tree: tree, size: len(coords)}
}

// Len returns the number of indexed waypoints
func (w *WaypointIndex) Len() int {
	if w == nil {
		return 0
	}
	return w.size
}

// Nearest returns the path index of the waypoint closest to c and its distance in meters
func (w *WaypointIndex) Nearest(c models.Coordinate) (int, float64, bool) {
	if w.Len() == 0 {
		return -1, 0, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := w.tree.NearestNeighbor(rtreego.Point{c.Lat, c.Lng})
	item, ok := result.(*waypoint)
	if !ok || item == nil {
		return -1, 0, false
	}
	return item.index, Distance(c, item.coord), true
}

// Within returns the path indices of waypoints inside the box, in path order
func (w *WaypointIndex) Within(box models.BoundingBox) []int {
	if w.Len() == 0 {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	latSpan, lngSpan := box.Span()
	bounds, err := rtreego.NewRect(
		rtreego.Point{box.BottomLeft.Lat, box.BottomLeft.Lng},
		[]float64{math.Max(latSpan, tolerance), math.Max(lngSpan, tolerance)},
	)
	if err != nil {
		return nil
	}

	results := w.tree.SearchIntersect(bounds)
	indices := make([]int, 0, len(results))
	for _, result := range results {
		item, ok := result.(*waypoint)
		if !ok {
			continue
		}
		// Strict boundary check, the rects carry a tolerance
		if box.Contains(item.coord) {
			indices = append(indices, item.index)
		}
	}
	sort.Ints(indices)
	return indices
}

// Distance calculates the haversine distance between two coordinates in meters
func Distance(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
