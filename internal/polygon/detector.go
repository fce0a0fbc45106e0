// Package polygon finds closed loops in a set of distance edges
package polygon

import (
	"math"

	"github.com/philipparndt/photomeasure/pkg/geometry"
	"gonum.org/v1/gonum/floats"
)

// Config holds the detector thresholds in photo pixels
type Config struct {
	TolerancePx float64 `mapstructure:"tolerance_px"`
	MinAreaPx   float64 `mapstructure:"min_area_px"`
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{TolerancePx: 30, MinAreaPx: 0.5}
}

// Edge is a distance measurement as seen by the detector
type Edge struct {
	ID    string
	Start geometry.Point
	End   geometry.Point
}

func (e Edge) reversed() Edge {
	return Edge{ID: e.ID, Start: e.End, End: e.Start}
}

// Loop is an accepted closed chain
type Loop struct {
	Vertices   []geometry.Point
	EdgeIDs    []string
	EdgeLength float64 // sum of the chained edge lengths
	Area       float64 // shoelace area of the vertices
}

// Detect builds the maximal chain through the edge with newestID and
// reports it when it closes into a non-degenerate loop
func Detect(edges []Edge, newestID string, cfg Config) (Loop, bool) {
	newest := -1
	for i, e := range edges {
		if e.ID == newestID {
			newest = i
			break
		}
	}
	if newest < 0 {
		return Loop{}, false
	}

	used := make([]bool, len(edges))
	used[newest] = true
	chain := []Edge{edges[newest]}

	closed := func() bool {
		return len(chain) >= 3 && chain[len(chain)-1].End.Distance(chain[0].Start) <= cfg.TolerancePx
	}

	for !closed() {
		if e, ok := next(edges, used, chain[len(chain)-1].End, cfg.TolerancePx, false); ok {
			chain = append(chain, e)
			continue
		}
		if e, ok := next(edges, used, chain[0].Start, cfg.TolerancePx, true); ok {
			chain = append([]Edge{e}, chain...)
			continue
		}
		return Loop{}, false
	}

	loop := Loop{
		Vertices: make([]geometry.Point, len(chain)),
		EdgeIDs:  make([]string, len(chain)),
	}
	lengths := make([]float64, len(chain))
	for i, e := range chain {
		loop.Vertices[i] = e.Start
		loop.EdgeIDs[i] = e.ID
		lengths[i] = e.Start.Distance(e.End)
	}
	loop.EdgeLength = floats.Sum(lengths)
	loop.Area = geometry.ShoelaceArea(loop.Vertices)

	if geometry.Collapsed(loop.Vertices, 1e-9) || loop.Area < cfg.MinAreaPx {
		return Loop{}, false
	}
	return loop, true
}

// next finds the unused edge with an endpoint nearest to joint. Forward
// chaining orients the edge to start at joint, backward chaining to end there.
func next(edges []Edge, used []bool, joint geometry.Point, tolerance float64, backward bool) (Edge, bool) {
	best, bestDist := -1, math.Inf(1)
	flip := false

	for i, e := range edges {
		if used[i] {
			continue
		}
		if d := joint.Distance(e.Start); d <= tolerance && d < bestDist {
			best, bestDist, flip = i, d, backward
		}
		if d := joint.Distance(e.End); d <= tolerance && d < bestDist {
			best, bestDist, flip = i, d, !backward
		}
	}
	if best < 0 {
		return Edge{}, false
	}

	used[best] = true
	if flip {
		return edges[best].reversed(), true
	}
	return edges[best], true
}
