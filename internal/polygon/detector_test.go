package polygon

import (
	"math"
	"testing"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

func squareEdges(size float64) []Edge {
	p := []geometry.Point{
		geometry.NewPoint(100, 100),
		geometry.NewPoint(100+size, 100),
		geometry.NewPoint(100+size, 100+size),
		geometry.NewPoint(100, 100+size),
	}
	return []Edge{
		{ID: "a", Start: p[0], End: p[1]},
		{ID: "b", Start: p[1], End: p[2]},
		{ID: "c", Start: p[2], End: p[3]},
		{ID: "d", Start: p[3], End: p[0]},
	}
}

func TestDetectSquare(t *testing.T) {
	loop, ok := Detect(squareEdges(100), "d", DefaultConfig())
	if !ok {
		t.Fatalf("Detect failed: square not found")
	}
	if len(loop.Vertices) != 4 || len(loop.EdgeIDs) != 4 {
		t.Errorf("Loop size failed: got %d vertices", len(loop.Vertices))
	}
	if math.Abs(loop.Area-10000) > 1e-9 {
		t.Errorf("Area failed: expected 10000, got %v", loop.Area)
	}
	if math.Abs(loop.EdgeLength-400) > 1e-9 {
		t.Errorf("EdgeLength failed: expected 400, got %v", loop.EdgeLength)
	}
}

func TestDetectIndependentOfNewestEdge(t *testing.T) {
	for _, id := range []string{"a", "b", "c", "d"} {
		loop, ok := Detect(squareEdges(100), id, DefaultConfig())
		if !ok {
			t.Errorf("Detect from %s failed", id)
			continue
		}
		if math.Abs(loop.Area-10000) > 1e-9 || math.Abs(geometry.Perimeter(loop.Vertices)-400) > 1e-9 {
			t.Errorf("Detect from %s: area %v, perimeter %v", id, loop.Area, geometry.Perimeter(loop.Vertices))
		}
	}
}

func TestDetectReversedEdges(t *testing.T) {
	edges := squareEdges(100)
	edges[1] = edges[1].reversed()
	edges[3] = edges[3].reversed()

	loop, ok := Detect(edges, "a", DefaultConfig())
	if !ok {
		t.Fatalf("Detect with reversed edges failed")
	}
	if math.Abs(loop.Area-10000) > 1e-9 {
		t.Errorf("Area failed: expected 10000, got %v", loop.Area)
	}
}

func TestDetectWithinTolerance(t *testing.T) {
	edges := squareEdges(100)
	// endpoints drift but stay within 30 px
	edges[2].Start = edges[2].Start.Add(geometry.NewPoint(10, 5))
	edges[3].End = edges[3].End.Add(geometry.NewPoint(-12, 8))

	if _, ok := Detect(edges, "c", DefaultConfig()); !ok {
		t.Errorf("Detect must tolerate gaps within the tolerance")
	}
}

func TestDetectOpenChain(t *testing.T) {
	edges := squareEdges(100)[:3]
	if _, ok := Detect(edges, "c", DefaultConfig()); ok {
		t.Errorf("Open chain must not be detected")
	}
}

func TestDetectRejectsTwoEdgeLoop(t *testing.T) {
	a, b := geometry.NewPoint(0, 0), geometry.NewPoint(100, 0)
	edges := []Edge{{ID: "x", Start: a, End: b}, {ID: "y", Start: b, End: a}}
	if _, ok := Detect(edges, "y", DefaultConfig()); ok {
		t.Errorf("Chain of two edges must not form a polygon")
	}
}

func TestDetectRejectsFlatLoop(t *testing.T) {
	p := []geometry.Point{geometry.NewPoint(0, 0), geometry.NewPoint(100, 0), geometry.NewPoint(200, 0)}
	edges := []Edge{
		{ID: "a", Start: p[0], End: p[1]},
		{ID: "b", Start: p[1], End: p[2]},
		{ID: "c", Start: p[2], End: p[0]},
	}
	if _, ok := Detect(edges, "c", DefaultConfig()); ok {
		t.Errorf("Zero-area loop must be rejected")
	}
}

func TestDetectUnknownEdge(t *testing.T) {
	if _, ok := Detect(squareEdges(100), "missing", DefaultConfig()); ok {
		t.Errorf("Unknown newest edge must not detect anything")
	}
}

func TestDetectIgnoresUnrelatedEdges(t *testing.T) {
	edges := append(squareEdges(100), Edge{
		ID: "far", Start: geometry.NewPoint(1000, 1000), End: geometry.NewPoint(1200, 1000),
	})
	loop, ok := Detect(edges, "b", DefaultConfig())
	if !ok {
		t.Fatalf("Detect failed")
	}
	for _, id := range loop.EdgeIDs {
		if id == "far" {
			t.Errorf("Unrelated edge must not join the loop")
		}
	}
}
