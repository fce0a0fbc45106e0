package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func toOrb(p Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// ring builds a closed orb ring from an ordered vertex list
func ring(points []Point) orb.Ring {
	r := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		r = append(r, toOrb(p))
	}
	if len(points) > 0 && points[0] != points[len(points)-1] {
		r = append(r, toOrb(points[0]))
	}
	return r
}

// ShoelaceArea returns the unsigned area enclosed by the ordered vertices.
// The polygon is closed implicitly.
func ShoelaceArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	return math.Abs(planar.Area(ring(points)))
}

// PathLength returns the length of the open polyline through points
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, toOrb(p))
	}
	return planar.Length(ls)
}

// Perimeter returns the length of the closed loop through points
func Perimeter(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return planar.Length(ring(points))
}

// Collapsed reports whether every point lies within epsilon of the first one
func Collapsed(points []Point, epsilon float64) bool {
	if len(points) == 0 {
		return true
	}
	for _, p := range points[1:] {
		if p.Distance(points[0]) > epsilon {
			return false
		}
	}
	return true
}

// SegmentsIntersect reports whether segment a1-a2 and segment b1-b2 cross or touch
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

// orientation computes the cross product of vectors OA and OB
func orientation(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// onSegment assumes p is collinear with a-b and checks that it lies between them
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
