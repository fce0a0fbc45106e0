package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a 2D point in photo-space or display-space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return fromVec(r2.Add(p.vec(), other.vec()))
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return fromVec(r2.Sub(p.vec(), other.vec()))
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return fromVec(r2.Scale(scalar, p.vec()))
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return r2.Dot(p.vec(), other.vec())
}

// Cross returns the z component of the cross product of two vectors.
// In a y-down coordinate system a positive value means other lies clockwise of p.
func (p Point) Cross(other Point) float64 {
	return r2.Cross(p.vec(), other.vec())
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return r2.Norm(p.vec())
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Angle returns the direction of the vector in radians, measured by atan2
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Lerp interpolates between p and other by t
func (p Point) Lerp(other Point, t float64) Point {
	return p.Add(other.Sub(p).Mul(t))
}

// Nearest returns the index of the candidate closest to p within radius,
// or -1 when none qualifies.
func (p Point) Nearest(candidates []Point, radius float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range candidates {
		d := p.Distance(c)
		if d <= radius && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// SegmentDistance returns the distance from p to the segment a-b
func (p Point) SegmentDistance(a, b Point) float64 {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/lengthSq))
	return p.Distance(a.Lerp(b, t))
}
