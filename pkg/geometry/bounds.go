package geometry

import "github.com/paulmach/orb"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates the bounding box of the given points
func NewBoundingBox(points ...Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		mp = append(mp, toOrb(p))
	}
	b := mp.Bound()
	return BoundingBox{
		Min: NewPoint(b.Min[0], b.Min[1]),
		Max: NewPoint(b.Max[0], b.Max[1]),
	}
}

// Width returns the horizontal extent
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent
func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Point {
	return b.Min.Lerp(b.Max, 0.5)
}

// Contains reports whether p lies inside the box, edges included
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Corners returns the four corners in top-left, top-right, bottom-right,
// bottom-left order (y grows downward)
func (b BoundingBox) Corners() [4]Point {
	return [4]Point{
		NewPoint(b.Min.X, b.Min.Y),
		NewPoint(b.Max.X, b.Min.Y),
		NewPoint(b.Max.X, b.Max.Y),
		NewPoint(b.Min.X, b.Max.Y),
	}
}
