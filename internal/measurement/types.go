package measurement

import (
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Mode selects the kind of shape a placement sequence builds
type Mode string

const (
	ModeDistance  Mode = "distance"
	ModeAngle     Mode = "angle"
	ModeCircle    Mode = "circle"
	ModeRectangle Mode = "rectangle"
	ModeFreehand  Mode = "freehand"
	ModePolygon   Mode = "polygon"
)

// Arity returns the number of placed points that finalizes a shape.
// Freehand and polygon shapes are not built from placed points and return 0.
func (m Mode) Arity() int {
	switch m {
	case ModeDistance, ModeCircle, ModeRectangle:
		return 2
	case ModeAngle:
		return 3
	}
	return 0
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeDistance, ModeAngle, ModeCircle, ModeRectangle, ModeFreehand, ModePolygon:
		return true
	}
	return false
}

// Shape is the mode-specific geometry of a measurement, in photo space
type Shape interface {
	Mode() Mode
	Points() []geometry.Point
	// MovePoint updates the point at index with the mode's coupling rules
	MovePoint(index int, to geometry.Point)
	// Degenerate reports whether the shape has no measurable extent
	Degenerate() bool
	Clone() Shape
}

// Body is implemented by shapes that can be dragged as a whole
type Body interface {
	Translate(delta geometry.Point)
}

// Distance is a straight segment
type Distance struct {
	Start geometry.Point
	End   geometry.Point
}

func (d *Distance) Mode() Mode               { return ModeDistance }
func (d *Distance) Points() []geometry.Point { return []geometry.Point{d.Start, d.End} }
func (d *Distance) Clone() Shape             { c := *d; return &c }
func (d *Distance) Degenerate() bool         { return d.Start == d.End }

func (d *Distance) MovePoint(index int, to geometry.Point) {
	switch index {
	case 0:
		d.Start = to
	case 1:
		d.End = to
	}
}

// PixelLength returns the segment length in photo pixels
func (d *Distance) PixelLength() float64 {
	return d.Start.Distance(d.End)
}

// Angle is a three-point angle. With Azimuth set, Vertex is the north
// reference and the bearing is measured at Start from Vertex to End.
type Angle struct {
	Start   geometry.Point
	Vertex  geometry.Point
	End     geometry.Point
	Azimuth bool
}

func (a *Angle) Mode() Mode               { return ModeAngle }
func (a *Angle) Points() []geometry.Point { return []geometry.Point{a.Start, a.Vertex, a.End} }
func (a *Angle) Clone() Shape             { c := *a; return &c }

func (a *Angle) Degenerate() bool {
	if a.Azimuth {
		return a.Start == a.Vertex || a.Start == a.End
	}
	return a.Vertex == a.Start || a.Vertex == a.End
}

func (a *Angle) MovePoint(index int, to geometry.Point) {
	switch index {
	case 0:
		a.Start = to
	case 1:
		a.Vertex = to
	case 2:
		a.End = to
	}
}

// Circle is stored as center and one point on the rim
type Circle struct {
	Center geometry.Point
	Edge   geometry.Point
}

func (c *Circle) Mode() Mode               { return ModeCircle }
func (c *Circle) Points() []geometry.Point { return []geometry.Point{c.Center, c.Edge} }
func (c *Circle) Clone() Shape             { cp := *c; return &cp }
func (c *Circle) Degenerate() bool         { return c.Center == c.Edge }

// MovePoint translates the whole circle when the center moves and
// resizes it when the edge moves
func (c *Circle) MovePoint(index int, to geometry.Point) {
	switch index {
	case 0:
		c.Translate(to.Sub(c.Center))
	case 1:
		c.Edge = to
	}
}

func (c *Circle) Translate(delta geometry.Point) {
	c.Center = c.Center.Add(delta)
	c.Edge = c.Edge.Add(delta)
}

// PixelRadius returns the radius in photo pixels
func (c *Circle) PixelRadius() float64 {
	return c.Center.Distance(c.Edge)
}

// Rectangle is an axis-aligned rectangle with corners TL, TR, BR, BL
type Rectangle struct {
	Corners [4]geometry.Point
}

// NewRectangle expands two opposite corners into four explicit corners
func NewRectangle(a, b geometry.Point) *Rectangle {
	return &Rectangle{Corners: geometry.NewBoundingBox(a, b).Corners()}
}

func (r *Rectangle) Mode() Mode               { return ModeRectangle }
func (r *Rectangle) Points() []geometry.Point { return r.Corners[:] }
func (r *Rectangle) Clone() Shape             { c := *r; return &c }

func (r *Rectangle) Degenerate() bool {
	return r.PixelWidth() == 0 || r.PixelHeight() == 0
}

// MovePoint moves one corner and the matching coordinate of both neighbours.
// TL/TR and BR/BL share Y, TL/BL and TR/BR share X.
func (r *Rectangle) MovePoint(index int, to geometry.Point) {
	if index < 0 || index > 3 {
		return
	}
	sharesY := [4]int{1, 0, 3, 2}
	sharesX := [4]int{3, 2, 1, 0}
	r.Corners[index] = to
	r.Corners[sharesY[index]].Y = to.Y
	r.Corners[sharesX[index]].X = to.X
}

func (r *Rectangle) Translate(delta geometry.Point) {
	for i := range r.Corners {
		r.Corners[i] = r.Corners[i].Add(delta)
	}
}

func (r *Rectangle) bounds() geometry.BoundingBox {
	return geometry.NewBoundingBox(r.Corners[:]...)
}

// PixelWidth returns the width in photo pixels
func (r *Rectangle) PixelWidth() float64 { return r.bounds().Width() }

// PixelHeight returns the height in photo pixels
func (r *Rectangle) PixelHeight() float64 { return r.bounds().Height() }

// DefaultFalloff moves the first and second neighbours of a dragged
// freehand point by these fractions of its displacement
var DefaultFalloff = []float64{0.67, 0.33}

// Freehand is a sampled path. A closed path repeats its first point at the end.
type Freehand struct {
	Path   []geometry.Point
	Closed bool
}

func (f *Freehand) Mode() Mode { return ModeFreehand }

func (f *Freehand) Points() []geometry.Point {
	return append([]geometry.Point(nil), f.Path...)
}

func (f *Freehand) Clone() Shape {
	return &Freehand{Path: f.Points(), Closed: f.Closed}
}

func (f *Freehand) Degenerate() bool {
	if f.Closed {
		return len(f.Path) < 4 || geometry.ShoelaceArea(f.Path) == 0
	}
	return len(f.Path) < 2 || geometry.PathLength(f.Path) == 0
}

func (f *Freehand) MovePoint(index int, to geometry.Point) {
	f.MovePointWeighted(index, to, DefaultFalloff)
}

// MovePointWeighted moves a point and displaces up to len(weights)
// neighbours on each side. Neighbours of a closed path wrap around the loop
// and both copies of the start point stay identical.
func (f *Freehand) MovePointWeighted(index int, to geometry.Point, weights []float64) {
	n := len(f.Path)
	if index < 0 || index >= n {
		return
	}

	unique := n
	if f.Closed && n > 1 {
		unique = n - 1
		if index == n-1 {
			index = 0
		}
	}

	delta := to.Sub(f.Path[index])
	f.Path[index] = to

	for k, w := range weights {
		offset := k + 1
		if f.Closed && 2*offset >= unique {
			break
		}
		for _, j := range []int{index - offset, index + offset} {
			if f.Closed {
				j = ((j % unique) + unique) % unique
			} else if j < 0 || j >= n {
				continue
			}
			f.Path[j] = f.Path[j].Add(delta.Mul(w))
		}
	}

	if f.Closed && n > 1 {
		f.Path[n-1] = f.Path[0]
	}
}

// Polygon is a closed loop detected from connected distance edges
type Polygon struct {
	Vertices []geometry.Point
}

func (p *Polygon) Mode() Mode { return ModePolygon }

func (p *Polygon) Points() []geometry.Point {
	return append([]geometry.Point(nil), p.Vertices...)
}

func (p *Polygon) Clone() Shape {
	return &Polygon{Vertices: p.Points()}
}

func (p *Polygon) Degenerate() bool {
	return len(p.Vertices) < 3 || geometry.ShoelaceArea(p.Vertices) == 0
}

func (p *Polygon) MovePoint(index int, to geometry.Point) {
	if index >= 0 && index < len(p.Vertices) {
		p.Vertices[index] = to
	}
}
