// Package lasso samples a freehand drag into a path and decides when the
// path closes into a loop.
package lasso

import (
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Config holds the sampling and closing thresholds, in photo pixels
type Config struct {
	MinSpacingPx   float64 `mapstructure:"min_spacing_px"`
	MinClosePoints int     `mapstructure:"min_close_points"`
	CloseRadiusPx  float64 `mapstructure:"close_radius_px"`
	JitterFraction float64 `mapstructure:"jitter_fraction"`
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		MinSpacingPx:   0.5,
		MinClosePoints: 30,
		CloseRadiusPx:  8,
		JitterFraction: 0.05,
	}
}

// Event is the outcome of adding one sample
type Event int

const (
	Appended Event = iota
	Skipped
	Closed
	CloseRejected
	Ignored
)

func (e Event) String() string {
	switch e {
	case Skipped:
		return "skipped"
	case Closed:
		return "closed"
	case CloseRejected:
		return "close rejected"
	case Ignored:
		return "ignored"
	}
	return "appended"
}

// Lasso is an append-only sample buffer for one drag
type Lasso struct {
	cfg    Config
	points []geometry.Point
	closed bool
}

// New starts an empty lasso
func New(cfg Config) *Lasso {
	return &Lasso{cfg: cfg}
}

// Add appends a photo-space sample and attempts to close the loop
func (l *Lasso) Add(p geometry.Point) Event {
	if l.closed {
		return Ignored
	}
	if n := len(l.points); n > 0 && p.Distance(l.points[n-1]) < l.cfg.MinSpacingPx {
		return Skipped
	}
	l.points = append(l.points, p)

	if !ShouldClose(l.points, l.cfg) {
		return Appended
	}
	loop := append(append([]geometry.Point(nil), l.points...), l.points[0])
	if SelfIntersects(loop, l.cfg.JitterFraction) {
		return CloseRejected
	}
	l.points = loop
	l.closed = true
	return Closed
}

// Closed reports whether the path has closed into a loop
func (l *Lasso) Closed() bool {
	return l.closed
}

// Points returns a copy of the sampled path
func (l *Lasso) Points() []geometry.Point {
	return append([]geometry.Point(nil), l.points...)
}

// Len returns the number of samples
func (l *Lasso) Len() int {
	return len(l.points)
}

// Finish turns the samples into a freehand shape. A closed loop keeps its
// area; anything else becomes an open path. It reports false when the
// drag is too short to measure.
func (l *Lasso) Finish() (*measurement.Freehand, bool) {
	shape := &measurement.Freehand{Path: l.Points(), Closed: l.closed && len(l.points) >= 4}
	if shape.Closed && shape.Degenerate() {
		shape.Closed = false
		shape.Path = shape.Path[:len(shape.Path)-1]
	}
	if shape.Degenerate() {
		return nil, false
	}
	return shape, true
}

// ShouldClose reports whether the last sample of points is eligible to close
// the loop: enough samples and within the close radius of the first one
func ShouldClose(points []geometry.Point, cfg Config) bool {
	n := len(points)
	if n < cfg.MinClosePoints || n < 3 {
		return false
	}
	return points[n-1].Distance(points[0]) <= cfg.CloseRadiusPx
}

// SelfIntersects reports whether any two non-adjacent segments of path cross.
// The first and last jitterFraction of the segments are ignored.
func SelfIntersects(path []geometry.Point, jitterFraction float64) bool {
	segments := len(path) - 1
	if segments < 3 {
		return false
	}
	skip := int(float64(segments) * jitterFraction)
	first, last := skip, segments-skip
	closedLoop := path[0] == path[len(path)-1]

	for i := first; i < last; i++ {
		for j := i + 2; j < last; j++ {
			if closedLoop && i == 0 && j == segments-1 {
				continue
			}
			if geometry.SegmentsIntersect(path[i], path[i+1], path[j], path[j+1]) {
				return true
			}
		}
	}
	return false
}
