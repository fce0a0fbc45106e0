package lasso

import (
	"math"
	"testing"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

func circleSamples(n int, radius float64) []geometry.Point {
	points := make([]geometry.Point, 0, n+1)
	for i := 0; i < n; i++ {
		t := float64(i) * 2 * math.Pi / float64(n)
		points = append(points, geometry.NewPoint(200+radius*math.Cos(t), 200+radius*math.Sin(t)))
	}
	// one more sample just short of the start
	return append(points, geometry.NewPoint(200+radius*math.Cos(-0.04), 200+radius*math.Sin(-0.04)))
}

func figureEight(t float64) geometry.Point {
	return geometry.NewPoint(200+100*math.Cos(t), 200+50*math.Sin(2*t))
}

func TestLassoCloses(t *testing.T) {
	l := New(DefaultConfig())
	samples := circleSamples(40, 100)

	var last Event
	for _, p := range samples {
		last = l.Add(p)
	}
	if last != Closed || !l.Closed() {
		t.Fatalf("Lasso close failed: last event %v", last)
	}

	path := l.Points()
	if path[0] != path[len(path)-1] {
		t.Errorf("Closed path must repeat its first point")
	}
	if e := l.Add(geometry.NewPoint(0, 0)); e != Ignored {
		t.Errorf("Samples after closing must be ignored, got %v", e)
	}

	shape, ok := l.Finish()
	if !ok || !shape.Closed {
		t.Fatalf("Finish failed: ok=%v", ok)
	}
	area := geometry.ShoelaceArea(shape.Path)
	if math.Abs(area-math.Pi*100*100)/(math.Pi*100*100) > 0.01 {
		t.Errorf("Area failed: expected about %v, got %v", math.Pi*100*100, area)
	}
}

func TestLassoNeedsEnoughPoints(t *testing.T) {
	l := New(DefaultConfig())
	for _, p := range circleSamples(12, 20) {
		if e := l.Add(p); e == Closed {
			t.Fatalf("A loop of 13 samples must not close")
		}
	}
	shape, ok := l.Finish()
	if !ok || shape.Closed {
		t.Errorf("Short loop must finish as an open path")
	}
}

func TestLassoRejectsSelfIntersectingClosure(t *testing.T) {
	l := New(DefaultConfig())
	const phase = 0.3
	rejected := false
	for i := 0; i < 60; i++ {
		if e := l.Add(figureEight(phase + float64(i)*2*math.Pi/60)); e == Closed {
			t.Fatalf("Figure eight closed at sample %d", i)
		}
	}
	start := figureEight(phase)
	end := figureEight(phase - 0.03)
	if end.Distance(start) > DefaultConfig().CloseRadiusPx {
		t.Fatalf("Test setup: final sample must be inside the close radius")
	}
	if e := l.Add(end); e == CloseRejected {
		rejected = true
	}

	if !rejected || l.Closed() {
		t.Errorf("Self-intersecting closure must be rejected")
	}
	shape, ok := l.Finish()
	if !ok || shape.Closed {
		t.Errorf("Rejected closure must finish as an open path")
	}
}

func TestLassoSkipsDenseSamples(t *testing.T) {
	l := New(DefaultConfig())
	l.Add(geometry.NewPoint(0, 0))
	if e := l.Add(geometry.NewPoint(0.2, 0.2)); e != Skipped {
		t.Errorf("Dense sample must be skipped, got %v", e)
	}
	if l.Len() != 1 {
		t.Errorf("Len failed: expected 1, got %d", l.Len())
	}
}

func TestLassoTooShort(t *testing.T) {
	l := New(DefaultConfig())
	l.Add(geometry.NewPoint(5, 5))
	if _, ok := l.Finish(); ok {
		t.Errorf("A single sample must not produce a shape")
	}
}

func TestSelfIntersects(t *testing.T) {
	bowtie := []geometry.Point{
		geometry.NewPoint(0, 0), geometry.NewPoint(10, 10), geometry.NewPoint(10, 0),
		geometry.NewPoint(0, 10), geometry.NewPoint(0, 0),
	}
	square := []geometry.Point{
		geometry.NewPoint(0, 0), geometry.NewPoint(10, 0), geometry.NewPoint(10, 10),
		geometry.NewPoint(0, 10), geometry.NewPoint(0, 0),
	}

	if !SelfIntersects(bowtie, 0) {
		t.Errorf("Bowtie must self-intersect")
	}
	if SelfIntersects(square, 0) {
		t.Errorf("Square must not self-intersect")
	}
	// ignoring the outer quarter leaves no pair to test
	if SelfIntersects(bowtie, 0.25) {
		t.Errorf("Crossings inside the ignored fraction must be tolerated")
	}
}

func TestShouldClose(t *testing.T) {
	cfg := DefaultConfig()
	points := make([]geometry.Point, 29)
	for i := range points {
		points[i] = geometry.NewPoint(float64(i), 50)
	}
	points[len(points)-1] = geometry.NewPoint(3, 50)
	if ShouldClose(points, cfg) {
		t.Errorf("29 samples must not be eligible")
	}
	points = append(points, geometry.NewPoint(5, 52))
	if !ShouldClose(points, cfg) {
		t.Errorf("30 samples ending near the start must be eligible")
	}
}
