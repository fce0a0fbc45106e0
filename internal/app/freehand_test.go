package app

import (
	"math"
	"testing"

	"github.com/philipparndt/photomeasure/internal/lasso"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

func loop(n int, radius float64) []geometry.Point {
	points := make([]geometry.Point, 0, n+1)
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		points = append(points, pt(200+radius*math.Cos(a), 200+radius*math.Sin(a)))
	}
	return append(points, pt(200+radius*math.Cos(-0.04), 200+radius*math.Sin(-0.04)))
}

func TestFreehandClosedLoop(t *testing.T) {
	s := newCalibrated(t, 1)
	s.SetMode(ModeFreehand)

	samples := loop(40, 100)
	if p := s.BeginFreehand(samples[0]); p.Outcome != Placed {
		t.Fatalf("BeginFreehand failed: %v", p.Outcome)
	}
	var last lasso.Event
	for _, p := range samples[1:] {
		last = s.ExtendFreehand(p)
	}
	if last != lasso.Closed {
		t.Fatalf("Loop must close, last event %v", last)
	}

	p := s.EndFreehand()
	if p.Outcome != Finalized {
		t.Fatalf("EndFreehand failed: %v", p.Outcome)
	}
	f := p.Measurement.Shape.(*measurement.Freehand)
	if !f.Closed || !p.Measurement.Result.HasArea {
		t.Errorf("Closed loop must report an area")
	}
	expected := math.Pi * 100 * 100
	if math.Abs(p.Measurement.Result.Area-expected)/expected > 0.01 {
		t.Errorf("Area failed: expected about %v, got %v", expected, p.Measurement.Result.Area)
	}
}

func TestFreehandOpenPath(t *testing.T) {
	s := newCalibrated(t, 1)
	s.SetMode(ModeFreehand)

	s.BeginFreehand(pt(0, 0))
	for x := 10.0; x <= 100; x += 10 {
		s.ExtendFreehand(pt(x, 0))
	}
	p := s.EndFreehand()
	if p.Outcome != Finalized {
		t.Fatalf("EndFreehand failed: %v", p.Outcome)
	}
	if p.Measurement.Result.HasArea || p.Measurement.Result.Length != 100 {
		t.Errorf("Open path failed: length %v, area %v", p.Measurement.Result.Length, p.Measurement.Result.HasArea)
	}
}

func TestFreehandGuards(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.SetMode(ModeFreehand)

	if p := s.BeginFreehand(pt(0, 0)); p.Outcome != Blocked {
		t.Errorf("Freehand needs a calibration, got %v", p.Outcome)
	}
	if p := s.PlacePoint(pt(0, 0)); p.Outcome != Ignored {
		t.Errorf("Taps are ignored in freehand mode, got %v", p.Outcome)
	}
	if e := s.ExtendFreehand(pt(1, 1)); e != lasso.Ignored {
		t.Errorf("Extend without a drag must be ignored, got %v", e)
	}
	if p := s.EndFreehand(); p.Outcome != Ignored {
		t.Errorf("End without a drag must be ignored, got %v", p.Outcome)
	}
}

func TestFreehandUndoDiscardsDrag(t *testing.T) {
	s := newCalibrated(t, 1)
	s.SetMode(ModeFreehand)
	s.BeginFreehand(pt(0, 0))
	s.ExtendFreehand(pt(50, 0))

	if action, _ := s.Undo(); action != UndoPoint {
		t.Errorf("Expected UndoPoint, got %v", action)
	}
	if p := s.EndFreehand(); p.Outcome != Ignored {
		t.Errorf("Undone drag must not finalize, got %v", p.Outcome)
	}
}
