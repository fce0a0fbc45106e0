package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

func TestViewportRoundTrip(t *testing.T) {
	viewports := []Viewport{
		Identity(),
		{Scale: 2.5, TranslateX: -120, TranslateY: 48},
		{Scale: 0.125, TranslateX: 3.75, TranslateY: -900},
	}
	points := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(123.456, -78.9),
		geometry.NewPoint(-1e6, 1e6),
	}

	for _, v := range viewports {
		for _, p := range points {
			back := v.ToDisplay(v.ToPhoto(p))
			if math.Abs(back.X-p.X) > 1e-9*math.Max(1, math.Abs(p.X)) ||
				math.Abs(back.Y-p.Y) > 1e-9*math.Max(1, math.Abs(p.Y)) {
				t.Errorf("Round trip failed for %v at %+v: got %v", p, v, back)
			}
		}
	}
}

func TestViewportToPhoto(t *testing.T) {
	v := Viewport{Scale: 2, TranslateX: 10, TranslateY: 20}
	result := v.ToPhoto(geometry.NewPoint(30, 60))

	expected := geometry.NewPoint(10, 20)
	if result != expected {
		t.Errorf("ToPhoto failed: expected %v, got %v", expected, result)
	}
}

func TestViewportIgnoresRotation(t *testing.T) {
	plain := Viewport{Scale: 2, TranslateX: 10}
	rotated := plain
	rotated.Rotation = 90

	p := geometry.NewPoint(5, 7)
	if plain.ToDisplay(p) != rotated.ToDisplay(p) {
		t.Errorf("Rotation must not affect the mapping")
	}
	if !rotated.Rotated() || plain.Rotated() {
		t.Errorf("Rotated flag failed")
	}
}

func TestFitPhoto(t *testing.T) {
	v := FitPhoto(4000, 3000, 400, 600)

	if math.Abs(v.Scale-0.1) > 1e-12 {
		t.Errorf("Scale failed: expected 0.1, got %v", v.Scale)
	}
	if v.TranslateX != 0 || math.Abs(v.TranslateY-150) > 1e-9 {
		t.Errorf("Translation failed: got (%v, %v)", v.TranslateX, v.TranslateY)
	}
}

func TestLengthConversion(t *testing.T) {
	v := Viewport{Scale: 4}
	if got := v.PhotoLength(20); got != 5 {
		t.Errorf("PhotoLength failed: expected 5, got %v", got)
	}
	if got := v.DisplayLength(5); got != 20 {
		t.Errorf("DisplayLength failed: expected 20, got %v", got)
	}
}
