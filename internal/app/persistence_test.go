package app

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/units"
)

func populated(t *testing.T) *Session {
	t.Helper()
	s := newCalibrated(t, 2)
	place(s, pt(0, 0), pt(100, 0))

	s.SetMode(ModeRectangle)
	rect := place(s, pt(200, 200), pt(300, 260)).Measurement.ID
	if err := s.SetLabel(rect, "Door"); err != nil {
		t.Fatalf("SetLabel failed: %v", err)
	}
	if err := s.SetDepth(rect, &measurement.Depth{Value: 5, Unit: units.Centimeter}); err != nil {
		t.Fatalf("SetDepth failed: %v", err)
	}

	err := s.SetScaleOverlay(calibration.Ratio{ScreenDistance: 1, ScreenUnit: units.Centimeter, RealDistance: 2, RealUnit: units.Kilometer})
	if err != nil {
		t.Fatalf("SetScaleOverlay failed: %v", err)
	}
	s.SetMapMode(true)
	s.SetMode(ModeDistance)
	place(s, pt(0, 400), pt(300, 400))
	s.SetMapMode(false)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := populated(t)

	var buf bytes.Buffer
	if err := original.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(buf.String(), "Display") {
		t.Errorf("Display strings must not be persisted")
	}

	loaded := NewSession(DefaultConfig())
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want, got := original.Measurements(), loaded.Measurements()
	if len(got) != len(want) {
		t.Fatalf("Load failed: expected %d measurements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("ID %d failed: expected %q, got %q", i, want[i].ID, got[i].ID)
		}
		if got[i].Result.Display != want[i].Result.Display {
			t.Errorf("Display %d failed: expected %q, got %q", i, want[i].Result.Display, got[i].Result.Display)
		}
	}
	if got[2].ScaleSnapshot == nil || got[2].Result.Unit != units.Kilometer {
		t.Errorf("Map snapshot must survive a round trip")
	}

	wantCal, _ := original.Calibration()
	gotCal, ok := loaded.Calibration()
	if !ok || gotCal.PixelsPerUnit != wantCal.PixelsPerUnit || gotCal.Kind != wantCal.Kind {
		t.Errorf("Calibration failed: expected %v, got %v", wantCal, gotCal)
	}
	if _, ok := loaded.ScaleOverlay(); !ok {
		t.Errorf("Scale overlay must be restored")
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := populated(t).SaveFile(path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	s := NewSession(DefaultConfig())
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if n := len(s.Measurements()); n != 3 {
		t.Errorf("LoadFile failed: expected 3 measurements, got %d", n)
	}

	// loaded measurements can be undone newest first
	if action, _ := s.Undo(); action != UndoDelete {
		t.Errorf("Expected UndoDelete, got %v", action)
	}
}

func TestLoadSkipsInvalidMeasurements(t *testing.T) {
	input := `{
  "version": "1.0",
  "unitSystem": "metric",
  "calibration": {"pixelsPerUnit": 1, "unit": "mm", "kind": "coin", "params": {}},
  "measurements": [
    {"id": "m_a", "mode": "distance", "points": [{"x": 0, "y": 0}, {"x": 10, "y": 0}]},
    {"id": "m_b", "mode": "distance", "points": [{"x": 0, "y": 0}]},
    {"id": "m_c", "mode": "circle", "points": [{"x": 5, "y": 5}, {"x": 5, "y": 5}]},
    {"id": "m_d", "mode": "hexagon", "points": [{"x": 5, "y": 5}]},
    {"id": "m_e", "mode": "distance", "points": [{"x": 0, "y": 0}, {"x": 10, "y": 0}],
     "scaleSnapshot": {"screenDistance": 1, "screenUnit": "cm", "realDistance": 1, "realUnit": "km",
                       "screen": {"dpi": 0, "widthMM": 0, "widthPx": 0}}},
    {"id": "m_f", "mode": "rectangle", "points": [{"x": 0, "y": 0}, {"x": 10, "y": 1}, {"x": 10, "y": 10}, {"x": 0, "y": 10}]}
  ]
}`
	s := NewSession(DefaultConfig())
	if err := s.Load(strings.NewReader(input)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	all := s.Measurements()
	if len(all) != 1 || all[0].ID != "m_a" {
		t.Fatalf("Only the valid measurement must load, got %d", len(all))
	}
	if all[0].Result.Display != "10 mm" {
		t.Errorf("Loaded display failed: got %q", all[0].Result.Display)
	}
}

func TestRoundTripKeepsFlippedRectangle(t *testing.T) {
	s := newCalibrated(t, 1)
	s.SetMode(ModeRectangle)
	id := place(s, pt(100, 100), pt(200, 200)).Measurement.ID

	// drag the top-left corner past the bottom-right one
	s.BeginEdit(pt(100, 100))
	s.DragEdit(pt(300, 300))
	s.EndEdit()
	want := corners(t, s, id)

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := NewSession(DefaultConfig())
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := corners(t, loaded, id)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Corner %d failed: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"unknown version", `{"version": "9.0", "measurements": []}`, ErrUnsupportedVersion},
		{"invalid calibration", `{"version": "1.0", "calibration": {"pixelsPerUnit": 0, "unit": "mm", "kind": "coin"}}`, calibration.ErrInvalid},
		{"unknown system", `{"version": "1.0", "unitSystem": "nautical"}`, units.ErrUnknownUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSession(DefaultConfig()).Load(strings.NewReader(tt.input))
			if !errors.Is(err, tt.target) {
				t.Errorf("Load failed: expected %v, got %v", tt.target, err)
			}
		})
	}

	if err := NewSession(DefaultConfig()).Load(strings.NewReader("{")); err == nil {
		t.Errorf("Malformed JSON must fail")
	}
}

func TestLoadKeepsStateOnError(t *testing.T) {
	s := populated(t)
	if err := s.Load(strings.NewReader(`{"version": "0.1"}`)); err == nil {
		t.Fatalf("Load must fail")
	}
	if n := len(s.Measurements()); n != 3 {
		t.Errorf("Failed load must not touch the session, got %d measurements", n)
	}
}
