package calibration

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/units"
)

func TestFromCoin(t *testing.T) {
	c, err := FromCoin(50, 24.26, units.Millimeter)
	if err != nil {
		t.Fatalf("FromCoin failed: %v", err)
	}

	if math.Abs(c.PixelsPerUnit-4.122) > 1e-3 {
		t.Errorf("PixelsPerUnit failed: expected ~4.122, got %v", c.PixelsPerUnit)
	}
	if length := c.Length(200); math.Abs(length-48.52) > 1e-9 {
		t.Errorf("Length failed: expected 48.52, got %v", length)
	}
	if c.Unit() != units.Millimeter || c.Kind != KindCoin {
		t.Errorf("Unexpected unit/kind: %v %v", c.Unit(), c.Kind)
	}
}

func TestFromCoinInches(t *testing.T) {
	c, err := FromCoin(25.4, 1, units.Inch)
	if err != nil {
		t.Fatalf("FromCoin failed: %v", err)
	}
	if math.Abs(c.PixelsPerUnit-2) > 1e-12 {
		t.Errorf("PixelsPerUnit failed: expected 2, got %v", c.PixelsPerUnit)
	}
}

func TestFromBlueprint(t *testing.T) {
	c, err := FromBlueprint(geometry.NewPoint(0, 0), geometry.NewPoint(300, 400), 2.5, units.Meter)
	if err != nil {
		t.Fatalf("FromBlueprint failed: %v", err)
	}

	// 500 px over 2500 mm
	if math.Abs(c.PixelsPerUnit-0.2) > 1e-12 {
		t.Errorf("PixelsPerUnit failed: expected 0.2, got %v", c.PixelsPerUnit)
	}
	if length := c.Length(1000); math.Abs(length-5) > 1e-12 {
		t.Errorf("Length failed: expected 5 m, got %v", length)
	}
	if math.Abs(c.Area(1000*1000)-25) > 1e-9 {
		t.Errorf("Area failed: expected 25 m², got %v", c.Area(1000*1000))
	}
}

func TestFromVerbal(t *testing.T) {
	r := Ratio{ScreenDistance: 1, ScreenUnit: units.Inch, RealDistance: 1, RealUnit: units.Kilometer}
	c, err := FromVerbal(r, DefaultScreen())
	if err != nil {
		t.Fatalf("FromVerbal failed: %v", err)
	}

	// 160 px per 1e6 mm
	if math.Abs(c.PixelsPerUnit-160/1e6) > 1e-15 {
		t.Errorf("PixelsPerUnit failed: got %v", c.PixelsPerUnit)
	}
	if length := c.Length(160); math.Abs(length-1) > 1e-12 {
		t.Errorf("Length failed: expected 1 km, got %v", length)
	}
	if c.Params.Verbal == nil || *c.Params.Verbal != r {
		t.Errorf("Verbal params not recorded")
	}
}

func TestInvalidCalibration(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"zero radius", func() error { _, err := FromCoin(0, 24.26, units.Millimeter); return err }},
		{"negative diameter", func() error { _, err := FromCoin(10, -1, units.Millimeter); return err }},
		{"coincident pins", func() error {
			_, err := FromBlueprint(geometry.NewPoint(5, 5), geometry.NewPoint(5, 5), 1, units.Meter)
			return err
		}},
		{"unknown unit", func() error {
			_, err := FromBlueprint(geometry.NewPoint(0, 0), geometry.NewPoint(5, 5), 1, units.Unit("yd"))
			return err
		}},
		{"verbal real unit", func() error {
			_, err := FromVerbal(Ratio{1, units.Centimeter, 1, units.Millimeter}, DefaultScreen())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestCalibrationMonotonicity(t *testing.T) {
	c, _ := FromCoin(50, 24.26, units.Millimeter)
	doubled := c
	doubled.PixelsPerUnit *= 2

	if math.Abs(doubled.Length(200)-c.Length(200)/2) > 1e-12 {
		t.Errorf("doubling pixels per unit must halve lengths")
	}
	if math.Abs(doubled.Area(5000)-c.Area(5000)/4) > 1e-12 {
		t.Errorf("doubling pixels per unit must quarter areas")
	}
}

func TestInvariantViolationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a zero pixels-per-unit factor")
		}
	}()
	Calibration{BaseUnit: units.Millimeter, Kind: KindCoin}.Length(10)
}

func TestCoinDiameter(t *testing.T) {
	if d, ok := CoinDiameter("Quarter"); !ok || d != 24.26 {
		t.Errorf("CoinDiameter quarter: got %v %v", d, ok)
	}
	if _, ok := CoinDiameter("doubloon"); ok {
		t.Errorf("CoinDiameter unknown coin must fail")
	}
}
