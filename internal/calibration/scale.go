package calibration

import (
	"fmt"

	"github.com/philipparndt/photomeasure/pkg/units"
)

// Screen holds the fixed device assumptions used by verbal and map scales.
// Real device metrics are not queried.
type Screen struct {
	DPI     float64 `json:"dpi" mapstructure:"dpi"`
	WidthMM float64 `json:"widthMM" mapstructure:"width_mm"`
	WidthPx float64 `json:"widthPx" mapstructure:"width_px"`
}

// DefaultScreen returns the assumed phone-sized screen
func DefaultScreen() Screen {
	return Screen{DPI: 160, WidthMM: 70, WidthPx: 390}
}

// Validate checks that every screen metric is positive
func (s Screen) Validate() error {
	if !positive(s.DPI) || !positive(s.WidthMM) || !positive(s.WidthPx) {
		return fmt.Errorf("%w: screen %+v", ErrInvalid, s)
	}
	return nil
}

// Ratio is a stated scale "ScreenDistance ScreenUnit = RealDistance RealUnit"
type Ratio struct {
	ScreenDistance float64    `json:"screenDistance"`
	ScreenUnit     units.Unit `json:"screenUnit"`
	RealDistance   float64    `json:"realDistance"`
	RealUnit       units.Unit `json:"realUnit"`
}

// Validate checks the ratio's distances and unit sets.
// Screen distances are stated in cm, mm or in; real distances in km, mi, m or ft.
func (r Ratio) Validate() error {
	if !positive(r.ScreenDistance) || !positive(r.RealDistance) {
		return fmt.Errorf("%w: scale %s", ErrInvalid, r)
	}
	switch r.ScreenUnit {
	case units.Millimeter, units.Centimeter, units.Inch:
	default:
		return fmt.Errorf("%w: screen unit %q", ErrInvalid, r.ScreenUnit)
	}
	switch r.RealUnit {
	case units.Kilometer, units.Mile, units.Meter, units.Foot:
	default:
		return fmt.Errorf("%w: real unit %q", ErrInvalid, r.RealUnit)
	}
	return nil
}

func (r Ratio) String() string {
	return fmt.Sprintf("%g %s = %g %s", r.ScreenDistance, r.ScreenUnit, r.RealDistance, r.RealUnit)
}

// ScaleOverlay is the map-mode scale. It is independent of the active
// Calibration and maps photo pixels to physical screen size through the
// assumed screen width instead of the viewport zoom.
type ScaleOverlay struct {
	Ratio
	Screen Screen `json:"screen"`
}

// NewScaleOverlay validates and builds a map scale
func NewScaleOverlay(r Ratio, screen Screen) (ScaleOverlay, error) {
	if err := r.Validate(); err != nil {
		return ScaleOverlay{}, err
	}
	if err := screen.Validate(); err != nil {
		return ScaleOverlay{}, err
	}
	return ScaleOverlay{Ratio: r, Screen: screen}, nil
}

// realPerPixel returns real units per photo pixel
func (o ScaleOverlay) realPerPixel() float64 {
	if err := o.Screen.Validate(); err != nil {
		panic(fmt.Sprintf("calibration: %v", err))
	}
	screenMMPerPixel := o.Screen.WidthMM / o.Screen.WidthPx
	statedScreenMM := units.ToMillimeters(o.ScreenDistance, o.ScreenUnit)
	return screenMMPerPixel / statedScreenMM * o.RealDistance
}

// Length converts a pixel distance to RealUnit
func (o ScaleOverlay) Length(pixels float64) float64 {
	return pixels * o.realPerPixel()
}

// Area converts a pixel area to square RealUnit
func (o ScaleOverlay) Area(squarePixels float64) float64 {
	k := o.realPerPixel()
	return squarePixels * k * k
}

// Unit returns the real-world unit of the map scale
func (o ScaleOverlay) Unit() units.Unit {
	return o.RealUnit
}

// Snapshot returns a copy detached from the caller's overlay
func (o ScaleOverlay) Snapshot() *ScaleOverlay {
	c := o
	return &c
}
