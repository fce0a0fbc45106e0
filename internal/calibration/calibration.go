// Package calibration turns a reference measurement into a photo
// pixels-per-millimeter factor and converts pixel geometry to physical units.
package calibration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/units"
)

// ErrInvalid is returned when a calibration or scale cannot be constructed
var ErrInvalid = errors.New("invalid calibration")

// Kind identifies the procedure a calibration was constructed with
type Kind string

const (
	KindCoin      Kind = "coin"
	KindBlueprint Kind = "blueprint"
	KindVerbal    Kind = "verbal"
)

// Converter turns photo pixel magnitudes into physical magnitudes
type Converter interface {
	Length(pixels float64) float64
	Area(squarePixels float64) float64
	Unit() units.Unit
}

// Params records the inputs of the construction procedure
type Params struct {
	CoinName        string           `json:"coinName,omitempty"`
	CoinDiameter    float64          `json:"coinDiameter,omitempty"`
	CoinPixelRadius float64          `json:"coinPixelRadius,omitempty"`
	Pins            []geometry.Point `json:"pins,omitempty"`
	Distance        float64          `json:"distance,omitempty"`
	Verbal          *Ratio           `json:"verbal,omitempty"`
}

// Calibration is the active photo-to-physical conversion.
// PixelsPerUnit is always photo pixels per millimeter; BaseUnit is the
// unit used for display and fixes the scale tier.
type Calibration struct {
	PixelsPerUnit float64    `json:"pixelsPerUnit"`
	BaseUnit      units.Unit `json:"unit"`
	Kind          Kind       `json:"kind"`
	Params        Params     `json:"params"`
}

// Coin diameters in millimeters
var coins = map[string]float64{
	"quarter": 24.26,
	"penny":   19.05,
	"nickel":  21.21,
	"dime":    17.91,
	"euro":    23.25,
	"2euro":   25.75,
}

// CoinDiameter looks up a known coin diameter in millimeters
func CoinDiameter(name string) (float64, bool) {
	d, ok := coins[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// FromCoin calibrates from a circle placed over a coin of known diameter
func FromCoin(pixelRadius, diameter float64, unit units.Unit) (Calibration, error) {
	if !unit.Valid() {
		return Calibration{}, fmt.Errorf("%w: unit %q", ErrInvalid, unit)
	}
	if !positive(pixelRadius) || !positive(diameter) {
		return Calibration{}, fmt.Errorf("%w: coin radius %v px, diameter %v %s", ErrInvalid, pixelRadius, diameter, unit)
	}
	c := Calibration{
		PixelsPerUnit: 2 * pixelRadius / units.ToMillimeters(diameter, unit),
		BaseUnit:      units.Millimeter,
		Kind:          KindCoin,
		Params: Params{
			CoinDiameter:    units.ToMillimeters(diameter, unit),
			CoinPixelRadius: pixelRadius,
		},
	}
	return c, c.Validate()
}

// FromBlueprint calibrates from two pins a known real distance apart
func FromBlueprint(pin1, pin2 geometry.Point, distance float64, unit units.Unit) (Calibration, error) {
	if !unit.Valid() {
		return Calibration{}, fmt.Errorf("%w: unit %q", ErrInvalid, unit)
	}
	pixels := pin1.Distance(pin2)
	if !positive(pixels) || !positive(distance) {
		return Calibration{}, fmt.Errorf("%w: pins %v px apart, distance %v %s", ErrInvalid, pixels, distance, unit)
	}
	c := Calibration{
		PixelsPerUnit: pixels / units.ToMillimeters(distance, unit),
		BaseUnit:      unit,
		Kind:          KindBlueprint,
		Params: Params{
			Pins:     []geometry.Point{pin1, pin2},
			Distance: distance,
		},
	}
	return c, c.Validate()
}

// FromVerbal calibrates from a stated "X screen units = Y real units" scale.
// The screen distance is converted to pixels with the assumed device DPI, so
// the result is an approximation.
func FromVerbal(r Ratio, screen Screen) (Calibration, error) {
	if err := r.Validate(); err != nil {
		return Calibration{}, err
	}
	if !positive(screen.DPI) {
		return Calibration{}, fmt.Errorf("%w: screen dpi %v", ErrInvalid, screen.DPI)
	}
	screenPixels := units.Convert(r.ScreenDistance, r.ScreenUnit, units.Inch) * screen.DPI
	ratio := r
	c := Calibration{
		PixelsPerUnit: screenPixels / units.ToMillimeters(r.RealDistance, r.RealUnit),
		BaseUnit:      r.RealUnit,
		Kind:          KindVerbal,
		Params:        Params{Verbal: &ratio},
	}
	return c, c.Validate()
}

// Validate checks the invariants every calibration must hold
func (c Calibration) Validate() error {
	if !positive(c.PixelsPerUnit) {
		return fmt.Errorf("%w: pixels per unit %v", ErrInvalid, c.PixelsPerUnit)
	}
	if !c.BaseUnit.Valid() {
		return fmt.Errorf("%w: unit %q", ErrInvalid, c.BaseUnit)
	}
	switch c.Kind {
	case KindCoin, KindBlueprint, KindVerbal:
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalid, c.Kind)
	}
	return nil
}

// Length converts a pixel distance to the calibration unit
func (c Calibration) Length(pixels float64) float64 {
	return units.Convert(pixels/c.mustPixelsPerUnit(), units.Millimeter, c.BaseUnit)
}

// Area converts a pixel area to square calibration units
func (c Calibration) Area(squarePixels float64) float64 {
	perPixel := c.Length(1)
	return squarePixels * perPixel * perPixel
}

// Unit returns the base display unit
func (c Calibration) Unit() units.Unit {
	return c.BaseUnit
}

// Pixels converts a physical length in millimeters to photo pixels
func (c Calibration) Pixels(mm float64) float64 {
	return mm * c.mustPixelsPerUnit()
}

// String describes the calibration for logs and CLI output
func (c Calibration) String() string {
	switch c.Kind {
	case KindCoin:
		return fmt.Sprintf("coin %.2f mm: %.4f px/mm", c.Params.CoinDiameter, c.PixelsPerUnit)
	case KindBlueprint:
		return fmt.Sprintf("blueprint %g %s: %.4f px/mm", c.Params.Distance, c.BaseUnit, c.PixelsPerUnit)
	case KindVerbal:
		if r := c.Params.Verbal; r != nil {
			return fmt.Sprintf("verbal %s: %.4f px/mm", r, c.PixelsPerUnit)
		}
	}
	return fmt.Sprintf("%s: %.4f px/mm", c.Kind, c.PixelsPerUnit)
}

func (c Calibration) mustPixelsPerUnit() float64 {
	if !positive(c.PixelsPerUnit) {
		panic(fmt.Sprintf("calibration: pixels per unit must be positive, got %v", c.PixelsPerUnit))
	}
	return c.PixelsPerUnit
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
