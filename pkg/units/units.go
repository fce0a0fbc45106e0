// Package units converts physical magnitudes between metric and imperial
// units and renders them as display strings.
//
// Every unit belongs to a scale tier (small, medium or large). Formatting
// keeps a value inside the tier of the unit it was measured in, so toggling
// the unit system moves a meter-scale value to feet, never down to inches.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit is returned when a unit or system name cannot be parsed
var ErrUnknownUnit = errors.New("unknown unit")

// Unit is a base length unit
type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Kilometer  Unit = "km"
	Inch       Unit = "in"
	Foot       Unit = "ft"
	Mile       Unit = "mi"
)

// System is the unit system preference used for display
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Tier is the magnitude bracket a unit belongs to
type Tier int

const (
	Small Tier = iota
	Medium
	Large
)

// Kind selects what a formatted magnitude represents
type Kind int

const (
	Length Kind = iota
	Area
	Volume
)

var millimetersPer = map[Unit]float64{
	Millimeter: 1,
	Centimeter: 10,
	Meter:      1000,
	Kilometer:  1e6,
	Inch:       25.4,
	Foot:       304.8,
	Mile:       1609344,
}

var aliases = map[string]Unit{
	"mm": Millimeter, "millimeter": Millimeter, "millimeters": Millimeter, "millimetre": Millimeter,
	"cm": Centimeter, "centimeter": Centimeter, "centimeters": Centimeter, "centimetre": Centimeter,
	"m": Meter, "meter": Meter, "meters": Meter, "metre": Meter, "metres": Meter,
	"km": Kilometer, "kilometer": Kilometer, "kilometers": Kilometer, "kilometre": Kilometer,
	"in": Inch, "inch": Inch, "inches": Inch, `"`: Inch,
	"ft": Foot, "foot": Foot, "feet": Foot, "'": Foot,
	"mi": Mile, "mile": Mile, "miles": Mile,
}

// Parse resolves a unit name or abbreviation
func Parse(name string) (Unit, error) {
	if u, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// ParseSystem resolves a unit system name
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "metric", "si":
		return Metric, nil
	case "imperial", "us":
		return Imperial, nil
	}
	return "", fmt.Errorf("%w: system %q", ErrUnknownUnit, name)
}

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	_, ok := millimetersPer[u]
	return ok
}

// Tier returns the scale tier of the unit
func (u Unit) Tier() Tier {
	switch u {
	case Meter, Foot:
		return Medium
	case Kilometer, Mile:
		return Large
	}
	return Small
}

// System returns the unit system u belongs to
func (u Unit) System() System {
	switch u {
	case Inch, Foot, Mile:
		return Imperial
	}
	return Metric
}

// Toggle returns the other unit system
func (s System) Toggle() System {
	if s == Imperial {
		return Metric
	}
	return Imperial
}

// ToMillimeters converts a length in unit u to millimeters
func ToMillimeters(value float64, u Unit) float64 {
	return value * factor(u)
}

// Convert converts a length between two units
func Convert(value float64, from, to Unit) float64 {
	return value * factor(from) / factor(to)
}

// TierUnit returns the unit used for fixed-precision output of a value
// measured in base when displayed in system
func TierUnit(base Unit, system System) Unit {
	switch base.Tier() {
	case Medium:
		if system == Imperial {
			return Foot
		}
		return Meter
	case Large:
		if system == Imperial {
			return Mile
		}
		return Kilometer
	}
	if system == Imperial {
		return Inch
	}
	return Millimeter
}

func factor(u Unit) float64 {
	f, ok := millimetersPer[u]
	if !ok {
		panic(fmt.Sprintf("units: unknown unit %q", u))
	}
	return f
}
