package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	mm2PerIn2 = 25.4 * 25.4
	mm2PerFt2 = 304.8 * 304.8
	mm2PerMi2 = 1609344.0 * 1609344.0
	ft2PerAc  = 43560.0
	m2PerHa   = 10000.0

	mm3PerML   = 1000.0
	mm3PerFlOz = 29573.5295625
	mm3PerQt   = 946352.946
	mm3PerGal  = 3785411.784
)

// Format renders a magnitude measured in base as a display string.
// For Area the value is in base², for Volume in base³.
func Format(value float64, base Unit, system System, kind Kind) string {
	switch kind {
	case Area:
		return FormatArea(value, base, system)
	case Volume:
		return FormatVolume(value, base, system)
	}
	return FormatLength(value, base, system)
}

// FormatLength renders a length, bucketed within the tier of base
func FormatLength(value float64, base Unit, system System) string {
	mm := ToMillimeters(value, base)

	switch base.Tier() {
	case Large:
		if system == Imperial {
			if mi := mm / millimetersPer[Mile]; mi >= 1 {
				return fmt.Sprintf("%.2f mi", mi)
			}
			return feetInches(mm)
		}
		// tiers are chosen on the rounded value so 999.996 m reads 1.00 km
		if m := mm / millimetersPer[Meter]; round2(m) < 1000 {
			return fmt.Sprintf("%.2f m", m)
		}
		return fmt.Sprintf("%.2f km", mm/millimetersPer[Kilometer])
	case Medium:
		if system == Imperial {
			return feetInches(mm)
		}
		return fmt.Sprintf("%.2f m", mm/millimetersPer[Meter])
	}

	if system == Imperial {
		if in := mm / millimetersPer[Inch]; round2(in) < 12 {
			return fmt.Sprintf("%.2f in", in)
		}
		return feetInches(mm)
	}
	if math.Round(mm*2)/2 < 1000 {
		return halfMillimeters(mm)
	}
	return fmt.Sprintf("%.2f m", mm/millimetersPer[Meter])
}

// FormatFixed renders a length with two decimals in the tier unit
func FormatFixed(value float64, base Unit, system System) string {
	target := TierUnit(base, system)
	return fmt.Sprintf("%.2f %s", Convert(value, base, target), target)
}

// FormatArea renders an area given in base²
func FormatArea(value float64, base Unit, system System) string {
	f := factor(base)
	mm2 := value * f * f

	switch base.Tier() {
	case Large:
		if system == Imperial {
			if mi2 := mm2 / mm2PerMi2; mi2 >= 1 {
				return fmt.Sprintf("%s mi² (%s ac)", compact(mi2), parenthetical(mi2*640))
			}
			return squareFeet(mm2 / mm2PerFt2)
		}
		if km2 := mm2 / 1e12; km2 >= 1 {
			return fmt.Sprintf("%s km² (%s ha)", compact(km2), parenthetical(km2*100))
		}
		return squareMeters(mm2 / 1e6)
	case Medium:
		if system == Imperial {
			return squareFeet(mm2 / mm2PerFt2)
		}
		return squareMeters(mm2 / 1e6)
	}

	if system == Imperial {
		if in2 := mm2 / mm2PerIn2; in2 < 144 {
			return fmt.Sprintf("%.1f in²", in2)
		}
		return squareFeet(mm2 / mm2PerFt2)
	}
	switch {
	case mm2 < 1e4:
		return fmt.Sprintf("%.0f mm²", mm2)
	case mm2 < 1e6:
		return fmt.Sprintf("%.1f cm²", mm2/100)
	}
	return squareMeters(mm2 / 1e6)
}

// FormatVolume renders a volume given in base³
func FormatVolume(value float64, base Unit, system System) string {
	f := factor(base)
	mm3 := value * f * f * f

	if system == Imperial {
		switch {
		case mm3/mm3PerFlOz < 32:
			return fmt.Sprintf("%.1f fl oz", mm3/mm3PerFlOz)
		case mm3/mm3PerQt < 4:
			return fmt.Sprintf("%.2f qt", mm3/mm3PerQt)
		}
		return fmt.Sprintf("%.2f gal", mm3/mm3PerGal)
	}

	ml := mm3 / mm3PerML
	switch {
	case ml < 1000:
		return fmt.Sprintf("%.0f mL", ml)
	case ml < 1e6:
		return fmt.Sprintf("%.2f L", ml/1000)
	}
	return fmt.Sprintf("%.2f m³", mm3/1e9)
}

// halfMillimeters rounds to the nearest 0.5 mm and drops a trailing ".0"
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func halfMillimeters(mm float64) string {
	rounded := math.Round(mm*2) / 2
	s := strconv.FormatFloat(rounded, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + " mm"
}

// feetInches renders F'I" with whole feet and rounded inches.
// Zero inches are omitted.
func feetInches(mm float64) string {
	totalInches := mm / millimetersPer[Inch]
	feet := math.Floor(totalInches / 12)
	inches := math.Round(totalInches - feet*12)
	if inches >= 12 {
		feet++
		inches = 0
	}
	if inches == 0 {
		return fmt.Sprintf("%.0f'", feet)
	}
	return fmt.Sprintf("%.0f'%.0f\"", feet, inches)
}

func squareMeters(m2 float64) string {
	if m2 < 1 {
		return fmt.Sprintf("%s m²", compact(m2))
	}
	return fmt.Sprintf("%s m² (%s ha)", compact(m2), parenthetical(m2/m2PerHa))
}

func squareFeet(ft2 float64) string {
	if ft2 < 1 {
		return fmt.Sprintf("%s ft²", compact(ft2))
	}
	return fmt.Sprintf("%s ft² (%s ac)", compact(ft2), parenthetical(ft2/ft2PerAc))
}

// compact shortens large magnitudes with K/M suffixes
func compact(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	return fmt.Sprintf("%.2f", v)
}

// parenthetical keeps tiny hectare/acre values readable
func parenthetical(v float64) string {
	if v < 0.01 {
		return fmt.Sprintf("%.4f", v)
	}
	return compact(v)
}
