package units

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatLength(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		base   Unit
		system System
		want   string
	}{
		{"coin scenario", 48.5087, Millimeter, Metric, "48.5 mm"},
		{"whole millimeters", 12.1, Millimeter, Metric, "12 mm"},
		{"half millimeter", 12.3, Millimeter, Metric, "12.5 mm"},
		{"small above a meter", 1520, Millimeter, Metric, "1.52 m"},
		{"rounds up into meters", 999.8, Millimeter, Metric, "1.00 m"},
		{"rounds down below a meter", 999.7, Millimeter, Metric, "999.5 mm"},
		{"rounds up into feet", 25.4 * 11.998, Millimeter, Imperial, "1'"},
		{"small imperial inches", 25.4 * 3.5, Millimeter, Imperial, "3.50 in"},
		{"small imperial feet", 304.8*2 + 25.4*5, Millimeter, Imperial, "2'5\""},
		{"medium metric", 3.14159, Meter, Metric, "3.14 m"},
		{"medium imperial whole feet", 1.524, Meter, Imperial, "5'"},
		{"medium imperial under a foot", 0.05, Meter, Imperial, "0'2\""},
		{"inches carry into feet", 11.99 / 12, Foot, Imperial, "1'"},
		{"large metric", 12.346, Kilometer, Metric, "12.35 km"},
		{"large metric below a km", 0.25, Kilometer, Metric, "250.00 m"},
		{"large rounds up into km", 0.999996, Kilometer, Metric, "1.00 km"},
		{"feet shown in meters", 3000, Foot, Metric, "914.40 m"},
		{"large miles", 2.5, Mile, Imperial, "2.50 mi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLength(tt.value, tt.base, tt.system); got != tt.want {
				t.Errorf("FormatLength(%v %s, %s): got %q, want %q", tt.value, tt.base, tt.system, got, tt.want)
			}
		})
	}
}

func TestTierPreservation(t *testing.T) {
	// A meter-scale value must never collapse to mm or inches
	for _, v := range []float64{0.001, 0.05, 0.3, 1, 25, 4000} {
		for _, system := range []System{Metric, Imperial} {
			got := FormatLength(v, Meter, system)
			if strings.HasSuffix(got, " mm") || strings.HasSuffix(got, " in") {
				t.Errorf("value %v m (%s) left its tier: %q", v, system, got)
			}
			if system == Imperial && !strings.Contains(got, "'") {
				t.Errorf("value %v m imperial must render in feet: %q", v, got)
			}
		}
	}
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		base   Unit
		system System
		want   string
	}{
		{"rectangle scenario", 1250, Millimeter, Metric, "1250 mm²"},
		{"square centimeters", 12346, Millimeter, Metric, "123.5 cm²"},
		{"square meters with hectares", 3e6, Millimeter, Metric, "3.00 m² (0.0003 ha)"},
		{"square inches", 645.16 * 10, Millimeter, Imperial, "10.0 in²"},
		{"medium below one", 0.5, Meter, Metric, "0.50 m²"},
		{"thousands compact", 12345, Meter, Metric, "12.3K m² (1.23 ha)"},
		{"millions compact", 2.5e6, Meter, Metric, "2.5M m² (250.00 ha)"},
		{"square feet with acres", 43560, Foot, Imperial, "43.6K ft² (1.00 ac)"},
		{"square kilometers", 3, Kilometer, Metric, "3.00 km² (300.00 ha)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatArea(tt.value, tt.base, tt.system); got != tt.want {
				t.Errorf("FormatArea(%v %s², %s): got %q, want %q", tt.value, tt.base, tt.system, got, tt.want)
			}
		})
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		base   Unit
		system System
		want   string
	}{
		{"milliliters", 250000, Millimeter, Metric, "250 mL"},
		{"liters", 2.5e6, Millimeter, Metric, "2.50 L"},
		{"cubic meters", 2, Meter, Metric, "2.00 m³"},
		{"fluid ounces", mm3PerFlOz * 8, Millimeter, Imperial, "8.0 fl oz"},
		{"quarts", mm3PerQt * 2, Millimeter, Imperial, "2.00 qt"},
		{"gallons", mm3PerGal * 10, Millimeter, Imperial, "10.00 gal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatVolume(tt.value, tt.base, tt.system); got != tt.want {
				t.Errorf("FormatVolume: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDispatch(t *testing.T) {
	if got := Format(1250, Millimeter, Metric, Area); got != "1250 mm²" {
		t.Errorf("Format area: got %q", got)
	}
	if got := Format(48.52, Millimeter, Metric, Length); got != "48.5 mm" {
		t.Errorf("Format length: got %q", got)
	}
}

func TestFormatFixed(t *testing.T) {
	if got := FormatFixed(50, Millimeter, Metric); got != "50.00 mm" {
		t.Errorf("FormatFixed metric: got %q", got)
	}
	if got := FormatFixed(25.4, Millimeter, Imperial); got != "1.00 in" {
		t.Errorf("FormatFixed imperial: got %q", got)
	}
	if got := FormatFixed(3, Meter, Imperial); got != "9.84 ft" {
		t.Errorf("FormatFixed medium imperial: got %q", got)
	}
}

func TestParse(t *testing.T) {
	u, err := Parse(" Feet ")
	if err != nil || u != Foot {
		t.Errorf("Parse feet: got %v, %v", u, err)
	}

	if _, err := Parse("furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Parse unknown: expected ErrUnknownUnit, got %v", err)
	}

	s, err := ParseSystem("Imperial")
	if err != nil || s != Imperial || s.Toggle() != Metric {
		t.Errorf("ParseSystem failed: got %v, %v", s, err)
	}
}

func TestConvert(t *testing.T) {
	if got := Convert(1, Foot, Inch); got < 11.999999 || got > 12.000001 {
		t.Errorf("Convert ft->in: expected 12, got %v", got)
	}
	if Meter.Tier() != Medium || Mile.Tier() != Large || Centimeter.Tier() != Small {
		t.Errorf("Tier assignment failed")
	}
}
