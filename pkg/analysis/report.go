// Package analysis summarizes a list of finalized measurements for reports
package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/units"
	"gonum.org/v1/gonum/floats"
)

// Pixels is the report key for uncalibrated values
const Pixels = "px"

// Entry is one measurement in a report. An empty Unit means the values are
// photo pixels.
type Entry struct {
	ID      string
	Mode    string
	Label   string
	Display string
	Length  float64
	Area    float64
	HasArea bool
	Unit    units.Unit
}

// Totals sums the linear and areal values measured in one unit
type Totals struct {
	Unit   string
	Length float64 // distances and open paths
	Area   float64
	Count  int
}

// Report contains a summary of a measurement list
type Report struct {
	Entries []Entry
	ByMode  map[string]int
	Totals  []Totals // sorted by unit
}

// Analyze builds the report for entries
func Analyze(entries []Entry) *Report {
	r := &Report{
		Entries: append([]Entry(nil), entries...),
		ByMode:  make(map[string]int),
	}

	lengths := make(map[string][]float64)
	areas := make(map[string][]float64)
	counts := make(map[string]int)
	for _, e := range entries {
		r.ByMode[e.Mode]++
		key := unitKey(e)
		counts[key]++
		if linear(e) {
			lengths[key] = append(lengths[key], e.Length)
		}
		if e.HasArea {
			areas[key] = append(areas[key], e.Area)
		}
	}

	for key, n := range counts {
		r.Totals = append(r.Totals, Totals{
			Unit:   key,
			Length: floats.Sum(lengths[key]),
			Area:   floats.Sum(areas[key]),
			Count:  n,
		})
	}
	sort.Slice(r.Totals, func(i, j int) bool {
		return r.Totals[i].Unit < r.Totals[j].Unit
	})
	return r
}

// FindByMode returns the entries of one mode in list order
func FindByMode(r *Report, mode string) []Entry {
	var entries []Entry
	for _, e := range r.Entries {
		if e.Mode == mode {
			entries = append(entries, e)
		}
	}
	return entries
}

// FindLongest returns the count calibrated entries with the greatest
// physical length, longest first
func FindLongest(r *Report, count int) []Entry {
	var entries []Entry
	for _, e := range r.Entries {
		if e.Unit.Valid() {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return units.ToMillimeters(entries[i].Length, entries[i].Unit) >
			units.ToMillimeters(entries[j].Length, entries[j].Unit)
	})

	if count > len(entries) {
		count = len(entries)
	}
	return entries[:count]
}

// FormatTotals renders one totals row in the given system
func FormatTotals(t Totals, system units.System) string {
	if t.Unit == Pixels {
		return fmt.Sprintf("%d measured, length %.0f px, area %.0f px²", t.Count, t.Length, t.Area)
	}
	u := units.Unit(t.Unit)
	return fmt.Sprintf("%d measured, length %s, area %s", t.Count,
		units.FormatLength(t.Length, u, system), units.FormatArea(t.Area, u, system))
}

// FormatPoint formats a photo-space point
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

func unitKey(e Entry) string {
	if e.Unit.Valid() {
		return string(e.Unit)
	}
	return Pixels
}

func linear(e Entry) bool {
	return e.Mode == "distance" || (e.Mode == "freehand" && !e.HasArea)
}
