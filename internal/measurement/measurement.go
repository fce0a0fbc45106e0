// Package measurement holds the measurement entity, its per-mode shapes and
// the finalization math that derives physical values from photo geometry.
package measurement

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/units"
)

// Depth is an optional user-entered depth used to derive a volume
type Depth struct {
	Value float64    `json:"value"`
	Unit  units.Unit `json:"unit"`
}

// Result holds the values derived from a shape. It is never persisted.
type Result struct {
	Unit    units.Unit
	Length  float64 // segment, diameter, open path or perimeter
	Width   float64
	Height  float64
	Area    float64
	HasArea bool
	Degrees float64
	Volume  float64
	Display string
}

// Measurement is one finalized annotation
type Measurement struct {
	ID              string
	Shape           Shape
	CalibrationKind calibration.Kind
	ScaleSnapshot   *calibration.ScaleOverlay
	Depth           *Depth
	Label           string
	Result          Result
}

// Context carries everything a recompute depends on
type Context struct {
	Converter   calibration.Converter // nil when uncalibrated
	System      units.System
	Declination float64
}

// NewID returns a fresh measurement id
func NewID() string {
	return "m_" + uuid.NewString()
}

// New builds a measurement for shape and derives its values. A non-nil
// snapshot freezes the map scale the measurement is interpreted with.
func New(shape Shape, ctx Context, snapshot *calibration.ScaleOverlay) *Measurement {
	m := &Measurement{ID: NewID(), Shape: shape, ScaleSnapshot: snapshot}
	if c, ok := ctx.Converter.(calibration.Calibration); ok {
		m.CalibrationKind = c.Kind
	}
	m.Recompute(ctx)
	return m
}

// Mode returns the mode of the measurement's shape
func (m *Measurement) Mode() Mode {
	return m.Shape.Mode()
}

// Clone returns a deep copy
func (m *Measurement) Clone() *Measurement {
	c := *m
	c.Shape = m.Shape.Clone()
	if m.ScaleSnapshot != nil {
		c.ScaleSnapshot = m.ScaleSnapshot.Snapshot()
	}
	if m.Depth != nil {
		d := *m.Depth
		c.Depth = &d
	}
	return &c
}

// converter prefers the frozen map scale over the active calibration
func (m *Measurement) converter(ctx Context) calibration.Converter {
	if m.ScaleSnapshot != nil {
		return *m.ScaleSnapshot
	}
	return ctx.Converter
}

// Recompute derives every value and the display string from the shape
func (m *Measurement) Recompute(ctx Context) {
	if m.ScaleSnapshot == nil {
		// follows the active calibration; map measurements keep their creation kind
		m.CalibrationKind = ""
		if c, ok := ctx.Converter.(calibration.Calibration); ok {
			m.CalibrationKind = c.Kind
		}
	}
	conv := m.converter(ctx)
	r := Result{}
	if conv != nil {
		r.Unit = conv.Unit()
	}

	length := func(px float64) float64 {
		if conv == nil {
			return px
		}
		return conv.Length(px)
	}
	area := func(px2 float64) float64 {
		if conv == nil {
			return px2
		}
		return conv.Area(px2)
	}

	switch s := m.Shape.(type) {
	case *Distance:
		r.Length = length(s.PixelLength())
	case *Angle:
		if s.Azimuth {
			r.Degrees = Azimuth(s.Start, s.Vertex, s.End, ctx.Declination)
		} else {
			r.Degrees = InteriorAngle(s.Start, s.Vertex, s.End)
		}
	case *Circle:
		radius := s.PixelRadius()
		r.Length = length(2 * radius)
		r.Area = area(math.Pi * radius * radius)
		r.HasArea = true
	case *Rectangle:
		r.Width = length(s.PixelWidth())
		r.Height = length(s.PixelHeight())
		r.Area = area(s.PixelWidth() * s.PixelHeight())
		r.HasArea = true
	case *Freehand:
		if s.Closed {
			r.Length = length(geometry.Perimeter(s.Path))
			r.Area = area(geometry.ShoelaceArea(s.Path))
			r.HasArea = true
		} else {
			r.Length = length(geometry.PathLength(s.Path))
		}
	case *Polygon:
		r.Length = length(geometry.Perimeter(s.Vertices))
		r.Area = area(geometry.ShoelaceArea(s.Vertices))
		r.HasArea = true
	}

	if m.Depth != nil && r.HasArea && conv != nil {
		r.Volume = r.Area * units.Convert(m.Depth.Value, m.Depth.Unit, r.Unit)
	}

	m.Result = r
	m.Result.Display = m.display(ctx.System, conv != nil)
}

func (m *Measurement) display(system units.System, calibrated bool) string {
	r := m.Result
	lengthText := func(v float64) string {
		if !calibrated {
			return fmt.Sprintf("%.0f px", v)
		}
		return units.FormatLength(v, r.Unit, system)
	}
	areaText := func(v float64) string {
		if !calibrated {
			return fmt.Sprintf("%.0f px²", v)
		}
		return units.FormatArea(v, r.Unit, system)
	}

	var text string
	switch s := m.Shape.(type) {
	case *Distance:
		text = lengthText(r.Length)
	case *Angle:
		if s.Azimuth {
			text = fmt.Sprintf("%.1f° %s", r.Degrees, Cardinal(r.Degrees))
		} else {
			text = fmt.Sprintf("%.1f°", r.Degrees)
		}
	case *Circle:
		text = "⌀ " + lengthText(r.Length)
	case *Rectangle:
		if calibrated {
			text = fmt.Sprintf("%s × %s (A: %s)",
				units.FormatFixed(r.Width, r.Unit, system),
				units.FormatFixed(r.Height, r.Unit, system),
				areaText(r.Area))
		} else {
			text = fmt.Sprintf("%s × %s (A: %s)", lengthText(r.Width), lengthText(r.Height), areaText(r.Area))
		}
	case *Freehand, *Polygon:
		if r.HasArea {
			text = fmt.Sprintf("P: %s · A: %s", lengthText(r.Length), areaText(r.Area))
		} else {
			text = lengthText(r.Length)
		}
	}

	if m.Depth != nil && r.HasArea && calibrated {
		text += " · V: " + units.FormatVolume(r.Volume, r.Unit, system)
	}
	if m.Label != "" {
		text = m.Label + ": " + text
	}
	return text
}
