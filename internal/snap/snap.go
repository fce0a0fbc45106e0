// Package snap adjusts a display-space cursor before it is placed or dragged.
//
// Two mechanisms run in priority order: magnetic snapping pulls the cursor
// onto an existing point, alignment snapping locks the cursor to the
// horizontal or vertical axis through a reference point. Both are disabled
// close to the reference point. All inputs are in display pixels.
package snap

import (
	"math"

	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Config holds the snapping thresholds
type Config struct {
	PlacementRadiusMM float64 `mapstructure:"placement_radius_mm"`
	DragRadiusMM      float64 `mapstructure:"drag_radius_mm"`
	FallbackRadiusPx  float64 `mapstructure:"fallback_radius_px"`
	MinDistancePx     float64 `mapstructure:"min_distance_px"`
	AlignEntryDeg     float64 `mapstructure:"align_entry_deg"`
	AlignExitDeg      float64 `mapstructure:"align_exit_deg"`
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		PlacementRadiusMM: 2,
		DragRadiusMM:      0.5,
		FallbackRadiusPx:  12,
		MinDistancePx:     20,
		AlignEntryDeg:     3,
		AlignExitDeg:      4,
	}
}

// Kind reports which mechanism moved the cursor
type Kind int

const (
	None Kind = iota
	Magnetic
	Aligned
)

func (k Kind) String() string {
	switch k {
	case Magnetic:
		return "magnetic"
	case Aligned:
		return "aligned"
	}
	return "none"
}

// Axis is the axis an aligned cursor is locked to
type Axis int

const (
	NoAxis Axis = iota
	Horizontal
	Vertical
)

// Request describes one snapping decision
type Request struct {
	Cursor     geometry.Point
	Reference  *geometry.Point  // first point of the current leg, if any
	Candidates []geometry.Point // existing points, committed and in progress
	Radius     float64          // magnetic radius
	Align      bool             // alignment applies to this placement
	// ForceVertical locks the vertical axis regardless of the cursor angle
	ForceVertical bool
}

// Result is the adjusted cursor
type Result struct {
	Point  geometry.Point
	Kind   Kind
	Axis   Axis
	Target int // index into Candidates for a magnetic snap, else -1
}

// Snapper evaluates snapping requests. It keeps the alignment lock between
// calls so the exit threshold can apply.
type Snapper struct {
	cfg    Config
	locked Axis
}

// New creates a snapper with the given thresholds
func New(cfg Config) *Snapper {
	return &Snapper{cfg: cfg}
}

// MagneticRadius converts a physical radius in millimeters to display
// pixels. Uncalibrated sessions use the fallback radius.
func (s *Snapper) MagneticRadius(mm, pixelsPerMM, viewScale float64) float64 {
	if pixelsPerMM <= 0 || viewScale <= 0 {
		return s.cfg.FallbackRadiusPx
	}
	return mm * pixelsPerMM * viewScale
}

// PlacementRadius returns the magnetic radius used while placing points
func (s *Snapper) PlacementRadius(pixelsPerMM, viewScale float64) float64 {
	return s.MagneticRadius(s.cfg.PlacementRadiusMM, pixelsPerMM, viewScale)
}

// DragRadius returns the magnetic radius used while dragging points
func (s *Snapper) DragRadius(pixelsPerMM, viewScale float64) float64 {
	return s.MagneticRadius(s.cfg.DragRadiusMM, pixelsPerMM, viewScale)
}

// Reset releases any alignment lock
func (s *Snapper) Reset() {
	s.locked = NoAxis
}

// Locked returns the current alignment lock
func (s *Snapper) Locked() Axis {
	return s.locked
}

// Snap applies magnetic then alignment snapping to the cursor
func (s *Snapper) Snap(req Request) Result {
	raw := Result{Point: req.Cursor, Target: -1}

	if req.Reference != nil && req.Cursor.Distance(*req.Reference) < s.cfg.MinDistancePx {
		s.locked = NoAxis
		return raw
	}

	if i := req.Cursor.Nearest(req.Candidates, req.Radius); i >= 0 {
		s.locked = NoAxis
		return Result{Point: req.Candidates[i], Kind: Magnetic, Target: i}
	}

	if req.Reference == nil || !(req.Align || req.ForceVertical) {
		s.locked = NoAxis
		return raw
	}

	ref := *req.Reference
	axis := Vertical
	if !req.ForceVertical {
		axis = s.align(req.Cursor.Sub(ref))
	}
	s.locked = axis

	switch axis {
	case Horizontal:
		return Result{Point: geometry.NewPoint(req.Cursor.X, ref.Y), Kind: Aligned, Axis: Horizontal, Target: -1}
	case Vertical:
		return Result{Point: geometry.NewPoint(ref.X, req.Cursor.Y), Kind: Aligned, Axis: Vertical, Target: -1}
	}
	return raw
}

// align picks the axis for direction d. A held lock survives until the
// deviation exceeds the exit threshold; a new lock needs the entry threshold.
func (s *Snapper) align(d geometry.Point) Axis {
	horizontal, vertical := deviation(d)

	switch s.locked {
	case Horizontal:
		if horizontal <= s.cfg.AlignExitDeg {
			return Horizontal
		}
	case Vertical:
		if vertical <= s.cfg.AlignExitDeg {
			return Vertical
		}
	}

	switch {
	case horizontal <= s.cfg.AlignEntryDeg:
		return Horizontal
	case vertical <= s.cfg.AlignEntryDeg:
		return Vertical
	}
	return NoAxis
}

// deviation returns the angular distance of d, in degrees, from the nearest
// horizontal (0°/180°) and vertical (90°/270°) direction
func deviation(d geometry.Point) (horizontal, vertical float64) {
	deg := math.Abs(d.Angle() * 180 / math.Pi) // [0, 180]
	horizontal = math.Min(deg, 180-deg)
	vertical = math.Abs(90 - deg)
	return horizontal, vertical
}
