package app

import (
	"time"

	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/internal/snap"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Mode is the active placement mode of a session
type Mode string

const (
	ModeDistance           Mode = Mode(measurement.ModeDistance)
	ModeAngle              Mode = Mode(measurement.ModeAngle)
	ModeCircle             Mode = Mode(measurement.ModeCircle)
	ModeRectangle          Mode = Mode(measurement.ModeRectangle)
	ModeFreehand           Mode = Mode(measurement.ModeFreehand)
	ModeCalibrateCoin      Mode = "calibrate-coin"
	ModeCalibrateBlueprint Mode = "calibrate-blueprint"
)

// ParseMode resolves a mode name
func ParseMode(name string) (Mode, bool) {
	switch m := Mode(name); m {
	case ModeDistance, ModeAngle, ModeCircle, ModeRectangle, ModeFreehand,
		ModeCalibrateCoin, ModeCalibrateBlueprint:
		return m, true
	}
	return "", false
}

// calibrating reports whether the mode collects calibration points
func (m Mode) calibrating() bool {
	return m == ModeCalibrateCoin || m == ModeCalibrateBlueprint
}

// arity returns the number of points the mode collects
func (m Mode) arity() int {
	if m.calibrating() {
		return 2
	}
	return measurement.Mode(m).Arity()
}

// Outcome is the result of a placement
type Outcome int

const (
	Placed Outcome = iota
	Finalized
	Blocked
	Rejected
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case Finalized:
		return "finalized"
	case Blocked:
		return "blocked"
	case Rejected:
		return "rejected"
	}
	return "ignored"
}

// BlockReason explains a Blocked outcome
type BlockReason int

const (
	NotBlocked BlockReason = iota
	NoCalibration
	NoMapScale
)

func (r BlockReason) String() string {
	switch r {
	case NoCalibration:
		return "no calibration"
	case NoMapScale:
		return "no map scale"
	}
	return "not blocked"
}

// Placement reports what a placement did
type Placement struct {
	Outcome Outcome
	Reason  BlockReason
	Point   geometry.Point // placed point in photo space
	Snap    snap.Kind
	// Measurement is a copy of the finalized measurement
	Measurement *measurement.Measurement
	// Merged is the polygon that replaced the finalized distance edge
	Merged *measurement.Measurement
	// CalibrationReady is set when calibration points are complete
	CalibrationReady bool
	// Hint is set on the placement that raised the calibration hint
	Hint bool
}

// Cursor is a snapped preview position
type Cursor struct {
	Point   geometry.Point // photo space
	Display geometry.Point
	Snap    snap.Kind
	Axis    snap.Axis
}

// editGesture tracks one drag of an existing measurement
type editGesture struct {
	id     string
	index  int // grabbed point, or -1 for a body drag
	last   geometry.Point
	offset geometry.Point // grabbed point minus the cursor at grab time
	moved  bool
	noSnap bool
}

// tapState counts taps on one measurement
type tapState struct {
	id    string
	times []time.Time
}

// attempt is one new-measurement start recorded for the struggle detector
type attempt struct {
	mode Mode
	at   geometry.Point // display space
	when time.Time
}

type struggleState struct {
	attempts []attempt
	fired    bool
}
