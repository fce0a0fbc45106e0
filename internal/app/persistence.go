package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/photo"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/philipparndt/photomeasure/pkg/viewer"
)

// FormatVersion is the session file version written by Save
const FormatVersion = "1.0"

// ErrUnsupportedVersion is returned when loading a session file of an unknown version
var ErrUnsupportedVersion = errors.New("unsupported session file version")

// SessionData represents the JSON structure of a saved session.
// Display strings are not stored; they are recomputed on load.
type SessionData struct {
	Version      string                    `json:"version"`
	Photo        *photo.Info               `json:"photo,omitempty"`
	Viewport     viewer.Viewport           `json:"viewport"`
	Calibration  *calibration.Calibration  `json:"calibration,omitempty"`
	UnitSystem   units.System              `json:"unitSystem"`
	MapMode      bool                      `json:"mapMode,omitempty"`
	ScaleOverlay *calibration.ScaleOverlay `json:"scaleOverlay,omitempty"`
	Declination  float64                   `json:"declination,omitempty"`
	Measurements []MeasurementData         `json:"measurements"`
}

// MeasurementData represents a saved measurement in photo space
type MeasurementData struct {
	ID              string                    `json:"id"`
	Mode            measurement.Mode          `json:"mode"`
	Points          []geometry.Point          `json:"points"`
	Closed          bool                      `json:"closed,omitempty"`
	Azimuth         bool                      `json:"azimuth,omitempty"`
	Label           string                    `json:"label,omitempty"`
	Depth           *measurement.Depth        `json:"depth,omitempty"`
	CalibrationKind calibration.Kind          `json:"calibrationKind,omitempty"`
	ScaleSnapshot   *calibration.ScaleOverlay `json:"scaleSnapshot,omitempty"`
}

// Save writes the session as JSON
func (s *Session) Save(w io.Writer) error {
	s.mu.RLock()
	data := s.dataLocked()
	s.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// SaveFile writes the session to path
func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	Logger().Info("session saved", "path", path)
	return nil
}

func (s *Session) dataLocked() SessionData {
	data := SessionData{
		Version:      FormatVersion,
		Viewport:     s.viewport,
		UnitSystem:   s.system,
		MapMode:      s.mapMode,
		Declination:  s.declination,
		Measurements: make([]MeasurementData, 0, len(s.measurements)),
	}
	if s.photo.Path != "" || s.photo.Width > 0 {
		p := s.photo
		data.Photo = &p
	}
	if s.calibration != nil {
		c := *s.calibration
		data.Calibration = &c
	}
	if s.overlay != nil {
		data.ScaleOverlay = s.overlay.Snapshot()
	}

	for _, m := range s.measurements {
		md := MeasurementData{
			ID:              m.ID,
			Mode:            m.Mode(),
			Points:          m.Shape.Points(),
			Label:           m.Label,
			CalibrationKind: m.CalibrationKind,
		}
		switch shape := m.Shape.(type) {
		case *measurement.Freehand:
			md.Closed = shape.Closed
		case *measurement.Angle:
			md.Azimuth = shape.Azimuth
		}
		if m.Depth != nil {
			d := *m.Depth
			md.Depth = &d
		}
		if m.ScaleSnapshot != nil {
			md.ScaleSnapshot = m.ScaleSnapshot.Snapshot()
		}
		data.Measurements = append(data.Measurements, md)
	}
	return data
}

// Load replaces the session state with a saved session. Measurements that
// do not describe a valid shape are skipped.
func (s *Session) Load(r io.Reader) error {
	var data SessionData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to parse session: %w", err)
	}
	if data.Version != FormatVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, data.Version)
	}
	if data.Calibration != nil {
		if err := data.Calibration.Validate(); err != nil {
			return fmt.Errorf("invalid saved calibration: %w", err)
		}
	}
	if data.ScaleOverlay != nil {
		if _, err := calibration.NewScaleOverlay(data.ScaleOverlay.Ratio, data.ScaleOverlay.Screen); err != nil {
			return fmt.Errorf("invalid saved map scale: %w", err)
		}
	}
	system := units.Metric
	if data.UnitSystem != "" {
		parsed, err := units.ParseSystem(string(data.UnitSystem))
		if err != nil {
			return err
		}
		system = parsed
	}

	measurements := make([]*measurement.Measurement, 0, len(data.Measurements))
	for _, md := range data.Measurements {
		m, err := md.restore()
		if err != nil {
			Logger().Warn("skipping saved measurement", "id", md.ID, "error", err)
			continue
		}
		measurements = append(measurements, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.photo = photo.Info{}
	if data.Photo != nil {
		s.photo = *data.Photo
	}
	s.viewport = data.Viewport
	s.calibration = data.Calibration
	s.system = system
	s.mapMode = data.MapMode
	s.overlay = data.ScaleOverlay
	s.declination = data.Declination
	s.measurements = measurements

	s.resetPlacementLocked()
	s.snapshots = make(map[string]*measurement.Measurement)
	s.touched = nil
	s.edit = nil
	s.taps = tapState{}
	s.struggle = struggleState{}
	for _, m := range s.measurements {
		s.touched = append(s.touched, m.ID)
	}
	s.recomputeLocked()
	return nil
}

// LoadFile loads a session from path
func (s *Session) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Logger().Info("session loaded", "path", path, "measurements", len(s.Measurements()))
	return nil
}

// restore rebuilds the measurement a saved record describes
func (md MeasurementData) restore() (*measurement.Measurement, error) {
	shape, err := shapeFromPoints(md.Mode, md.Points, md.Closed, md.Azimuth)
	if err != nil {
		return nil, err
	}
	if shape.Degenerate() {
		return nil, fmt.Errorf("degenerate %s", md.Mode)
	}
	if md.Depth != nil && (!md.Depth.Unit.Valid() || md.Depth.Value <= 0) {
		return nil, fmt.Errorf("invalid depth %v %s", md.Depth.Value, md.Depth.Unit)
	}
	var snapshot *calibration.ScaleOverlay
	if md.ScaleSnapshot != nil {
		o, err := calibration.NewScaleOverlay(md.ScaleSnapshot.Ratio, md.ScaleSnapshot.Screen)
		if err != nil {
			return nil, fmt.Errorf("invalid map scale: %w", err)
		}
		snapshot = &o
	}
	id := md.ID
	if id == "" {
		id = measurement.NewID()
	}
	var depth *measurement.Depth
	if md.Depth != nil {
		d := *md.Depth
		depth = &d
	}
	return &measurement.Measurement{
		ID:              id,
		Shape:           shape,
		CalibrationKind: md.CalibrationKind,
		ScaleSnapshot:   snapshot,
		Depth:           depth,
		Label:           md.Label,
	}, nil
}

// shapeFromPoints checks the stored point count against the mode's arity
func shapeFromPoints(mode measurement.Mode, points []geometry.Point, closed, azimuth bool) (measurement.Shape, error) {
	expect := func(n int) error {
		if len(points) != n {
			return fmt.Errorf("%s needs %d points, got %d", mode, n, len(points))
		}
		return nil
	}

	switch mode {
	case measurement.ModeDistance:
		if err := expect(2); err != nil {
			return nil, err
		}
		return &measurement.Distance{Start: points[0], End: points[1]}, nil
	case measurement.ModeAngle:
		if err := expect(3); err != nil {
			return nil, err
		}
		return &measurement.Angle{Start: points[0], Vertex: points[1], End: points[2], Azimuth: azimuth}, nil
	case measurement.ModeCircle:
		if err := expect(2); err != nil {
			return nil, err
		}
		return &measurement.Circle{Center: points[0], Edge: points[1]}, nil
	case measurement.ModeRectangle:
		if err := expect(4); err != nil {
			return nil, err
		}
		// corners are kept in their stored order, which edits may have flipped
		if points[0].Y != points[1].Y || points[2].Y != points[3].Y ||
			points[0].X != points[3].X || points[1].X != points[2].X {
			return nil, errors.New("rectangle corners are not axis-aligned")
		}
		return &measurement.Rectangle{Corners: [4]geometry.Point(points)}, nil
	case measurement.ModeFreehand:
		if len(points) < 2 {
			return nil, fmt.Errorf("freehand needs at least 2 points, got %d", len(points))
		}
		if closed && (len(points) < 4 || points[0] != points[len(points)-1]) {
			return nil, errors.New("closed freehand path must repeat its first point")
		}
		return &measurement.Freehand{Path: append([]geometry.Point(nil), points...), Closed: closed}, nil
	case measurement.ModePolygon:
		if len(points) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
		}
		return &measurement.Polygon{Vertices: append([]geometry.Point(nil), points...)}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}
