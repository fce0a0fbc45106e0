package app

import (
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/internal/polygon"
	"github.com/philipparndt/photomeasure/internal/snap"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// PreviewCursor returns where a placement at display would land. It
// advances the alignment hysteresis like a real pointer move.
func (s *Session) PreviewCursor(display geometry.Point) Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapLocked(display)
}

// PlacePoint adds one point to the active placement sequence and finalizes
// the shape once the mode's arity is reached
func (s *Session) PlacePoint(display geometry.Point) Placement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeFreehand || len(s.pending) > 0 {
		return Placement{Outcome: Ignored}
	}
	if reason := s.blockReasonLocked(); reason != NotBlocked {
		return Placement{Outcome: Blocked, Reason: reason}
	}

	cursor := s.snapLocked(display)
	s.snapper.Reset()
	result := Placement{Outcome: Placed, Point: cursor.Point, Snap: cursor.Snap}
	if cursor.Snap != snap.None {
		Logger().Debug("cursor snapped", "kind", cursor.Snap.String(), "point", cursor.Point)
	}

	if s.photo.Width > 0 && !s.photo.Contains(cursor.Point) {
		Logger().Debug("point placed outside the photo", "point", cursor.Point, "bounds", s.photo.Bounds())
	}

	s.inProgress = append(s.inProgress, cursor.Point)
	if len(s.inProgress) == 1 && !s.mode.calibrating() {
		result.Hint = s.recordAttemptLocked(display)
	}
	if len(s.inProgress) < s.mode.arity() {
		return result
	}

	points := s.inProgress
	s.inProgress = nil

	if s.mode.calibrating() {
		if points[0] == points[1] {
			result.Outcome = Rejected
			return result
		}
		s.pending = points
		result.CalibrationReady = true
		return result
	}

	shape := s.buildShapeLocked(points)
	if shape.Degenerate() {
		result.Outcome = Rejected
		return result
	}

	m := s.addLocked(shape)
	result.Outcome = Finalized
	result.Measurement = m.Clone()

	if shape.Mode() == measurement.ModeDistance {
		if merged := s.detectPolygonLocked(m); merged != nil {
			result.Merged = merged.Clone()
		}
	}
	return result
}

func (s *Session) buildShapeLocked(points []geometry.Point) measurement.Shape {
	switch s.mode {
	case ModeAngle:
		return &measurement.Angle{Start: points[0], Vertex: points[1], End: points[2], Azimuth: s.mapMode}
	case ModeCircle:
		return &measurement.Circle{Center: points[0], Edge: points[1]}
	case ModeRectangle:
		return measurement.NewRectangle(points[0], points[1])
	}
	return &measurement.Distance{Start: points[0], End: points[1]}
}

// snapLocked applies magnetic and alignment snapping to a display position
func (s *Session) snapLocked(display geometry.Point) Cursor {
	req := snap.Request{
		Cursor:     display,
		Candidates: s.displayPointsLocked(""),
		Radius:     s.snapper.PlacementRadius(s.pixelsPerMMLocked(), s.viewport.Scale),
	}
	for _, p := range s.inProgress {
		req.Candidates = append(req.Candidates, s.viewport.ToDisplay(p))
	}

	if n := len(s.inProgress); n > 0 {
		ref := s.viewport.ToDisplay(s.inProgress[n-1])
		req.Reference = &ref
		switch s.mode {
		case ModeDistance, ModeCalibrateBlueprint:
			req.Align = n == 1
		case ModeAngle:
			if s.mapMode {
				// the north reference is always straight up from the origin
				origin := s.viewport.ToDisplay(s.inProgress[0])
				req.Reference = &origin
				req.ForceVertical = n == 1
			} else {
				req.Align = n <= 2
			}
		}
	}

	r := s.snapper.Snap(req)
	return Cursor{Point: s.viewport.ToPhoto(r.Point), Display: r.Point, Snap: r.Kind, Axis: r.Axis}
}

// displayPointsLocked returns the display positions of every committed
// point, skipping the measurement with id except
func (s *Session) displayPointsLocked(except string) []geometry.Point {
	var points []geometry.Point
	for _, m := range s.measurements {
		if m.ID == except {
			continue
		}
		for _, p := range m.Shape.Points() {
			points = append(points, s.viewport.ToDisplay(p))
		}
	}
	return points
}

func (s *Session) pixelsPerMMLocked() float64 {
	if s.calibration == nil {
		return 0
	}
	return s.calibration.PixelsPerUnit
}

// detectPolygonLocked merges a closed chain through the newest distance
// edge into one polygon measurement
func (s *Session) detectPolygonLocked(newest *measurement.Measurement) *measurement.Measurement {
	mapped := newest.ScaleSnapshot != nil
	var edges []polygon.Edge
	for _, m := range s.measurements {
		d, ok := m.Shape.(*measurement.Distance)
		if !ok || (m.ScaleSnapshot != nil) != mapped {
			continue
		}
		edges = append(edges, polygon.Edge{ID: m.ID, Start: d.Start, End: d.End})
	}

	loop, ok := polygon.Detect(edges, newest.ID, s.cfg.Polygon)
	if !ok {
		return nil
	}

	for _, id := range loop.EdgeIDs {
		s.removeLocked(id)
	}
	m := measurement.New(&measurement.Polygon{Vertices: loop.Vertices}, s.contextLocked(), newest.ScaleSnapshot)
	s.measurements = append(s.measurements, m)
	s.touched = append(s.touched, m.ID)

	Logger().Info("polygon detected", "id", m.ID, "edges", len(loop.EdgeIDs), "edgeLength", loop.EdgeLength)
	return m
}
