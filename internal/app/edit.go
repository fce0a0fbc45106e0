package app

import (
	"math"

	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// UndoAction reports what Undo did
type UndoAction int

const (
	UndoNothing UndoAction = iota
	UndoPoint
	UndoRevert
	UndoDelete
)

func (a UndoAction) String() string {
	switch a {
	case UndoPoint:
		return "removed last point"
	case UndoRevert:
		return "reverted edit"
	case UndoDelete:
		return "deleted"
	}
	return "nothing to undo"
}

// hit is a grab target in an existing measurement
type hit struct {
	id    string
	index int // point index, or -1 for the shape body
}

// hitLocked finds the nearest grabbable point, then a draggable body.
// With segments set, proximity to any outline also counts as a body hit.
func (s *Session) hitLocked(display geometry.Point, segments bool) (hit, bool) {
	best, bestDist := hit{}, math.Inf(1)

	for i := len(s.measurements) - 1; i >= 0; i-- {
		m := s.measurements[i]
		radius := s.cfg.Edit.GrabRadiusPx
		if m.Mode() == measurement.ModeRectangle {
			radius = s.cfg.Edit.CornerGrabRadiusPx
		}
		points := m.Shape.Points()
		if f, ok := m.Shape.(*measurement.Freehand); ok && f.Closed {
			points = points[:len(points)-1]
		}
		for j, p := range points {
			if d := display.Distance(s.viewport.ToDisplay(p)); d <= radius && d < bestDist {
				best, bestDist = hit{id: m.ID, index: j}, d
			}
		}
	}
	if bestDist < math.Inf(1) {
		return best, true
	}

	for i := len(s.measurements) - 1; i >= 0; i-- {
		m := s.measurements[i]
		if s.bodyContainsLocked(m, display) {
			return hit{id: m.ID, index: -1}, true
		}
	}

	if segments {
		for i := len(s.measurements) - 1; i >= 0; i-- {
			m := s.measurements[i]
			if s.outlineDistanceLocked(m, display) <= s.cfg.Edit.GrabRadiusPx {
				return hit{id: m.ID, index: -1}, true
			}
		}
	}
	return hit{}, false
}

func (s *Session) bodyContainsLocked(m *measurement.Measurement, display geometry.Point) bool {
	switch shape := m.Shape.(type) {
	case *measurement.Circle:
		center := s.viewport.ToDisplay(shape.Center)
		return display.Distance(center) <= s.viewport.DisplayLength(shape.PixelRadius())
	case *measurement.Rectangle:
		corners := shape.Points()
		for i := range corners {
			corners[i] = s.viewport.ToDisplay(corners[i])
		}
		return geometry.NewBoundingBox(corners...).Contains(display)
	}
	return false
}

func (s *Session) outlineDistanceLocked(m *measurement.Measurement, display geometry.Point) float64 {
	points := m.Shape.Points()
	switch m.Mode() {
	case measurement.ModeRectangle, measurement.ModePolygon:
		points = append(points, points[0])
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(points); i++ {
		a, b := s.viewport.ToDisplay(points[i]), s.viewport.ToDisplay(points[i+1])
		best = math.Min(best, display.SegmentDistance(a, b))
	}
	return best
}

// BeginEdit grabs the measurement under display. A point grab resizes,
// a body grab on a circle or rectangle drags the whole shape.
func (s *Session) BeginEdit(display geometry.Point) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hitLocked(display, false)
	if !ok {
		s.edit = nil
		return "", false
	}
	m := s.measurements[s.indexLocked(h.id)]
	_, circle := m.Shape.(*measurement.Circle)
	g := &editGesture{
		id:     h.id,
		index:  h.index,
		last:   s.viewport.ToPhoto(display),
		noSnap: circle && h.index == 1,
	}
	if h.index >= 0 {
		g.offset = m.Shape.Points()[h.index].Sub(g.last)
	}
	s.edit = g
	return h.id, true
}

// DragEdit moves the grabbed point or body to display
func (s *Session) DragEdit(display geometry.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.edit
	if g == nil {
		return false
	}
	i := s.indexLocked(g.id)
	if i < 0 {
		s.edit = nil
		return false
	}
	m := s.measurements[i]

	target := s.viewport.ToPhoto(display)
	if target == g.last {
		return false
	}
	if !g.moved {
		g.moved = true
		s.taps = tapState{}
		if _, ok := s.snapshots[g.id]; !ok {
			s.snapshots[g.id] = m.Clone()
			s.touched = append(s.touched, g.id)
		}
	}

	if g.index < 0 {
		body, ok := m.Shape.(measurement.Body)
		if !ok {
			return false
		}
		body.Translate(target.Sub(g.last))
		g.last = target
	} else {
		g.last = target
		// the grabbed point keeps its offset from the cursor
		dest := target.Add(g.offset)
		if !g.noSnap {
			dest = s.dragSnapLocked(s.viewport.ToDisplay(dest), g.id, dest)
		}
		if f, ok := m.Shape.(*measurement.Freehand); ok {
			f.MovePointWeighted(g.index, dest, s.cfg.Edit.Falloff)
		} else {
			m.Shape.MovePoint(g.index, dest)
		}
	}

	m.Recompute(s.contextLocked())
	return true
}

// dragSnapLocked pulls a dragged point onto another measurement's point
func (s *Session) dragSnapLocked(display geometry.Point, id string, target geometry.Point) geometry.Point {
	candidates := s.displayPointsLocked(id)
	radius := s.snapper.DragRadius(s.pixelsPerMMLocked(), s.viewport.Scale)
	if j := display.Nearest(candidates, radius); j >= 0 {
		return s.viewport.ToPhoto(candidates[j])
	}
	return target
}

// EndEdit releases the gesture and reports whether anything moved
func (s *Session) EndEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.edit != nil && s.edit.moved
	s.edit = nil
	return moved
}

// Undo steps back: it pops an in-progress point, or reverts the most
// recently edited measurement to its pre-edit snapshot, or deletes the most
// recent unedited measurement
func (s *Session) Undo() (UndoAction, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lasso != nil {
		s.lasso = nil
		return UndoPoint, ""
	}
	if len(s.pending) > 0 {
		s.inProgress = s.pending[:len(s.pending)-1]
		s.pending = nil
		return UndoPoint, ""
	}
	if n := len(s.inProgress); n > 0 {
		s.inProgress = s.inProgress[:n-1]
		s.snapper.Reset()
		return UndoPoint, ""
	}

	for len(s.touched) > 0 {
		id := s.touched[len(s.touched)-1]
		s.touched = s.touched[:len(s.touched)-1]
		i := s.indexLocked(id)
		if i < 0 {
			continue
		}
		if snapshot, ok := s.snapshots[id]; ok {
			delete(s.snapshots, id)
			snapshot.Recompute(s.contextLocked())
			s.measurements[i] = snapshot
			if s.edit != nil && s.edit.id == id {
				s.edit = nil
			}
			return UndoRevert, id
		}
		s.removeLocked(id)
		return UndoDelete, id
	}
	return UndoNothing, ""
}
