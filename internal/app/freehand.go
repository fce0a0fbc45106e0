package app

import (
	"github.com/philipparndt/photomeasure/internal/lasso"
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// BeginFreehand starts a freehand drag at display
func (s *Session) BeginFreehand(display geometry.Point) Placement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeFreehand {
		return Placement{Outcome: Ignored}
	}
	if reason := s.blockReasonLocked(); reason != NotBlocked {
		return Placement{Outcome: Blocked, Reason: reason}
	}

	p := s.viewport.ToPhoto(display)
	s.lasso = lasso.New(s.cfg.Lasso)
	s.lasso.Add(p)
	return Placement{Outcome: Placed, Point: p, Hint: s.recordAttemptLocked(display)}
}

// ExtendFreehand adds a drag sample
func (s *Session) ExtendFreehand(display geometry.Point) lasso.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lasso == nil {
		return lasso.Ignored
	}
	e := s.lasso.Add(s.viewport.ToPhoto(display))
	switch e {
	case lasso.Closed, lasso.CloseRejected:
		Logger().Debug("lasso close attempt", "result", e.String(), "samples", s.lasso.Len())
	}
	return e
}

// EndFreehand releases the drag. Drags too short to measure are discarded.
func (s *Session) EndFreehand() Placement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lasso == nil {
		return Placement{Outcome: Ignored}
	}
	shape, ok := s.lasso.Finish()
	s.lasso = nil
	if !ok {
		return Placement{Outcome: Rejected}
	}

	m := s.addLocked(shape)
	return Placement{Outcome: Finalized, Point: shape.Path[len(shape.Path)-1], Measurement: m.Clone()}
}
