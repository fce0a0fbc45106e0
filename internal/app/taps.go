package app

import (
	"github.com/philipparndt/photomeasure/pkg/geometry"
)

// Tap registers a tap at display. Enough taps on the same measurement
// inside the tap window delete it; Tap then returns its id and true.
func (s *Session) Tap(display geometry.Point) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hitLocked(display, true)
	if !ok {
		s.taps = tapState{}
		return "", false
	}

	now := s.now()
	if s.taps.id != h.id {
		s.taps = tapState{id: h.id}
	}
	kept := s.taps.times[:0]
	for _, t := range s.taps.times {
		if now.Sub(t) <= s.cfg.Edit.TapWindow {
			kept = append(kept, t)
		}
	}
	s.taps.times = append(kept, now)

	if len(s.taps.times) < s.cfg.Edit.TapCount {
		return h.id, false
	}
	s.removeLocked(h.id)
	s.taps = tapState{}
	Logger().Info("measurement deleted by rapid tap", "id", h.id)
	return h.id, true
}
