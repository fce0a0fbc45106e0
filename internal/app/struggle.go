package app

import "github.com/philipparndt/photomeasure/pkg/geometry"

// recordAttemptLocked records the start of a new measurement and reports
// whether it raised the calibration hint. The hint fires once per photo.
func (s *Session) recordAttemptLocked(display geometry.Point) bool {
	now := s.now()
	cfg := s.cfg.Struggle

	kept := s.struggle.attempts[:0]
	for _, a := range s.struggle.attempts {
		if now.Sub(a.when) <= cfg.Window {
			kept = append(kept, a)
		}
	}
	s.struggle.attempts = append(kept, attempt{mode: s.mode, at: display, when: now})

	if s.struggle.fired {
		return false
	}
	count := 0
	for _, a := range s.struggle.attempts {
		if a.mode == s.mode && a.at.Distance(display) <= cfg.RadiusPx {
			count++
		}
	}
	if count < cfg.Attempts {
		return false
	}
	s.struggle.fired = true
	Logger().Info("calibration hint raised", "mode", string(s.mode), "attempts", count)
	return true
}
