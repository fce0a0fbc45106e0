// Package app is the measurement session engine. A Session owns the active
// calibration, the measurement list and the in-progress placement, and is
// the only writer of that state.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/internal/lasso"
	"github.com/philipparndt/photomeasure/internal/measurement"
	"github.com/philipparndt/photomeasure/internal/snap"
	"github.com/philipparndt/photomeasure/pkg/geometry"
	"github.com/philipparndt/photomeasure/pkg/photo"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/philipparndt/photomeasure/pkg/viewer"
)

var (
	// ErrNotFound is returned for an unknown measurement id
	ErrNotFound = errors.New("measurement not found")
	// ErrNoCalibrationPoints is returned when completing a calibration
	// before its reference points are placed
	ErrNoCalibrationPoints = errors.New("calibration points not placed")
)

// Option configures a Session
type Option func(*Session)

// WithClock replaces the wall clock used for tap and struggle detection
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is one photo's measurement state
type Session struct {
	mu      sync.RWMutex
	cfg     Config
	now     func() time.Time
	snapper *snap.Snapper

	photo       photo.Info
	viewport    viewer.Viewport
	mode        Mode
	calibration *calibration.Calibration
	system      units.System
	mapMode     bool
	overlay     *calibration.ScaleOverlay
	declination float64

	measurements []*measurement.Measurement
	inProgress   []geometry.Point
	pending      []geometry.Point // complete calibration points
	lasso        *lasso.Lasso

	snapshots map[string]*measurement.Measurement
	touched   []string
	edit      *editGesture
	taps      tapState
	struggle  struggleState
}

// NewSession creates an empty session in distance mode
func NewSession(cfg Config, opts ...Option) *Session {
	system := cfg.Units.System
	if system != units.Imperial {
		system = units.Metric
	}
	s := &Session{
		cfg:         cfg,
		now:         time.Now,
		snapper:     snap.New(cfg.Snap),
		viewport:    viewer.Identity(),
		mode:        ModeDistance,
		system:      system,
		declination: cfg.Map.DeclinationDeg,
		snapshots:   make(map[string]*measurement.Measurement),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.cfg
}

// SetPhoto starts annotating a new photo. The calibration hint may fire again.
func (s *Session) SetPhoto(info photo.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = info
	s.struggle = struggleState{}
}

// Photo returns the annotated photo
func (s *Session) Photo() photo.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.photo
}

// SetMode switches the placement mode and discards the in-progress points
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.resetPlacementLocked()
}

// Mode returns the placement mode
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Session) resetPlacementLocked() {
	s.inProgress = nil
	s.pending = nil
	s.lasso = nil
	s.snapper.Reset()
}

// SetViewport updates the pan/zoom state
func (s *Session) SetViewport(v viewer.Viewport) {
	if v.Rotated() {
		Logger().Warn("display rotation is ignored by the coordinate mapping", "rotation", v.Rotation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

// Viewport returns the pan/zoom state
func (s *Session) Viewport() viewer.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetCalibration replaces the active calibration and recomputes every
// measurement before any reader can observe the new calibration
func (s *Session) SetCalibration(c calibration.Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalibrationLocked(c)
	return nil
}

func (s *Session) setCalibrationLocked(c calibration.Calibration) {
	s.calibration = &c
	s.recomputeLocked()
	Logger().Info("calibration replaced", "calibration", c.String(), "measurements", len(s.measurements))
}

// CalibrateVerbal calibrates from a stated scale using the configured screen
func (s *Session) CalibrateVerbal(r calibration.Ratio) (calibration.Calibration, error) {
	c, err := calibration.FromVerbal(r, s.cfg.Screen)
	if err != nil {
		return calibration.Calibration{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalibrationLocked(c)
	return c, nil
}

// CompleteCoin finishes a coin calibration from the placed center and edge
func (s *Session) CompleteCoin(diameter float64, unit units.Unit) (calibration.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeCalibrateCoin || len(s.pending) != 2 {
		return calibration.Calibration{}, ErrNoCalibrationPoints
	}
	c, err := calibration.FromCoin(s.pending[0].Distance(s.pending[1]), diameter, unit)
	if err != nil {
		return calibration.Calibration{}, err
	}
	s.pending = nil
	s.setCalibrationLocked(c)
	return c, nil
}

// CompleteBlueprint finishes a blueprint calibration from the placed pins
func (s *Session) CompleteBlueprint(distance float64, unit units.Unit) (calibration.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeCalibrateBlueprint || len(s.pending) != 2 {
		return calibration.Calibration{}, ErrNoCalibrationPoints
	}
	c, err := calibration.FromBlueprint(s.pending[0], s.pending[1], distance, unit)
	if err != nil {
		return calibration.Calibration{}, err
	}
	s.pending = nil
	s.setCalibrationLocked(c)
	return c, nil
}

// Calibration returns the active calibration
func (s *Session) Calibration() (calibration.Calibration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.calibration == nil {
		return calibration.Calibration{}, false
	}
	return *s.calibration, true
}

// SetUnitSystem changes the display unit system
func (s *Session) SetUnitSystem(system units.System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system = system
	s.recomputeLocked()
}

// ToggleUnitSystem switches between metric and imperial
func (s *Session) ToggleUnitSystem() units.System {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system = s.system.Toggle()
	s.recomputeLocked()
	return s.system
}

// UnitSystem returns the display unit system
func (s *Session) UnitSystem() units.System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// SetMapMode turns map mode on or off. Existing measurements keep the
// scale they were created with.
func (s *Session) SetMapMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapMode = on
	s.resetPlacementLocked()
}

// MapMode reports whether map mode is active
func (s *Session) MapMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapMode
}

// SetScaleOverlay sets the map-mode scale from a stated ratio
func (s *Session) SetScaleOverlay(r calibration.Ratio) error {
	o, err := calibration.NewScaleOverlay(r, s.cfg.Screen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = &o
	return nil
}

// ScaleOverlay returns the map-mode scale
func (s *Session) ScaleOverlay() (calibration.ScaleOverlay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overlay == nil {
		return calibration.ScaleOverlay{}, false
	}
	return *s.overlay, true
}

// SetDeclination sets the magnetic declination added to azimuths
func (s *Session) SetDeclination(deg float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declination = deg
	s.recomputeLocked()
}

// Declination returns the magnetic declination in degrees
func (s *Session) Declination() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.declination
}

// Measurements returns copies of all measurements in creation order
func (s *Session) Measurements() []*measurement.Measurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*measurement.Measurement, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = m.Clone()
	}
	return out
}

// Measurement returns a copy of one measurement
func (s *Session) Measurement(id string) (*measurement.Measurement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.measurements[i].Clone(), true
	}
	return nil, false
}

// InProgress returns the points placed so far for the active mode
func (s *Session) InProgress() []geometry.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lasso != nil {
		return s.lasso.Points()
	}
	return append(append([]geometry.Point(nil), s.pending...), s.inProgress...)
}

// Delete removes a measurement
func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removeLocked(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// SetLabel sets or clears a measurement's label
func (s *Session) SetLabel(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.measurements[i].Label = label
	s.measurements[i].Recompute(s.contextLocked())
	return nil
}

// SetDepth sets the depth used for volume output; nil clears it
func (s *Session) SetDepth(id string, depth *measurement.Depth) error {
	if depth != nil {
		if !depth.Unit.Valid() {
			return fmt.Errorf("%w: depth unit %q", units.ErrUnknownUnit, depth.Unit)
		}
		if depth.Value <= 0 {
			return fmt.Errorf("depth must be positive, got %v", depth.Value)
		}
		d := *depth
		depth = &d
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.measurements[i].Depth = depth
	s.measurements[i].Recompute(s.contextLocked())
	return nil
}

// CalibrationHint reports whether clustered attempts raised the hint
func (s *Session) CalibrationHint() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.struggle.fired
}

func (s *Session) contextLocked() measurement.Context {
	ctx := measurement.Context{System: s.system, Declination: s.declination}
	if s.calibration != nil {
		ctx.Converter = *s.calibration
	}
	return ctx
}

func (s *Session) recomputeLocked() {
	ctx := s.contextLocked()
	for _, m := range s.measurements {
		m.Recompute(ctx)
	}
}

func (s *Session) indexLocked(id string) int {
	for i, m := range s.measurements {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// addLocked stores a new measurement, freezing the map scale in map mode
func (s *Session) addLocked(shape measurement.Shape) *measurement.Measurement {
	var snapshot *calibration.ScaleOverlay
	if s.mapMode && s.overlay != nil {
		snapshot = s.overlay.Snapshot()
	}
	m := measurement.New(shape, s.contextLocked(), snapshot)
	s.measurements = append(s.measurements, m)
	s.touched = append(s.touched, m.ID)
	return m
}

func (s *Session) removeLocked(id string) bool {
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.measurements = append(s.measurements[:i], s.measurements[i+1:]...)
	delete(s.snapshots, id)
	if s.edit != nil && s.edit.id == id {
		s.edit = nil
	}
	if s.taps.id == id {
		s.taps = tapState{}
	}
	return true
}

// blockReasonLocked reports why a measurement cannot be placed right now
func (s *Session) blockReasonLocked() BlockReason {
	if s.mode.calibrating() {
		return NotBlocked
	}
	if s.mapMode {
		if s.overlay == nil {
			return NoMapScale
		}
		return NotBlocked
	}
	if s.calibration == nil && s.mode != ModeAngle {
		return NoCalibration
	}
	return NotBlocked
}
