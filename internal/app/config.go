package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/philipparndt/photomeasure/internal/calibration"
	"github.com/philipparndt/photomeasure/internal/lasso"
	"github.com/philipparndt/photomeasure/internal/polygon"
	"github.com/philipparndt/photomeasure/internal/snap"
	"github.com/philipparndt/photomeasure/pkg/units"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PHOTOMEASURE_SNAP_MIN_DISTANCE_PX
const EnvPrefix = "PHOTOMEASURE"

// Config holds every tunable threshold of the session engine
type Config struct {
	Snap     snap.Config        `mapstructure:"snap"`
	Polygon  polygon.Config     `mapstructure:"polygon"`
	Lasso    lasso.Config       `mapstructure:"lasso"`
	Edit     EditConfig         `mapstructure:"edit"`
	Struggle StruggleConfig     `mapstructure:"struggle"`
	Screen   calibration.Screen `mapstructure:"screen"`
	Units    UnitsConfig        `mapstructure:"units"`
	Map      MapConfig          `mapstructure:"map"`
}

// EditConfig holds editing and rapid-tap thresholds
type EditConfig struct {
	GrabRadiusPx       float64       `mapstructure:"grab_radius_px"`
	CornerGrabRadiusPx float64       `mapstructure:"corner_grab_radius_px"`
	TapCount           int           `mapstructure:"tap_count"`
	TapWindow          time.Duration `mapstructure:"tap_window"`
	Falloff            []float64     `mapstructure:"falloff"`
}

// StruggleConfig holds the calibration-hint thresholds
type StruggleConfig struct {
	Attempts int           `mapstructure:"attempts"`
	RadiusPx float64       `mapstructure:"radius_px"`
	Window   time.Duration `mapstructure:"window"`
}

// UnitsConfig holds the initial unit system
type UnitsConfig struct {
	System units.System `mapstructure:"system"`
}

// MapConfig holds map-mode settings
type MapConfig struct {
	DeclinationDeg float64 `mapstructure:"declination_deg"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Snap:    snap.DefaultConfig(),
		Polygon: polygon.DefaultConfig(),
		Lasso:   lasso.DefaultConfig(),
		Edit: EditConfig{
			GrabRadiusPx:       24,
			CornerGrabRadiusPx: 14,
			TapCount:           4,
			TapWindow:          500 * time.Millisecond,
			Falloff:            []float64{0.67, 0.33},
		},
		Struggle: StruggleConfig{
			Attempts: 3,
			RadiusPx: 80,
			Window:   20 * time.Second,
		},
		Screen: calibration.DefaultScreen(),
		Units:  UnitsConfig{System: units.Metric},
	}
}

// NewViper prepares a viper instance with defaults, environment overrides
// and an optional config file
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("snap.placement_radius_mm", c.Snap.PlacementRadiusMM)
	v.SetDefault("snap.drag_radius_mm", c.Snap.DragRadiusMM)
	v.SetDefault("snap.fallback_radius_px", c.Snap.FallbackRadiusPx)
	v.SetDefault("snap.min_distance_px", c.Snap.MinDistancePx)
	v.SetDefault("snap.align_entry_deg", c.Snap.AlignEntryDeg)
	v.SetDefault("snap.align_exit_deg", c.Snap.AlignExitDeg)

	v.SetDefault("polygon.tolerance_px", c.Polygon.TolerancePx)
	v.SetDefault("polygon.min_area_px", c.Polygon.MinAreaPx)

	v.SetDefault("lasso.min_spacing_px", c.Lasso.MinSpacingPx)
	v.SetDefault("lasso.min_close_points", c.Lasso.MinClosePoints)
	v.SetDefault("lasso.close_radius_px", c.Lasso.CloseRadiusPx)
	v.SetDefault("lasso.jitter_fraction", c.Lasso.JitterFraction)

	v.SetDefault("edit.grab_radius_px", c.Edit.GrabRadiusPx)
	v.SetDefault("edit.corner_grab_radius_px", c.Edit.CornerGrabRadiusPx)
	v.SetDefault("edit.tap_count", c.Edit.TapCount)
	v.SetDefault("edit.tap_window", c.Edit.TapWindow)
	v.SetDefault("edit.falloff", c.Edit.Falloff)

	v.SetDefault("struggle.attempts", c.Struggle.Attempts)
	v.SetDefault("struggle.radius_px", c.Struggle.RadiusPx)
	v.SetDefault("struggle.window", c.Struggle.Window)

	v.SetDefault("screen.dpi", c.Screen.DPI)
	v.SetDefault("screen.width_mm", c.Screen.WidthMM)
	v.SetDefault("screen.width_px", c.Screen.WidthPx)

	v.SetDefault("units.system", string(c.Units.System))
	v.SetDefault("map.declination_deg", c.Map.DeclinationDeg)
}

// LoadConfig decodes and validates the configuration held by v
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every threshold is usable
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("snap.placement_radius_mm", c.Snap.PlacementRadiusMM)
	positive("snap.drag_radius_mm", c.Snap.DragRadiusMM)
	positive("snap.fallback_radius_px", c.Snap.FallbackRadiusPx)
	positive("snap.align_entry_deg", c.Snap.AlignEntryDeg)
	positive("polygon.tolerance_px", c.Polygon.TolerancePx)
	positive("lasso.close_radius_px", c.Lasso.CloseRadiusPx)
	positive("edit.grab_radius_px", c.Edit.GrabRadiusPx)
	positive("edit.corner_grab_radius_px", c.Edit.CornerGrabRadiusPx)
	positive("struggle.radius_px", c.Struggle.RadiusPx)

	if c.Snap.AlignExitDeg < c.Snap.AlignEntryDeg {
		errs = append(errs, fmt.Errorf("snap.align_exit_deg (%v) must not be below snap.align_entry_deg (%v)",
			c.Snap.AlignExitDeg, c.Snap.AlignEntryDeg))
	}
	if c.Snap.MinDistancePx < 0 || c.Polygon.MinAreaPx < 0 || c.Lasso.MinSpacingPx < 0 {
		errs = append(errs, errors.New("minimum distances and areas must not be negative"))
	}
	if c.Lasso.JitterFraction < 0 || c.Lasso.JitterFraction >= 0.5 {
		errs = append(errs, fmt.Errorf("lasso.jitter_fraction must be in [0, 0.5), got %v", c.Lasso.JitterFraction))
	}
	if c.Edit.TapCount < 2 {
		errs = append(errs, fmt.Errorf("edit.tap_count must be at least 2, got %d", c.Edit.TapCount))
	}
	if c.Edit.TapWindow <= 0 || c.Struggle.Window <= 0 {
		errs = append(errs, errors.New("edit.tap_window and struggle.window must be positive"))
	}
	if c.Struggle.Attempts < 2 {
		errs = append(errs, fmt.Errorf("struggle.attempts must be at least 2, got %d", c.Struggle.Attempts))
	}
	if _, err := units.ParseSystem(string(c.Units.System)); err != nil {
		errs = append(errs, err)
	}
	if err := c.Screen.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
