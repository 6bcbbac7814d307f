package lightbox

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Config.Validate for out-of-range values.
var ErrInvalidConfig = errors.New("lightbox: invalid config")

// envPrefix is the prefix for environment overrides, e.g. LIGHTBOX_MAX_SCALE.
const envPrefix = "lightbox"

// Config holds the gesture thresholds and animation timings of a viewer.
type Config struct {
	// MinScale and MaxScale bound the zoom level.
	MinScale float64 `yaml:"min_scale" split_words:"true"`
	MaxScale float64 `yaml:"max_scale" split_words:"true"`
	// DoubleTapScale is the zoom level a double tap jumps to.
	DoubleTapScale float64 `yaml:"double_tap_scale" split_words:"true"`
	// ZoomThreshold separates "not zoomed" from "zoomed". Pans that start at
	// or below it are dismiss gestures and single taps close the viewer.
	ZoomThreshold float64 `yaml:"zoom_threshold" split_words:"true"`

	DismissDistance float64 `yaml:"dismiss_distance" split_words:"true"` // px
	DismissVelocity float64 `yaml:"dismiss_velocity" split_words:"true"` // px/s
	FadeDistance    float64 `yaml:"fade_distance" split_words:"true"`    // px of drag until the backdrop reaches FadeFloor
	FadeFloor       float64 `yaml:"fade_floor" split_words:"true"`       // lowest backdrop opacity while dragging

	AutoHideDelay   time.Duration `yaml:"auto_hide_delay" split_words:"true"`
	DoubleTapWindow time.Duration `yaml:"double_tap_window" split_words:"true"`
	// TapSlop is the largest distance in px between the two taps of a double tap.
	TapSlop float64 `yaml:"tap_slop" split_words:"true"`

	SettleDuration    time.Duration `yaml:"settle_duration" split_words:"true"`
	DoubleTapDuration time.Duration `yaml:"double_tap_duration" split_words:"true"`

	EnableRotation bool `yaml:"enable_rotation" split_words:"true"`
}

// DefaultConfig returns the thresholds used by the ArtChain viewers.
func DefaultConfig() Config {
	return Config{
		MinScale:          1,
		MaxScale:          5,
		DoubleTapScale:    2.5,
		ZoomThreshold:     1.02,
		DismissDistance:   140,
		DismissVelocity:   1000,
		FadeDistance:      120,
		FadeFloor:         0.2,
		AutoHideDelay:     2 * time.Second,
		DoubleTapWindow:   300 * time.Millisecond,
		TapSlop:           24,
		SettleDuration:    250 * time.Millisecond,
		DoubleTapDuration: 200 * time.Millisecond,
	}
}

// Validate checks that the thresholds describe a usable viewer.
func (c Config) Validate() error {
	switch {
	case !finite(c.MinScale, c.MaxScale, c.DoubleTapScale, c.ZoomThreshold,
		c.DismissDistance, c.DismissVelocity, c.FadeDistance, c.FadeFloor, c.TapSlop):
		return fmt.Errorf("%w: non-finite value", ErrInvalidConfig)
	case c.MinScale <= 0:
		return fmt.Errorf("%w: min_scale %v must be positive", ErrInvalidConfig, c.MinScale)
	case c.MaxScale < c.MinScale:
		return fmt.Errorf("%w: max_scale %v below min_scale %v", ErrInvalidConfig, c.MaxScale, c.MinScale)
	case c.DoubleTapScale < c.MinScale || c.DoubleTapScale > c.MaxScale:
		return fmt.Errorf("%w: double_tap_scale %v outside [%v, %v]", ErrInvalidConfig, c.DoubleTapScale, c.MinScale, c.MaxScale)
	case c.ZoomThreshold < c.MinScale:
		return fmt.Errorf("%w: zoom_threshold %v below min_scale %v", ErrInvalidConfig, c.ZoomThreshold, c.MinScale)
	case c.DismissDistance <= 0 || c.DismissVelocity <= 0:
		return fmt.Errorf("%w: dismiss thresholds must be positive", ErrInvalidConfig)
	case c.FadeDistance <= 0:
		return fmt.Errorf("%w: fade_distance %v must be positive", ErrInvalidConfig, c.FadeDistance)
	case c.FadeFloor < 0 || c.FadeFloor > 1:
		return fmt.Errorf("%w: fade_floor %v outside [0, 1]", ErrInvalidConfig, c.FadeFloor)
	case c.AutoHideDelay <= 0 || c.DoubleTapWindow <= 0:
		return fmt.Errorf("%w: auto_hide_delay and double_tap_window must be positive", ErrInvalidConfig)
	case c.TapSlop < 0:
		return fmt.Errorf("%w: tap_slop %v is negative", ErrInvalidConfig, c.TapSlop)
	case c.SettleDuration < 0 || c.DoubleTapDuration < 0:
		return fmt.Errorf("%w: animation durations are negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a YAML config file. Keys absent from the file keep their
// DefaultConfig values. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from LIGHTBOX_* environment variables, for
// example LIGHTBOX_MAX_SCALE=6 or LIGHTBOX_AUTO_HIDE_DELAY=1500ms.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}
