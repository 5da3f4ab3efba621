package gesture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that reads and writes as a Go duration string
// ("500ms") in TOML files.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the timing and distance thresholds shared by all recognizers
// attached through one ArenaManager. Distances are logical pixels, velocities
// logical pixels per second.
type Config struct {
	PressTimeout     Duration `toml:"press_timeout"`
	LongPressTimeout Duration `toml:"long_press_timeout"`
	DoubleTapTimeout Duration `toml:"double_tap_timeout"`
	DoubleTapMinTime Duration `toml:"double_tap_min_time"`

	TouchSlop          float64 `toml:"touch_slop"`
	DoubleTapTouchSlop float64 `toml:"double_tap_touch_slop"`
	DoubleTapSlop      float64 `toml:"double_tap_slop"`
	PanSlop            float64 `toml:"pan_slop"`
	ScaleSlop          float64 `toml:"scale_slop"`

	MinFlingVelocity float64 `toml:"min_fling_velocity"`
	MaxFlingVelocity float64 `toml:"max_fling_velocity"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		PressTimeout:     Duration(100 * time.Millisecond),
		LongPressTimeout: Duration(500 * time.Millisecond),
		DoubleTapTimeout: Duration(300 * time.Millisecond),
		DoubleTapMinTime: Duration(40 * time.Millisecond),

		TouchSlop:          8,
		DoubleTapTouchSlop: 8,
		DoubleTapSlop:      10,
		PanSlop:            8,
		ScaleSlop:          4,

		MinFlingVelocity: 50,
		MaxFlingVelocity: 8000,
	}
}

// DecodeConfig reads a TOML document from r. Keys missing from the document
// keep their DefaultConfig values.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes the config as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// SaveConfig writes the config to path, creating or truncating the file.
func SaveConfig(path string, c Config) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}
