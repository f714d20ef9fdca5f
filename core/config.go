package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that decodes from TOML strings such as "750ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds the tunable behaviour of the editor.
type Config struct {
	// MaxChars caps the buffer length; 0 means unlimited.
	MaxChars int `toml:"max_chars"`
	// IndentWidth is how many leading spaces Shift+Tab removes at most.
	IndentWidth int `toml:"indent_width"`
	// UndoDebounce is the longest pause between edits grouped into one undo step.
	UndoDebounce Duration `toml:"undo_debounce"`
	MaxUndos     int      `toml:"max_undos"`
	// ScrollSmoothing is the scroll easing rate per second; 0 disables easing.
	ScrollSmoothing float32 `toml:"scroll_smoothing"`
	LineHeight      float32 `toml:"line_height"`
	TabWidth        int     `toml:"tab_width"`
	// Platform selects the key binding flavour: auto, mac, windows or linux.
	Platform string `toml:"platform"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		MaxChars:        0,
		IndentWidth:     4,
		UndoDebounce:    Duration{DefaultUndoDebounce},
		MaxUndos:        DefaultMaxUndos,
		ScrollSmoothing: DefaultScrollSmoothing,
		LineHeight:      1,
		TabWidth:        4,
		Platform:        "auto",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig and applies
// environment overrides. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnvOverrides lets ETA_* variables override file values.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, setter := range []struct {
		env   string
		apply func(string) error
	}{
		{"ETA_PLATFORM", func(v string) error {
			cfg.Platform = v
			return nil
		}},
		{"ETA_UNDO_DEBOUNCE", func(v string) error {
			return cfg.UndoDebounce.UnmarshalText([]byte(v))
		}},
		{"ETA_SCROLL_SMOOTHING", func(v string) error {
			f, err := strconv.ParseFloat(v, 32)
			cfg.ScrollSmoothing = float32(f)
			return err
		}},
	} {
		v := os.Getenv(setter.env)
		if v == "" {
			continue
		}
		if err := setter.apply(v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is invalid: %w", setter.env, v, err))
		}
	}
	return errors.Join(errs...)
}

// Validate returns every problem with the configuration, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	if c.MaxChars < 0 {
		errs = append(errs, fmt.Errorf("max_chars=%d must not be negative", c.MaxChars))
	}
	if c.IndentWidth < 1 {
		errs = append(errs, fmt.Errorf("indent_width=%d must be at least 1", c.IndentWidth))
	}
	if c.UndoDebounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("undo_debounce=%s must not be negative", c.UndoDebounce))
	}
	if c.MaxUndos < 1 {
		errs = append(errs, fmt.Errorf("max_undos=%d must be at least 1", c.MaxUndos))
	}
	if c.ScrollSmoothing < 0 {
		errs = append(errs, fmt.Errorf("scroll_smoothing=%v must not be negative", c.ScrollSmoothing))
	}
	if c.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("line_height=%v must be positive", c.LineHeight))
	}
	if c.TabWidth < 1 {
		errs = append(errs, fmt.Errorf("tab_width=%d must be at least 1", c.TabWidth))
	}
	if _, err := ParsePlatform(c.Platform); err != nil {
		errs = append(errs, fmt.Errorf("platform: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// ResolvedPlatform returns the platform named by the config, detecting the
// host one for "auto".
func (c Config) ResolvedPlatform() Platform {
	p, err := ParsePlatform(c.Platform)
	if err != nil {
		return DetectPlatform()
	}
	return p
}
