package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eta.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
max_chars = 500
indent_width = 2
undo_debounce = "750ms"
scroll_smoothing = 0.0
platform = "mac"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxChars)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.Equal(t, 750*time.Millisecond, cfg.UndoDebounce.Duration)
	assert.Equal(t, float32(0), cfg.ScrollSmoothing)
	assert.Equal(t, PlatformMac, cfg.ResolvedPlatform())

	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultMaxUndos, cfg.MaxUndos)
	assert.Equal(t, 4, cfg.TabWidth)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `platform = "mac"`)
	t.Setenv("ETA_PLATFORM", "windows")
	t.Setenv("ETA_UNDO_DEBOUNCE", "2s")
	t.Setenv("ETA_SCROLL_SMOOTHING", "6.5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "windows", cfg.Platform)
	assert.Equal(t, 2*time.Second, cfg.UndoDebounce.Duration)
	assert.Equal(t, float32(6.5), cfg.ScrollSmoothing)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.ErrorContains(t, err, "config file not found")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `max_chars = [`))
		require.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `undo_debounce = "soon"`))
		require.Error(t, err)
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("ETA_SCROLL_SMOOTHING", "fast")
		_, err := LoadConfig("")
		require.ErrorContains(t, err, "ETA_SCROLL_SMOOTHING")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
indent_width = 0
platform = "amiga"
`))
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorContains(t, err, "indent_width")
		require.ErrorContains(t, err, "amiga")
	})
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxChars = -1
	cfg.LineHeight = 0
	cfg.TabWidth = 0
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorContains(t, err, "max_chars")
	require.ErrorContains(t, err, "line_height")
	require.ErrorContains(t, err, "tab_width")
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	require.Equal(t, 90*time.Second, d.Duration)

	out, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1m30s", string(out))
}
