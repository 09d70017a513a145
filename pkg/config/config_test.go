package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABFOCUS_LOG_LEVEL", "")
	t.Setenv("TABFOCUS_DEFAULT_MINUTES", "")
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DefaultMinutes)
	assert.Equal(t, 200, cfg.FocusMaxLength)
	assert.Equal(t, 3*time.Second, cfg.StatusTimeout)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.DBPath())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("TABFOCUS_LOG_LEVEL", "")
	t.Setenv("TABFOCUS_DEFAULT_MINUTES", "")
	dir := t.TempDir()
	content := `default_minutes: 50
duration_presets: [10, 50]
status_timeout: 5s
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DefaultMinutes)
	assert.Equal(t, []int{10, 50}, cfg.DurationPresets)
	assert.Equal(t, 5*time.Second, cfg.StatusTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, 200, cfg.FocusMaxLength)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TABFOCUS_LOG_LEVEL", "warn")
	t.Setenv("TABFOCUS_DEFAULT_MINUTES", "40")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.DefaultMinutes)
	assert.Equal(t, slog.LevelWarn, ParseLevel(cfg.LogLevel))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TABFOCUS_LOG_LEVEL", "")
	t.Setenv("TABFOCUS_DEFAULT_MINUTES", "0")
	_, err := Load(t.TempDir())
	assert.Error(t, err)

	t.Setenv("TABFOCUS_DEFAULT_MINUTES", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("focus_max_length: [\n"), 0644))
	_, err = Load(dir)
	assert.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg := Default(t.TempDir())
	log, closer, err := NewLogger(cfg)
	require.NoError(t, err)
	log.Info("hello", slog.String("k", "v"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "k=v")
}
