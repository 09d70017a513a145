// Package config resolves where tabfocus keeps its data and the tunables read
// from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings.
type Config struct {
	DataDir string `yaml:"-"`

	DefaultMinutes      int           `yaml:"default_minutes"`
	DurationPresets     []int         `yaml:"duration_presets"`
	FocusMaxLength      int           `yaml:"focus_max_length"`
	StatusTimeout       time.Duration `yaml:"status_timeout"`
	CelebrationDuration time.Duration `yaml:"celebration_duration"`
	DarkModeDebounce    time.Duration `yaml:"dark_mode_debounce"`
	LogLevel            string        `yaml:"log_level"`
}

// Default returns the built-in settings for dataDir.
func Default(dataDir string) *Config {
	return &Config{
		DataDir:             dataDir,
		DefaultMinutes:      25,
		DurationPresets:     []int{15, 25, 45, 60},
		FocusMaxLength:      200,
		StatusTimeout:       3 * time.Second,
		CelebrationDuration: 3 * time.Second,
		DarkModeDebounce:    150 * time.Millisecond,
		LogLevel:            "info",
	}
}

// Load reads .env (if present), then dataDir/config.yaml (if present), then
// TABFOCUS_* overrides from the environment.
func Load(dataDir string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default(dataDir)
	data, err := os.ReadFile(cfg.ConfigPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", cfg.ConfigPath(), err)
		}
	}

	if v := os.Getenv("TABFOCUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TABFOCUS_DEFAULT_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TABFOCUS_DEFAULT_MINUTES: %w", err)
		}
		cfg.DefaultMinutes = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.DefaultMinutes < 1 || c.DefaultMinutes > 180 {
		return fmt.Errorf("default_minutes must be between 1 and 180, got %d", c.DefaultMinutes)
	}
	if c.FocusMaxLength < 1 {
		return fmt.Errorf("focus_max_length must be positive, got %d", c.FocusMaxLength)
	}
	for _, p := range c.DurationPresets {
		if p < 1 || p > 180 {
			return fmt.Errorf("duration preset %d out of range", p)
		}
	}
	if c.StatusTimeout <= 0 || c.CelebrationDuration <= 0 || c.DarkModeDebounce < 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// ConfigPath is the optional YAML settings file.
func (c *Config) ConfigPath() string { return filepath.Join(c.DataDir, "config.yaml") }

// DBPath is the primary storage database.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, "state.db") }

// FallbackDir holds the raw per-key fallback files.
func (c *Config) FallbackDir() string { return filepath.Join(c.DataDir, "local") }

// LogPath is where logs go; the terminal belongs to the TUI.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, "tabfocus.log") }
