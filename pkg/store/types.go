package store

import (
	"time"

	"github.com/stefanpenner/tabfocus/pkg/streak"
)

// Storage keys. Each names one whole value in the key-value store.
const (
	KeyDailyFocus   = "dailyFocus"
	KeyDarkMode     = "darkMode"
	KeyStreakData   = streak.StorageKey
	KeyTimerMinutes = "timerMinutes"
	KeyTodos        = "todos"
	KeyQuickLinks   = "quickLinks"
	KeyBackground   = "background"
)

// Todo is one entry of the todo list.
type Todo struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// QuickLink is a named shortcut URL.
type QuickLink struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// BackgroundType says whether the background is a preset or a user image.
type BackgroundType string

const (
	BackgroundPreset BackgroundType = "preset"
	BackgroundCustom BackgroundType = "custom"
)

// Presets are the built-in backgrounds.
var Presets = []string{"default", "sunrise", "forest", "ocean", "midnight", "paper"}

// Background is the chosen page background. Image holds a data URI when
// Type is custom.
type Background struct {
	Type   BackgroundType `json:"type" yaml:"type"`
	Preset string         `json:"preset,omitempty" yaml:"preset,omitempty"`
	Image  string         `json:"image,omitempty" yaml:"image,omitempty"`
}

// DefaultBackground is used until the user picks one.
func DefaultBackground() Background {
	return Background{Type: BackgroundPreset, Preset: Presets[0]}
}

// Bundle is every stored value at one moment, as written by export.
type Bundle struct {
	DailyFocus   string        `json:"dailyFocus" yaml:"dailyFocus"`
	DarkMode     bool          `json:"darkMode" yaml:"darkMode"`
	StreakData   streak.Record `json:"streakData" yaml:"streakData"`
	TimerMinutes int           `json:"timerMinutes" yaml:"timerMinutes"`
	Todos        []Todo        `json:"todos" yaml:"todos"`
	QuickLinks   []QuickLink   `json:"quickLinks" yaml:"quickLinks"`
	Background   Background    `json:"background" yaml:"background"`
	ExportedAt   time.Time     `json:"exportedAt" yaml:"exportedAt"`
}
