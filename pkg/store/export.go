package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/tabfocus/pkg/streak"
	"github.com/stefanpenner/tabfocus/pkg/timer"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export snapshots every stored value.
func (s *Store) Export(ctx context.Context, now time.Time, defaultMinutes int) Bundle {
	return Bundle{
		DailyFocus:   s.Focus(ctx),
		DarkMode:     s.DarkMode(ctx),
		StreakData:   s.streak.Load(ctx),
		TimerMinutes: s.TimerMinutes(ctx, defaultMinutes),
		Todos:        s.Todos(ctx),
		QuickLinks:   s.QuickLinks(ctx),
		Background:   s.Background(ctx),
		ExportedAt:   now.UTC().Truncate(time.Second),
	}
}

// ExportFilename is the default file name for an export made on day today.
func ExportFilename(today, format string) string {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("tabfocus-export-%s.%s", today, ext)
}

// WriteBundle encodes b to w in the given format.
func WriteBundle(w io.Writer, b Bundle, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (use json or yaml)", format)
	}
}

// ReadBundle decodes an export written in either format.
func ReadBundle(data []byte) (Bundle, error) {
	var b Bundle
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return b, fmt.Errorf("empty export")
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return b, fmt.Errorf("parsing json export: %w", err)
		}
		return b, nil
	}
	if err := yaml.Unmarshal(trimmed, &b); err != nil {
		return b, fmt.Errorf("parsing yaml export: %w", err)
	}
	return b, nil
}

// Import overwrites every stored value with the bundle's contents. The
// bundle is checked with the same rules as the individual setters; nothing
// is written unless all of it is valid.
func (s *Store) Import(ctx context.Context, b Bundle) error {
	focus := strings.TrimSpace(b.DailyFocus)
	if focus != "" {
		if err := s.validateFocus(focus); err != nil {
			return err
		}
	}

	// Zero means the export carried no duration.
	if b.TimerMinutes != 0 && (b.TimerMinutes < timer.MinMinutes || b.TimerMinutes > timer.MaxMinutes) {
		return fmt.Errorf("timer minutes must be from %d to %d, got %d", timer.MinMinutes, timer.MaxMinutes, b.TimerMinutes)
	}

	rec, err := streak.Normalize(b.StreakData, s.dates.Today())
	if err != nil {
		return err
	}

	todos := make([]Todo, 0, len(b.Todos))
	for _, t := range b.Todos {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			return fmt.Errorf("todo %q: %w", t.ID, ErrTextEmpty)
		}
		if t.ID == "" {
			t.ID = newID()
		}
		todos = append(todos, t)
	}

	links := make([]QuickLink, 0, len(b.QuickLinks))
	for _, l := range b.QuickLinks {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return fmt.Errorf("link %q: %w", l.URL, ErrTextEmpty)
		}
		normalized, err := NormalizeURL(l.URL)
		if err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
		l.URL = normalized
		if l.ID == "" {
			l.ID = newID()
		}
		links = append(links, l)
	}

	if err := validateBackground(b.Background); err != nil {
		return err
	}

	if focus == "" {
		s.ClearFocus(ctx)
	} else {
		s.kv.Set(ctx, KeyDailyFocus, focus)
	}
	s.SetDarkMode(ctx, b.DarkMode)
	if b.TimerMinutes != 0 {
		s.SaveTimerMinutes(ctx, b.TimerMinutes)
	}
	s.streak.Save(ctx, rec)
	s.setJSON(ctx, KeyTodos, todos)
	s.setJSON(ctx, KeyQuickLinks, links)
	s.setJSON(ctx, KeyBackground, b.Background)
	return nil
}

func validateBackground(bg Background) error {
	switch bg.Type {
	case BackgroundPreset:
		if !slices.Contains(Presets, bg.Preset) {
			return fmt.Errorf("%w: %s", ErrUnknownPreset, bg.Preset)
		}
	case BackgroundCustom:
		if !strings.HasPrefix(bg.Image, "data:image/") {
			return fmt.Errorf("%w: custom background is not an image data URI", ErrNotAnImage)
		}
	default:
		return fmt.Errorf("invalid background type %q", bg.Type)
	}
	return nil
}
