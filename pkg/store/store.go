package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stefanpenner/tabfocus/pkg/kv"
	"github.com/stefanpenner/tabfocus/pkg/streak"
)

// MaxImageBytes caps a custom background image before encoding.
const MaxImageBytes = 2 << 20

// Validation errors. They are meant to be shown to the user, not logged.
var (
	ErrFocusEmpty    = errors.New("please enter a focus task")
	ErrFocusTooLong  = errors.New("focus task is too long")
	ErrTextEmpty     = errors.New("text must not be empty")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrUnknownPreset = errors.New("unknown background preset")
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrNotFound      = errors.New("no item matches that id")
	ErrAmbiguousID   = errors.New("id prefix matches more than one item")
)

// Store is typed access to the dashboard state.
type Store struct {
	Root           string // data directory, e.g. ~/.local/share/tabfocus
	FocusMaxLength int

	kv     *kv.Store
	streak *streak.Tracker
	dates  streak.Dates
	log    *slog.Logger
}

// NewStore wraps kvStore. dates supplies the day keys for streak updates.
func NewStore(root string, kvStore *kv.Store, dates streak.Dates, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		Root:           root,
		FocusMaxLength: 200,
		kv:             kvStore,
		streak:         streak.NewTracker(kvStore, dates, log),
		dates:          dates,
		log:            log,
	}
}

// Streak returns the streak tracker sharing this store.
func (s *Store) Streak() *streak.Tracker { return s.streak }

// Dates returns the day-key source.
func (s *Store) Dates() streak.Dates { return s.dates }

// Focus returns the current daily focus, or "" when none is set.
func (s *Store) Focus(ctx context.Context) string {
	v, _ := s.kv.Get(ctx, KeyDailyFocus)
	return strings.TrimSpace(v)
}

// SetFocus validates and stores a new daily focus.
func (s *Store) SetFocus(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := s.validateFocus(text); err != nil {
		return "", err
	}
	s.kv.Set(ctx, KeyDailyFocus, text)
	return text, nil
}

func (s *Store) validateFocus(text string) error {
	if text == "" {
		return ErrFocusEmpty
	}
	if utf8.RuneCountInString(text) > s.FocusMaxLength {
		return fmt.Errorf("%w (max %d characters)", ErrFocusTooLong, s.FocusMaxLength)
	}
	return nil
}

// ClearFocus removes the daily focus without counting it as done.
func (s *Store) ClearFocus(ctx context.Context) {
	s.kv.Set(ctx, KeyDailyFocus, "")
}

// CompleteFocus clears the focus and records a completion for today.
func (s *Store) CompleteFocus(ctx context.Context) streak.Record {
	s.ClearFocus(ctx)
	return s.streak.Complete(ctx)
}

// DarkMode reports the stored dark-mode flag.
func (s *Store) DarkMode(ctx context.Context) bool {
	v, ok := s.kv.Get(ctx, KeyDarkMode)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && on
}

// SetDarkMode stores the dark-mode flag.
func (s *Store) SetDarkMode(ctx context.Context, on bool) {
	s.kv.Set(ctx, KeyDarkMode, strconv.FormatBool(on))
}

// TimerMinutes returns the stored timer duration, or def if none is stored.
func (s *Store) TimerMinutes(ctx context.Context, def int) int {
	v, ok := s.kv.Get(ctx, KeyTimerMinutes)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// SaveTimerMinutes stores the timer duration.
func (s *Store) SaveTimerMinutes(ctx context.Context, minutes int) {
	s.kv.Set(ctx, KeyTimerMinutes, strconv.Itoa(minutes))
}

// Todos returns the todo list in order.
func (s *Store) Todos(ctx context.Context) []Todo {
	var todos []Todo
	if !s.getJSON(ctx, KeyTodos, &todos) {
		return nil
	}
	return todos
}

// AddTodo appends a todo.
func (s *Store) AddTodo(ctx context.Context, text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, ErrTextEmpty
	}
	todo := Todo{ID: newID(), Text: text}
	todos := append(s.Todos(ctx), todo)
	s.setJSON(ctx, KeyTodos, todos)
	return todo, nil
}

// ToggleTodo flips the completed flag of the todo whose id starts with prefix.
func (s *Store) ToggleTodo(ctx context.Context, prefix string) (Todo, error) {
	todos := s.Todos(ctx)
	i, err := findByPrefix(len(todos), func(i int) string { return todos[i].ID }, prefix)
	if err != nil {
		return Todo{}, err
	}
	todos[i].Completed = !todos[i].Completed
	s.setJSON(ctx, KeyTodos, todos)
	return todos[i], nil
}

// RemoveTodo deletes the todo whose id starts with prefix.
func (s *Store) RemoveTodo(ctx context.Context, prefix string) (Todo, error) {
	todos := s.Todos(ctx)
	i, err := findByPrefix(len(todos), func(i int) string { return todos[i].ID }, prefix)
	if err != nil {
		return Todo{}, err
	}
	removed := todos[i]
	s.setJSON(ctx, KeyTodos, slices.Delete(todos, i, i+1))
	return removed, nil
}

// QuickLinks returns the quick links in order.
func (s *Store) QuickLinks(ctx context.Context) []QuickLink {
	var links []QuickLink
	if !s.getJSON(ctx, KeyQuickLinks, &links) {
		return nil
	}
	return links
}

// AddQuickLink appends a link. A URL without a scheme gets https://.
func (s *Store) AddQuickLink(ctx context.Context, name, rawURL string) (QuickLink, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return QuickLink{}, ErrTextEmpty
	}
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return QuickLink{}, err
	}
	link := QuickLink{ID: newID(), Name: name, URL: normalized}
	links := append(s.QuickLinks(ctx), link)
	s.setJSON(ctx, KeyQuickLinks, links)
	return link, nil
}

// RemoveQuickLink deletes the link whose id starts with prefix.
func (s *Store) RemoveQuickLink(ctx context.Context, prefix string) (QuickLink, error) {
	links := s.QuickLinks(ctx)
	i, err := findByPrefix(len(links), func(i int) string { return links[i].ID }, prefix)
	if err != nil {
		return QuickLink{}, err
	}
	removed := links[i]
	s.setJSON(ctx, KeyQuickLinks, slices.Delete(links, i, i+1))
	return removed, nil
}

// NormalizeURL checks rawURL and prefixes https:// when no scheme is given.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrInvalidURL
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return u.String(), nil
}

// Background returns the chosen background, or the default one.
func (s *Store) Background(ctx context.Context) Background {
	var bg Background
	if !s.getJSON(ctx, KeyBackground, &bg) || validateBackground(bg) != nil {
		return DefaultBackground()
	}
	return bg
}

// SetPresetBackground selects a built-in background.
func (s *Store) SetPresetBackground(ctx context.Context, preset string) error {
	if !slices.Contains(Presets, preset) {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	s.setJSON(ctx, KeyBackground, Background{Type: BackgroundPreset, Preset: preset})
	return nil
}

// SetCustomBackground stores image bytes as a data URI.
func (s *Store) SetCustomBackground(ctx context.Context, image []byte) error {
	if len(image) > MaxImageBytes {
		return fmt.Errorf("%w (max %d MiB)", ErrImageTooLarge, MaxImageBytes>>20)
	}
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("%w: detected %s", ErrNotAnImage, mime)
	}
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
	s.setJSON(ctx, KeyBackground, Background{Type: BackgroundCustom, Image: uri})
	return nil
}

// getJSON decodes the JSON value at key into v and reports whether it could.
// Callers discard v on false since a failed decode may have filled it partly.
func (s *Store) getJSON(ctx context.Context, key string, v any) bool {
	raw, ok := s.kv.Get(ctx, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("ignoring unreadable stored value", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (s *Store) setJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encoding stored value", slog.String("key", key), slog.Any("error", err))
		return
	}
	s.kv.Set(ctx, key, string(data))
}

func newID() string {
	return uuid.NewString()
}

// findByPrefix returns the single index whose id starts with prefix.
func findByPrefix(n int, id func(int) string, prefix string) (int, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return -1, ErrNotFound
	}
	found := -1
	for i := 0; i < n; i++ {
		if !strings.HasPrefix(id(i), prefix) {
			continue
		}
		if id(i) == prefix {
			return i, nil
		}
		if found >= 0 {
			return -1, ErrAmbiguousID
		}
		found = i
	}
	if found < 0 {
		return -1, ErrNotFound
	}
	return found, nil
}
