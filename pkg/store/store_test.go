package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/tabfocus/pkg/datekey"
	"github.com/stefanpenner/tabfocus/pkg/kv"
	"github.com/stefanpenner/tabfocus/pkg/streak"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func setupTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	dir := t.TempDir()
	kvStore, closeFn, err := kv.Open(filepath.Join(dir, "state.db"), filepath.Join(dir, "local"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	return NewStore(dir, kvStore, datekey.NewSource(clock), nil), clock
}

func TestFocus(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	assert.Equal(t, "", s.Focus(ctx))

	got, err := s.SetFocus(ctx, "  finish the draft  ")
	require.NoError(t, err)
	assert.Equal(t, "finish the draft", got)
	assert.Equal(t, "finish the draft", s.Focus(ctx))
}

func TestFocusValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	_, err := s.SetFocus(ctx, "   ")
	assert.ErrorIs(t, err, ErrFocusEmpty)

	_, err = s.SetFocus(ctx, strings.Repeat("x", 201))
	assert.ErrorIs(t, err, ErrFocusTooLong)

	// Length counts characters, not bytes.
	_, err = s.SetFocus(ctx, strings.Repeat("é", 200))
	assert.NoError(t, err)
}

func TestCompleteFocusRecordsStreak(t *testing.T) {
	ctx := context.Background()
	s, clock := setupTestStore(t)

	_, err := s.SetFocus(ctx, "day one")
	require.NoError(t, err)
	rec := s.CompleteFocus(ctx)
	assert.Equal(t, "", s.Focus(ctx))
	assert.Equal(t, 1, rec.Current)

	clock.Advance(24 * time.Hour)
	_, err = s.SetFocus(ctx, "day two")
	require.NoError(t, err)
	rec = s.CompleteFocus(ctx)
	assert.Equal(t, 2, rec.Current)
	assert.Equal(t, 2, rec.TotalCompleted)
}

func TestDarkMode(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	assert.False(t, s.DarkMode(ctx))
	s.SetDarkMode(ctx, true)
	assert.True(t, s.DarkMode(ctx))
	s.SetDarkMode(ctx, false)
	assert.False(t, s.DarkMode(ctx))
}

func TestTimerMinutes(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	assert.Equal(t, 25, s.TimerMinutes(ctx, 25))
	s.SaveTimerMinutes(ctx, 45)
	assert.Equal(t, 45, s.TimerMinutes(ctx, 25))
}

func TestTodos(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	a, err := s.AddTodo(ctx, "buy milk")
	require.NoError(t, err)
	b, err := s.AddTodo(ctx, "call mom")
	require.NoError(t, err)
	_, err = s.AddTodo(ctx, " ")
	assert.ErrorIs(t, err, ErrTextEmpty)

	todos := s.Todos(ctx)
	require.Len(t, todos, 2)
	assert.Equal(t, "buy milk", todos[0].Text)

	toggled, err := s.ToggleTodo(ctx, a.ID[:8])
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.True(t, s.Todos(ctx)[0].Completed)

	_, err = s.RemoveTodo(ctx, b.ID)
	require.NoError(t, err)
	todos = s.Todos(ctx)
	require.Len(t, todos, 1)
	assert.Equal(t, a.ID, todos[0].ID)

	_, err = s.ToggleTodo(ctx, "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuickLinks(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	link, err := s.AddQuickLink(ctx, "Docs", "go.dev/doc")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/doc", link.URL)

	_, err = s.AddQuickLink(ctx, "Bad", "ftp://example.com")
	assert.ErrorIs(t, err, ErrInvalidURL)
	_, err = s.AddQuickLink(ctx, "", "example.com")
	assert.ErrorIs(t, err, ErrTextEmpty)

	require.Len(t, s.QuickLinks(ctx), 1)
	_, err = s.RemoveQuickLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Empty(t, s.QuickLinks(ctx))
}

func TestBackground(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	assert.Equal(t, DefaultBackground(), s.Background(ctx))

	require.NoError(t, s.SetPresetBackground(ctx, "forest"))
	assert.Equal(t, Background{Type: BackgroundPreset, Preset: "forest"}, s.Background(ctx))
	assert.ErrorIs(t, s.SetPresetBackground(ctx, "lava"), ErrUnknownPreset)

	require.NoError(t, s.SetCustomBackground(ctx, pngHeader))
	bg := s.Background(ctx)
	assert.Equal(t, BackgroundCustom, bg.Type)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), bg.Image)
	assert.Empty(t, bg.Preset, "custom background carries no preset")

	assert.ErrorIs(t, s.SetCustomBackground(ctx, []byte("plain text")), ErrNotAnImage)
	assert.ErrorIs(t, s.SetCustomBackground(ctx, make([]byte, MaxImageBytes+1)), ErrImageTooLarge)
}

func TestFindByPrefix(t *testing.T) {
	ids := []string{"abc1", "abc2", "abd"}
	get := func(i int) string { return ids[i] }

	i, err := findByPrefix(len(ids), get, "abd")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = findByPrefix(len(ids), get, "abc")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	i, err = findByPrefix(len(ids), get, "abc2")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = findByPrefix(len(ids), get, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	s, clock := setupTestStore(t)

	_, err := s.SetFocus(ctx, "write tests")
	require.NoError(t, err)
	s.SetDarkMode(ctx, true)
	s.SaveTimerMinutes(ctx, 50)
	_, err = s.AddTodo(ctx, "review PR")
	require.NoError(t, err)
	_, err = s.AddQuickLink(ctx, "Mail", "https://mail.example.com")
	require.NoError(t, err)
	s.Streak().Complete(ctx)

	bundle := s.Export(ctx, clock.Now(), 25)
	assert.Equal(t, "write tests", bundle.DailyFocus)
	assert.True(t, bundle.DarkMode)
	assert.Equal(t, 50, bundle.TimerMinutes)
	assert.Equal(t, 1, bundle.StreakData.Current)
	assert.Equal(t, "tabfocus-export-2024-01-10.json", ExportFilename(s.Dates().Today(), FormatJSON))

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteBundle(&buf, bundle, format))

			read, err := ReadBundle(buf.Bytes())
			require.NoError(t, err)
			assert.True(t, bundle.ExportedAt.Equal(read.ExportedAt))

			other, _ := setupTestStore(t)
			require.NoError(t, other.Import(ctx, read))
			assert.Equal(t, "write tests", other.Focus(ctx))
			assert.True(t, other.DarkMode(ctx))
			assert.Equal(t, 50, other.TimerMinutes(ctx, 25))
			assert.Equal(t, bundle.Todos, other.Todos(ctx))
			assert.Equal(t, bundle.StreakData, other.Streak().Load(ctx))
		})
	}
}

func TestImportNormalizesStreak(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	b := Bundle{
		Background: DefaultBackground(),
		StreakData: streak.Record{
			Current:        9,
			Longest:        2,
			LastCompleted:  "2024-01-10",
			TotalCompleted: 9,
			WeeklyHistory:  map[string]int{"1999-01-01": 5, "garbage": 3, "2024-01-10": 1},
		},
	}
	require.NoError(t, s.Import(ctx, b))

	rec := s.Streak().Load(ctx)
	assert.Equal(t, 9, rec.Current)
	assert.Equal(t, 9, rec.Longest)
	assert.Equal(t, map[string]int{"2024-01-10": 1}, rec.WeeklyHistory)

	b.StreakData.TotalCompleted = -4
	assert.ErrorIs(t, s.Import(ctx, b), streak.ErrInvalidRecord)
}

func TestImportRejectsInvalidValues(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	_, err := s.AddQuickLink(ctx, "Mail", "mail.example.com")
	require.NoError(t, err)
	s.SaveTimerMinutes(ctx, 30)

	valid := func() Bundle { return Bundle{Background: DefaultBackground(), TimerMinutes: 25} }

	cases := map[string]struct {
		mutate func(*Bundle)
		err    error
	}{
		"file link":       {func(b *Bundle) { b.QuickLinks = []QuickLink{{Name: "pw", URL: "file:///etc/passwd"}} }, ErrInvalidURL},
		"javascript link": {func(b *Bundle) { b.QuickLinks = []QuickLink{{Name: "x", URL: "javascript:alert(1)"}} }, ErrInvalidURL},
		"unnamed link":    {func(b *Bundle) { b.QuickLinks = []QuickLink{{URL: "https://go.dev"}} }, ErrTextEmpty},
		"empty todo":      {func(b *Bundle) { b.Todos = []Todo{{ID: "t1", Text: "  "}} }, ErrTextEmpty},
		"long focus":      {func(b *Bundle) { b.DailyFocus = strings.Repeat("x", 201) }, ErrFocusTooLong},
		"unknown preset":  {func(b *Bundle) { b.Background.Preset = "lava" }, ErrUnknownPreset},
		"custom not image": {func(b *Bundle) {
			b.Background = Background{Type: BackgroundCustom, Image: "https://example.com/a.png"}
		}, ErrNotAnImage},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := valid()
			tc.mutate(&b)
			assert.ErrorIs(t, s.Import(ctx, b), tc.err)
		})
	}

	for _, minutes := range []int{-5, 181, 999} {
		b := valid()
		b.TimerMinutes = minutes
		assert.Error(t, s.Import(ctx, b), "minutes %d", minutes)
	}

	// Rejected imports leave the existing data alone.
	links := s.QuickLinks(ctx)
	require.Len(t, links, 1)
	assert.Equal(t, "https://mail.example.com", links[0].URL)
	assert.Equal(t, 30, s.TimerMinutes(ctx, 25))
}

func TestImportNormalizesLinks(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	require.NoError(t, s.Import(ctx, Bundle{
		Background: DefaultBackground(),
		QuickLinks: []QuickLink{{Name: " Docs ", URL: "go.dev"}},
	}))
	links := s.QuickLinks(ctx)
	require.Len(t, links, 1)
	assert.Equal(t, "Docs", links[0].Name)
	assert.Equal(t, "https://go.dev", links[0].URL)
	assert.NotEmpty(t, links[0].ID)
	assert.Equal(t, 30, s.TimerMinutes(ctx, 30), "zero minutes leaves the duration unset")
}

func TestWriteBundleUnknownFormat(t *testing.T) {
	assert.Error(t, WriteBundle(&bytes.Buffer{}, Bundle{}, "xml"))
}

func TestReadBundleRejectsGarbage(t *testing.T) {
	_, err := ReadBundle([]byte("  "))
	assert.Error(t, err)
	_, err = ReadBundle([]byte("{broken"))
	assert.Error(t, err)
}
