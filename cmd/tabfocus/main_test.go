package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/streak"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root, a := newRootCmd()
	defer a.close()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--dir", dir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFocusCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "focus")
	require.NoError(t, err)
	assert.Contains(t, out, "No focus set")

	out, err = runCLI(t, dir, "focus", "set", "write", "the", "tests")
	require.NoError(t, err)
	assert.Contains(t, out, "Focus set: write the tests")

	out, err = runCLI(t, dir, "focus")
	require.NoError(t, err)
	assert.Equal(t, "write the tests\n", out)

	out, err = runCLI(t, dir, "--json", "focus", "done")
	require.NoError(t, err)
	var rec streak.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 1, rec.TotalCompleted)

	_, err = runCLI(t, dir, "focus", "done")
	assert.Error(t, err, "focus was cleared by completing it")

	_, err = runCLI(t, dir, "focus", "set", " ")
	assert.ErrorIs(t, err, store.ErrFocusEmpty)
}

func TestStreakCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "focus", "set", "x")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "focus", "done")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "--json", "streak")
	require.NoError(t, err)
	var got struct {
		Streak streak.Record `json:"streak"`
		Week   []dayJSON     `json:"week"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Streak.Current)
	require.Len(t, got.Week, streak.WindowDays)
	assert.True(t, got.Week[6].IsToday)
	assert.Equal(t, 1, got.Week[6].Count)
	assert.Equal(t, 1.0, got.Week[6].Height)

	out, err = runCLI(t, dir, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "Current: 1  Longest: 1  Total: 1")
}

func TestTimerCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "timer")
	require.NoError(t, err)
	assert.Contains(t, out, "Timer: 25 min (25:00)")

	out, err = runCLI(t, dir, "timer", "set", "45")
	require.NoError(t, err)
	assert.Contains(t, out, "45:00")

	out, err = runCLI(t, dir, "--json", "timer", "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"minutes":45}`, out)

	for _, bad := range []string{"0", "181", "ten"} {
		_, err = runCLI(t, dir, "timer", "set", bad)
		assert.Error(t, err, bad)
	}
}

func TestDarkCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "dark", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Dark mode: on")

	out, err = runCLI(t, dir, "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Dark mode: on")

	_, err = runCLI(t, dir, "dark", "maybe")
	assert.Error(t, err)
}

func TestTodoCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "--json", "todo", "add", "buy", "milk")
	require.NoError(t, err)
	var todo store.Todo
	require.NoError(t, json.Unmarshal([]byte(out), &todo))
	assert.Equal(t, "buy milk", todo.Text)

	out, err = runCLI(t, dir, "todo", "done", todo.ID[:6])
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk: complete")

	out, err = runCLI(t, dir, "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+todo.ID[:8])

	_, err = runCLI(t, dir, "todo", "rm", todo.ID)
	require.NoError(t, err)
	out, err = runCLI(t, dir, "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos.")

	_, err = runCLI(t, dir, "todo", "rm", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLinkCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "--json", "link", "add", "Go", "docs", "go.dev")
	require.NoError(t, err)
	var link store.QuickLink
	require.NoError(t, json.Unmarshal([]byte(out), &link))
	assert.Equal(t, "Go docs", link.Name)
	assert.Equal(t, "https://go.dev", link.URL)

	_, err = runCLI(t, dir, "link", "add", "bad", "ftp://example.com")
	assert.ErrorIs(t, err, store.ErrInvalidURL)

	_, err = runCLI(t, dir, "link", "rm", link.ID[:4])
	require.NoError(t, err)
	out, err = runCLI(t, dir, "link")
	require.NoError(t, err)
	assert.Contains(t, out, "No quick links.")
}

func TestBackgroundCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "background")
	require.NoError(t, err)
	assert.Contains(t, out, "Background: default")

	out, err = runCLI(t, dir, "background", "preset", "forest")
	require.NoError(t, err)
	assert.Contains(t, out, "Background: forest")

	_, err = runCLI(t, dir, "background", "preset", "lava")
	assert.ErrorIs(t, err, store.ErrUnknownPreset)

	img := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR"), 0644))
	out, err = runCLI(t, dir, "background", "image", img)
	require.NoError(t, err)
	assert.Contains(t, out, "custom image")
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	_, err := runCLI(t, src, "focus", "set", "ship it")
	require.NoError(t, err)
	_, err = runCLI(t, src, "todo", "add", "one")
	require.NoError(t, err)
	_, err = runCLI(t, src, "timer", "set", "50")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "backup.yaml")
	out, err := runCLI(t, src, "export", "--format", "yaml", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+file)

	_, err = runCLI(t, src, "export", "--format", "xml", "-o", file)
	assert.Error(t, err)

	dst := t.TempDir()
	out, err = runCLI(t, dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 todo(s), 0 link(s)")

	out, err = runCLI(t, dst, "focus")
	require.NoError(t, err)
	assert.Equal(t, "ship it\n", out)
	out, err = runCLI(t, dst, "--json", "timer")
	require.NoError(t, err)
	assert.JSONEq(t, `{"minutes":50}`, out)
}

func TestExportToStdout(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "export", "-o", "-")
	require.NoError(t, err)

	b, err := store.ReadBundle([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 25, b.TimerMinutes)
	assert.False(t, b.ExportedAt.IsZero())
}

func TestSummaryRaw(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "focus", "set", "read a paper")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "summary", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "**Focus:** read a paper")
	assert.Contains(t, out, "## Last 7 days")
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "frobnicate")
	assert.Error(t, err)
}
