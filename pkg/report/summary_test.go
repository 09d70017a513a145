package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/tabfocus/pkg/datekey"
	"github.com/stefanpenner/tabfocus/pkg/kv"
	"github.com/stefanpenner/tabfocus/pkg/store"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	fb, err := kv.NewFileBackend(filepath.Join(t.TempDir(), "local"))
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	return store.NewStore(t.TempDir(), kv.NewStore(nil, fb, nil), datekey.NewSource(clock), nil)
}

func TestMarkdown(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	md := Markdown(ctx, s, 25)
	assert.Contains(t, md, "# 2024-01-10")
	assert.Contains(t, md, "No focus set")
	assert.NotContains(t, md, "## Todos")

	_, err := s.SetFocus(ctx, "plan the week")
	require.NoError(t, err)
	_, err = s.AddTodo(ctx, "water plants")
	require.NoError(t, err)
	_, err = s.AddQuickLink(ctx, "News", "news.example.com")
	require.NoError(t, err)
	s.Streak().Complete(ctx)

	md = Markdown(ctx, s, 25)
	assert.Contains(t, md, "**Focus:** plan the week")
	assert.Contains(t, md, "**Streak:** 1 day(s)")
	assert.Contains(t, md, "| 2024-01-10 (today) | 1 | ██████████ |")
	assert.Contains(t, md, "- [ ] water plants")
	assert.Contains(t, md, "[News](https://news.example.com)")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░", Bar(0, 4))
	assert.Equal(t, "██░░", Bar(0.5, 4))
	assert.Equal(t, "████", Bar(1, 4))
	assert.Equal(t, "████", Bar(3, 4))
}

func TestRender(t *testing.T) {
	out, err := Render("# Hello\n\nworld\n", 40, true)
	require.NoError(t, err)
	assert.Contains(t, out, "world")
}
