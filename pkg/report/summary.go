// Package report renders a plain-text daily summary of the dashboard as
// markdown, for terminals that are not running the TUI.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/streak"
)

const barWidth = 10

// Markdown builds the summary document.
func Markdown(ctx context.Context, s *store.Store, timerMinutes int) string {
	today := s.Dates().Today()
	rec := s.Streak().Load(ctx)

	var md strings.Builder
	md.WriteString("# " + today + "\n\n")

	if focus := s.Focus(ctx); focus != "" {
		md.WriteString("**Focus:** " + focus + "\n\n")
	} else {
		md.WriteString("_No focus set for today._\n\n")
	}

	fmt.Fprintf(&md, "**Streak:** %d day(s) | **Longest:** %d | **Total:** %d | **Timer:** %d min\n\n",
		rec.Current, rec.Longest, rec.TotalCompleted, timerMinutes)

	md.WriteString("## Last 7 days\n\n")
	md.WriteString("| Day | Done | |\n|---|---|---|\n")
	for _, d := range streak.Render(rec, today) {
		label := d.Key
		if d.IsToday {
			label += " (today)"
		}
		fmt.Fprintf(&md, "| %s | %d | %s |\n", label, d.Count, Bar(d.Height, barWidth))
	}
	md.WriteString("\n")

	if todos := s.Todos(ctx); len(todos) > 0 {
		md.WriteString("## Todos\n\n")
		for _, t := range todos {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&md, "- %s %s `%s`\n", box, t.Text, shortID(t.ID))
		}
		md.WriteString("\n")
	}

	if links := s.QuickLinks(ctx); len(links) > 0 {
		md.WriteString("## Quick links\n\n")
		for _, l := range links {
			fmt.Fprintf(&md, "- [%s](%s)\n", l.Name, l.URL)
		}
		md.WriteString("\n")
	}

	return md.String()
}

// Render pretty-prints markdown for a terminal of the given width.
func Render(md string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(md)
}

// Bar draws height (0..1) as a bar of block characters.
func Bar(height float64, width int) string {
	filled := int(height*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
