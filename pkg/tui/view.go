package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/tabfocus/pkg/datekey"
	"github.com/stefanpenner/tabfocus/pkg/report"
	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/timer"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := max(m.width, minWidth)
	h := max(m.height, minHeight)

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(strings.Repeat("─", w)))
	b.WriteString("\n")

	b.WriteString(m.renderFocus(w))
	b.WriteString("\n\n")
	b.WriteString(m.renderTimer())
	b.WriteString("\n\n")

	// Streak and lists side by side when there is room.
	left := m.renderWeek()
	right := m.renderList(w / 2)
	if w >= 80 {
		leftWidth := w / 2
		lines := max(strings.Count(left, "\n"), strings.Count(right, "\n")) + 1
		for i := 0; i < lines; i++ {
			b.WriteString(getLine(left, i, leftWidth))
			b.WriteString(getLine(right, i, w-leftWidth))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(left)
		b.WriteString("\n\n")
		b.WriteString(right)
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Muted.Render(strings.Repeat("─", w)))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := m.theme.Header.Render("tabfocus")
	if t, err := datekey.Parse(m.today); err == nil {
		title += m.theme.HeaderCount.Render("  " + t.Format("Monday, January 2"))
	}

	stats := m.theme.HeaderCount.Render(fmt.Sprintf("🔥 %s  best %d", pluralDays(m.record.Current), m.record.Longest))

	status := ""
	if m.statusVisible() {
		style := m.theme.Status
		if m.statusIsError {
			style = m.theme.Error
		}
		status = style.Render(m.statusMsg) + "  "
	}

	gap := max(width-lipgloss.Width(title)-lipgloss.Width(stats)-lipgloss.Width(status), 1)
	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderFocus(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render(IconFocus + " TODAY'S FOCUS"))
	b.WriteString("\n")

	switch {
	case m.input == inputFocus:
		b.WriteString(m.theme.InputPrompt.Render("> "))
		b.WriteString(m.textInput.View())
	case m.focus == "":
		b.WriteString(m.theme.Muted.Render("What is your main focus for today? (press f)"))
	default:
		b.WriteString(m.theme.Text.Render(truncate(m.focus, width-2)))
	}

	if m.celebrating {
		b.WriteString("\n")
		b.WriteString(m.theme.Celebrate.Render(IconFireworks + "  Well done!  " + IconFireworks))
	}
	return b.String()
}

func (m Model) renderTimer() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("TIMER"))
	b.WriteString("\n")

	b.WriteString(m.theme.Clock.Render(timer.FormatClock(m.snap.Remaining)))
	b.WriteString("  ")
	b.WriteString(m.bar.ViewAs(m.snap.Elapsed()))
	b.WriteString("  ")

	label := "ready"
	switch {
	case m.snap.Running():
		label = "running"
	case m.snap.State == timer.Expired:
		label = "done"
	case m.snap.Paused():
		label = "paused"
	}
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%s · %d min", label, m.snap.Total/60)))
	return b.String()
}

func (m Model) renderWeek() string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render("THIS WEEK"))
	b.WriteString("\n")

	for _, d := range m.week {
		label := d.Key
		if t, err := datekey.Parse(d.Key); err == nil {
			label = t.Format("Mon")
		}
		style := m.theme.Text
		if d.IsToday {
			style = m.theme.Today
		}
		bar := lipgloss.NewStyle().Foreground(m.theme.Accent).Render(report.Bar(d.Height, 12))
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		b.WriteString(bar)
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf(" %d", d.Count)))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%d completed total", m.record.TotalCompleted)))
	return b.String()
}

func (m Model) renderList(width int) string {
	var b strings.Builder

	if len(m.items) == 0 && m.input != inputTodo && m.input != inputLink {
		b.WriteString(m.theme.Muted.Render("No todos or links yet. Press a or L to add one."))
	}

	for i, item := range m.items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderItem(item, i == m.cursor, width))
	}

	if m.input == inputTodo || m.input == inputLink {
		if len(m.items) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.theme.InputPrompt.Render("+ "))
		b.WriteString(m.textInput.View())
	}
	return b.String()
}

func (m Model) renderItem(item ListItem, isSelected bool, width int) string {
	if item.IsSectionHeader() {
		return m.theme.Section.Render(item.Name)
	}

	var line string
	style := m.theme.Incomplete
	switch item.Kind {
	case KindTodo:
		icon := IconIncomplete
		if item.Todo.Completed {
			icon = IconComplete
			style = m.theme.Complete
		}
		line = icon + " " + item.Name
	case KindLink:
		line = IconLink + " " + item.Name + m.theme.Muted.Render("  "+hostOf(item.Link.URL))
	}

	line = truncate(line, width-2)
	if isSelected {
		return m.theme.Selected.Render(" " + line + " ")
	}
	return " " + style.Render(line)
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	if m.input != inputNone {
		help = "enter confirm  esc cancel"
	}
	return m.theme.Footer.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(m.theme.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(m.theme.Text.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Background: " + backgroundLabel(m.background)))
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Render("Press Esc or ? to close"))

	return m.theme.Modal.Render(b.String())
}

// Helper functions

func hostOf(raw string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

func truncate(s string, width int) string {
	if width < 2 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := max((height-len(modalLines))/2, 0)
	leftPadding := max((width-lipgloss.Width(modalLines[0]))/2, 0)

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}
	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}
	return result.String()
}

// backgroundLabel describes the stored background for the status line.
func backgroundLabel(bg store.Background) string {
	if bg.Type == store.BackgroundCustom {
		return "custom image"
	}
	return bg.Preset
}
