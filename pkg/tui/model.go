package tui

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/tabfocus/pkg/config"
	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/streak"
	"github.com/stefanpenner/tabfocus/pkg/timer"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// DayChangedMsg is sent by the rollover job at local midnight.
type DayChangedMsg struct{}

// TimerTickMsg carries the countdown state after each tick.
type TimerTickMsg struct {
	Snapshot timer.Snapshot
}

// TimerDoneMsg is sent once when the countdown expires.
type TimerDoneMsg struct{}

// LinkOpenedMsg is sent when the browser launch returns.
type LinkOpenedMsg struct {
	Err error
}

type statusExpiredMsg struct{}

type celebrationEndMsg struct {
	seq int
}

type darkModeSaveMsg struct {
	seq  int
	dark bool
}

type inputMode int

const (
	inputNone inputMode = iota
	inputFocus
	inputTodo
	inputLink
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx     context.Context
	store   *store.Store
	timer   *timer.Timer
	cfg     *config.Config
	keys    KeyMap
	now     func() time.Time
	openURL func(string) error

	width  int
	height int

	today      string
	focus      string
	record     streak.Record
	week       []streak.Day
	snap       timer.Snapshot
	items      []ListItem
	cursor     int
	background store.Background
	theme      Theme
	bar        progress.Model

	// Dark mode is applied at once and persisted after a short debounce.
	dark        bool
	darkSeq     int
	darkPending bool

	input     inputMode
	textInput textinput.Model

	showHelpModal bool

	// Status message
	statusMsg     string
	statusIsError bool
	statusTimeout time.Time

	celebrating  bool
	celebrateSeq int
}

// NewModel creates a new TUI model and loads the stored state.
func NewModel(ctx context.Context, s *store.Store, tm *timer.Timer, cfg *config.Config) Model {
	ti := textinput.New()

	m := Model{
		ctx:       ctx,
		store:     s,
		timer:     tm,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		now:       time.Now,
		openURL:   openInBrowser,
		textInput: ti,
		bar:       progress.New(progress.WithSolidFill(string(ColorPurple)), progress.WithoutPercentage()),
		cursor:    -1,
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width-24, 10)
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.reload()
		return m, nil

	case DayChangedMsg:
		m.reload()
		cmd := m.setStatus("Good morning, it's " + m.today)
		return m, cmd

	case TimerTickMsg:
		m.snap = msg.Snapshot
		return m, nil

	case TimerDoneMsg:
		rec := m.store.Streak().Complete(m.ctx)
		m.reload()
		cmd := tea.Batch(
			m.setStatus("Time's up! Streak: "+pluralDays(rec.Current)),
			m.celebrate(),
		)
		return m, cmd

	case LinkOpenedMsg:
		if msg.Err != nil {
			cmd := m.setError("Could not open link: " + msg.Err.Error())
			return m, cmd
		}
		return m, nil

	case statusExpiredMsg:
		return m, nil

	case celebrationEndMsg:
		if msg.seq == m.celebrateSeq {
			m.celebrating = false
		}
		return m, nil

	case darkModeSaveMsg:
		if msg.seq == m.darkSeq {
			m.store.SetDarkMode(m.ctx, msg.dark)
			m.darkPending = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.input != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInput(msg)
	}

	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if i := nextSelectable(m.items, m.cursor-1, -1); i >= 0 {
			m.cursor = i
		}

	case key.Matches(msg, m.keys.Down):
		if i := nextSelectable(m.items, m.cursor+1, 1); i >= 0 {
			m.cursor = i
		}

	case key.Matches(msg, m.keys.Enter):
		item, ok := m.selected()
		if !ok {
			break
		}
		switch item.Kind {
		case KindTodo:
			if _, err := m.store.ToggleTodo(m.ctx, item.ID); err != nil {
				cmd := m.setError("Error: " + err.Error())
				return m, cmd
			}
			m.reload()
		case KindLink:
			url, open := item.Link.URL, m.openURL
			cmd := tea.Batch(m.setStatus("Opening "+url), func() tea.Msg {
				return LinkOpenedMsg{Err: open(url)}
			})
			return m, cmd
		}

	case key.Matches(msg, m.keys.SetFocus):
		cmd := m.startInput(inputFocus, "What is your main focus for today?", m.focus)
		return m, cmd

	case key.Matches(msg, m.keys.CompleteFocus):
		if m.focus == "" {
			cmd := m.setError("No focus to complete. Press f to set one.")
			return m, cmd
		}
		rec := m.store.CompleteFocus(m.ctx)
		m.reload()
		cmd := tea.Batch(m.setStatus("Focus complete! Streak: "+pluralDays(rec.Current)), m.celebrate())
		return m, cmd

	case key.Matches(msg, m.keys.ClearFocus):
		m.store.ClearFocus(m.ctx)
		m.reload()

	case key.Matches(msg, m.keys.StartPause):
		switch m.snap.State {
		case timer.Running:
			m.snap = m.timer.Pause()
		case timer.Expired:
			cmd := m.setStatus("Timer finished. Press r to reset.")
			return m, cmd
		default:
			m.snap = m.timer.Start()
		}

	case key.Matches(msg, m.keys.ResetTimer):
		m.snap = m.timer.Reset(m.ctx)

	case key.Matches(msg, m.keys.Longer):
		m.snap = m.timer.SetDuration(m.ctx, m.snap.Total/60+5)

	case key.Matches(msg, m.keys.Shorter):
		m.snap = m.timer.SetDuration(m.ctx, m.snap.Total/60-5)

	case key.Matches(msg, m.keys.Presets):
		idx := int(msg.String()[0] - '1')
		if idx < len(m.cfg.DurationPresets) {
			m.snap = m.timer.SetDuration(m.ctx, m.cfg.DurationPresets[idx])
		}

	case key.Matches(msg, m.keys.AddTodo):
		cmd := m.startInput(inputTodo, "new todo", "")
		return m, cmd

	case key.Matches(msg, m.keys.AddLink):
		cmd := m.startInput(inputLink, "name https://example.com", "")
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.selected()
		if !ok {
			break
		}
		var err error
		switch item.Kind {
		case KindTodo:
			_, err = m.store.RemoveTodo(m.ctx, item.ID)
		case KindLink:
			_, err = m.store.RemoveQuickLink(m.ctx, item.ID)
		}
		if err != nil {
			cmd := m.setError("Delete failed: " + err.Error())
			return m, cmd
		}
		m.reload()
		cmd := m.setStatus("Deleted: " + item.Name)
		return m, cmd

	case key.Matches(msg, m.keys.Background):
		next := store.Presets[0]
		if m.background.Type == store.BackgroundPreset {
			i := slices.Index(store.Presets, m.background.Preset)
			next = store.Presets[(i+1)%len(store.Presets)]
		}
		if err := m.store.SetPresetBackground(m.ctx, next); err != nil {
			cmd := m.setError("Error: " + err.Error())
			return m, cmd
		}
		m.reload()
		cmd := m.setStatus("Background: " + next)
		return m, cmd

	case key.Matches(msg, m.keys.DarkMode):
		m.dark = !m.dark
		m.darkPending = true
		m.darkSeq++
		m.applyTheme()
		seq, dark := m.darkSeq, m.dark
		return m, tea.Tick(m.cfg.DarkModeDebounce, func(time.Time) tea.Msg {
			return darkModeSaveMsg{seq: seq, dark: dark}
		})

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		cmd := m.setStatus("Reloaded")
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

func (m *Model) startInput(mode inputMode, placeholder, value string) tea.Cmd {
	m.input = mode
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
	return textinput.Blink
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		m.textInput.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

// submitInput applies the input line. Validation errors keep the input open
// so the user can correct it.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.textInput.Value()
	var status string

	switch m.input {
	case inputFocus:
		focus, err := m.store.SetFocus(m.ctx, value)
		if err != nil {
			cmd := m.setError(capitalize(err.Error()))
			return m, cmd
		}
		status = "Focus set: " + focus

	case inputTodo:
		todo, err := m.store.AddTodo(m.ctx, value)
		if err != nil {
			cmd := m.setError("Please enter a todo")
			return m, cmd
		}
		status = "Added: " + todo.Text

	case inputLink:
		name, url, ok := splitNameURL(value)
		if !ok {
			cmd := m.setError("Enter a name followed by a URL")
			return m, cmd
		}
		link, err := m.store.AddQuickLink(m.ctx, name, url)
		if err != nil {
			cmd := m.setError(capitalize(err.Error()))
			return m, cmd
		}
		status = "Added link: " + link.Name
	}

	m.input = inputNone
	m.textInput.Blur()
	m.reload()
	cmd := m.setStatus(status)
	return m, cmd
}

// splitNameURL reads "some name https://url" into its two parts.
func splitNameURL(s string) (name, url string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", "", false
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], true
}

func (m Model) selected() (ListItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) || m.items[m.cursor].IsSectionHeader() {
		return ListItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) reload() {
	m.today = m.store.Dates().Today()
	m.focus = m.store.Focus(m.ctx)
	m.record = m.store.Streak().Load(m.ctx)
	m.week = streak.Render(m.record, m.today)
	m.background = m.store.Background(m.ctx)
	if !m.darkPending {
		m.dark = m.store.DarkMode(m.ctx)
	}
	m.snap = m.timer.Snapshot()

	var curID string
	if item, ok := m.selected(); ok {
		curID = item.ID
	}
	m.items = BuildListItems(m.store.Todos(m.ctx), m.store.QuickLinks(m.ctx))
	m.cursor = nextSelectable(m.items, 0, 1)
	for i, item := range m.items {
		if curID != "" && item.ID == curID {
			m.cursor = i
			break
		}
	}

	m.applyTheme()
}

func (m *Model) applyTheme() {
	accent := ColorPurple
	if m.background.Type == store.BackgroundPreset {
		accent = accentFor(m.background.Preset)
	}
	m.theme = NewTheme(m.dark, accent)
	width := m.bar.Width
	m.bar = progress.New(progress.WithSolidFill(string(accent)), progress.WithoutPercentage())
	m.bar.Width = width
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusIsError = false
	m.statusTimeout = m.now().Add(m.cfg.StatusTimeout)
	return tea.Tick(m.cfg.StatusTimeout, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

func (m *Model) setError(msg string) tea.Cmd {
	cmd := m.setStatus(msg)
	m.statusIsError = true
	return cmd
}

func (m Model) statusVisible() bool {
	return m.statusMsg != "" && m.now().Before(m.statusTimeout)
}

func (m *Model) celebrate() tea.Cmd {
	m.celebrating = true
	m.celebrateSeq++
	seq := m.celebrateSeq
	return tea.Tick(m.cfg.CelebrationDuration, func(time.Time) tea.Msg {
		return celebrationEndMsg{seq: seq}
	})
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return errors.Join(errors.New("launching browser"), err)
	}
	return cmd.Process.Release()
}
