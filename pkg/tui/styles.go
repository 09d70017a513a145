package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorInk         = lipgloss.Color("#1F1F1F")
	ColorPaper       = lipgloss.Color("#F4F1EA")
	ColorMagenta     = lipgloss.Color("#C678DD")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
)

// presetAccents maps background presets to the accent used for headings and
// the timer bar.
var presetAccents = map[string]lipgloss.Color{
	"default":  ColorPurple,
	"sunrise":  ColorOrange,
	"forest":   ColorGreen,
	"ocean":    ColorBlue,
	"midnight": ColorMagenta,
	"paper":    ColorGray,
}

// Theme is the set of styles for one light/dark mode and accent.
type Theme struct {
	Accent lipgloss.Color

	Header      lipgloss.Style
	HeaderCount lipgloss.Style
	Footer      lipgloss.Style
	Section     lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Complete    lipgloss.Style
	Incomplete  lipgloss.Style
	Today       lipgloss.Style
	Error       lipgloss.Style
	Status      lipgloss.Style
	Celebrate   lipgloss.Style
	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	InputPrompt lipgloss.Style
	Clock       lipgloss.Style
}

// NewTheme builds the styles for dark or light mode around accent.
func NewTheme(dark bool, accent lipgloss.Color) Theme {
	text, clock, muted, dim := ColorInk, ColorInk, ColorGray, ColorOffWhite
	selBg := ColorPaper
	if dark {
		text, clock, muted, dim = ColorOffWhite, ColorWhite, ColorGray, ColorGrayDim
		selBg = ColorSelectionBg
	}

	return Theme{
		Accent:      accent,
		Header:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		HeaderCount: lipgloss.NewStyle().Foreground(muted),
		Footer:      lipgloss.NewStyle().Foreground(muted),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Text:        lipgloss.NewStyle().Foreground(text),
		Muted:       lipgloss.NewStyle().Foreground(dim),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(text).Background(selBg),
		Complete:    lipgloss.NewStyle().Foreground(ColorGreen),
		Incomplete:  lipgloss.NewStyle().Foreground(text),
		Today:       lipgloss.NewStyle().Bold(true).Foreground(ColorRed),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(ColorRed),
		Status:      lipgloss.NewStyle().Foreground(ColorCyan),
		Celebrate:   lipgloss.NewStyle().Bold(true).Foreground(ColorYellow),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		ModalTitle:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		InputPrompt: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Clock:       lipgloss.NewStyle().Bold(true).Foreground(clock),
	}
}

// accentFor picks the accent for a stored background preset.
func accentFor(preset string) lipgloss.Color {
	if c, ok := presetAccents[preset]; ok {
		return c
	}
	return ColorPurple
}

// Icons
const (
	IconComplete   = "✓"
	IconIncomplete = "○"
	IconLink       = "↗"
	IconFocus      = "◎"
	IconFireworks  = "✦ ✧ ✦"
)
