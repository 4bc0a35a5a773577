package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Lavender is the default high-contrast theme
var Lavender = Theme{
	Name: "Lavender",

	Background:    lipgloss.Color("#1e1b2e"),
	Foreground:    lipgloss.Color("#f4f1ff"),
	ForegroundDim: lipgloss.Color("#a59cc9"),

	Primary:   lipgloss.Color("#c4a7ff"),
	Secondary: lipgloss.Color("#8fc1ff"),

	Success: lipgloss.Color("#8fe3a5"),
	Warning: lipgloss.Color("#ffd27a"),
	Error:   lipgloss.Color("#ff7a8a"),

	Border:      lipgloss.Color("#4b4470"),
	BorderFocus: lipgloss.Color("#c4a7ff"),
	Selection:   lipgloss.Color("#3d3563"),
}

// Current holds the active theme
var Current = Lavender

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI.
// Screens share one *Styles; replacing its value restyles every screen.
type Styles struct {
	// Scale is the text scale multiplier the styles were built for
	Scale float64

	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Done         lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style
	ButtonDanger  lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Popups
	Popup lipgloss.Style

	// Bottom navigation
	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Badge lipgloss.Style
}

// Large reports whether the enlarged text setting is active
func (s *Styles) Large() bool {
	return s.Scale > 1
}

// NewStyles creates styles for the current theme at the given text scale.
// Terminals cannot change font size, so large text is rendered bold with
// extra spacing around list rows and controls.
func NewStyles(scale float64) *Styles {
	t := Current
	large := scale > 1

	rowPad := 0
	if large {
		rowPad = 1
	}

	return &Styles{
		Scale: scale,

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(rowPad),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Bold(large),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(rowPad, 2).
			Bold(large),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(rowPad, 2).
			Bold(true),

		Done: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(large),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(rowPad, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(rowPad, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(rowPad, 2).
			Bold(true),

		ButtonDanger: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Error).
			Padding(rowPad, 2).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Bold(large),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1).
			Bold(large),

		Popup: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		NavItem: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(rowPad, 1).
			Bold(large),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(rowPad, 1).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Bold(large),

		Badge: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Warning).
			Padding(0, 1).
			Bold(true),
	}
}
