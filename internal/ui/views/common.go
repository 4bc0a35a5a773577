package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/api"
	"github.com/tgienger/kinfolk/internal/nav"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// Messages emitted by screens for the App to act on

// Alert asks the App to show a blocking message
type Alert struct {
	Text string
}

// Navigate asks the App to switch screens
type Navigate struct {
	Screen nav.Screen
}

type LoginSubmitted struct {
	Request api.LoginRequest
}

type SignupSubmitted struct {
	Request api.SignupRequest
}

// ShowSignup and ShowLogin switch between the two auth forms
type ShowSignup struct{}
type ShowLogin struct{}

// SetVoiceMode asks the App to enter (true) or leave (false) voice mode
type SetVoiceMode struct {
	On bool
}

// ToggleTextScale asks the App to flip the global text size
type ToggleTextScale struct{}

// InputCapturer is implemented by screens that can hold keyboard focus in a
// form. While capturing, the App does not interpret global shortcuts.
type InputCapturer interface {
	CapturingInput() bool
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func alert(format string, args ...any) tea.Cmd {
	return send(Alert{Text: fmt.Sprintf(format, args...)})
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// moveCursor steps cursor by delta within [0, n)
func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return clamp(cursor+delta, 0, n-1)
}

// helpLine renders "key desc • key desc" pairs
func helpLine(s *styles.Styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+s.HelpDesc.Render(pairs[i+1]))
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

// header renders a screen title with an optional subtitle
func header(s *styles.Styles, title, subtitle string) string {
	if subtitle == "" {
		return s.Title.Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		s.TitleMuted.Render(subtitle),
	)
}

// confirmBox renders a centered yes/no prompt
func confirmBox(s *styles.Styles, width, height int, question, detail string) string {
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(question),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// emptyState renders a centered placeholder for an empty list
func emptyState(s *styles.Styles, width, height int, title, hint string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(title),
		"",
		s.TitleMuted.Render(hint),
	)
	return lipgloss.Place(styles.ContentWidth(width), max(height-8, 5),
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
