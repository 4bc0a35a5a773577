package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

type field struct {
	label string
	input textinput.Model
	// initial is restored on reset
	initial string
}

func newField(label, placeholder string, limit int) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return field{label: label, input: in}
}

func newPasswordField(label string) field {
	f := newField(label, "Password", 100)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func (f field) withDefault(v string) field {
	f.initial = v
	f.input.SetValue(v)
	return f
}

// form is a vertical stack of inputs followed by a submit button.
// Focus index len(fields) is the button.
type form struct {
	title  string
	submit string
	fields []field
	focus  int
}

func newForm(title, submit string, fields ...field) *form {
	f := &form{title: title, submit: submit, fields: fields}
	f.updateFocus()
	return f
}

// reset clears every field and focuses the first one
func (f *form) reset() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.SetValue(f.fields[i].initial)
	}
	f.focus = 0
	f.updateFocus()
	return textinput.Blink
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) updateFocus() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	if f.focus < len(f.fields) {
		f.fields[f.focus].input.Focus()
	}
}

// update handles a key press and reports whether the form was submitted
func (f *form) update(msg tea.KeyMsg, km keys.KeyMap) (bool, tea.Cmd) {
	n := len(f.fields) + 1

	switch {
	case key.Matches(msg, km.Save):
		return true, nil

	case key.Matches(msg, km.ShiftTab), msg.Type == tea.KeyUp:
		f.focus = (f.focus + n - 1) % n
		f.updateFocus()
		return false, nil

	case key.Matches(msg, km.Tab), msg.Type == tea.KeyDown:
		f.focus = (f.focus + 1) % n
		f.updateFocus()
		return false, nil

	case key.Matches(msg, km.Enter):
		if f.focus == len(f.fields) {
			return true, nil
		}
		f.focus++
		f.updateFocus()
		return false, nil
	}

	if f.focus >= len(f.fields) {
		return false, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, cmd
}

// updateInput forwards non-key messages (cursor blink) to the focused input
func (f *form) updateInput(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(s *styles.Styles, width, height int, hint string) string {
	contentWidth := styles.ContentWidth(width)
	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{s.Title.Render(f.title), ""}
	for i, fld := range f.fields {
		style := s.Input
		if i == f.focus {
			style = s.InputFocused
		}
		rows = append(rows, fld.label+":", style.Width(inputWidth).Render(fld.input.View()))
	}

	btn := s.Button
	if f.focus == len(f.fields) {
		btn = s.ButtonFocused
	}
	rows = append(rows, "", btn.Render(" "+f.submit+" "))
	if hint == "" {
		hint = "Tab: next • Ctrl+S: save • Esc: cancel"
	}
	rows = append(rows, "", s.TitleMuted.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}
