package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// listenDelay is how long the simulated recognizer "listens"
const listenDelay = 1200 * time.Millisecond

type voiceCommand struct {
	phrase string
	answer func(v *VoiceView) string
}

var voiceCommands = []voiceCommand{
	{"What do I need to do today?", func(v *VoiceView) string {
		var open []string
		for _, t := range v.tasks.Tasks() {
			if !t.Completed {
				open = append(open, t.Title)
			}
		}
		if len(open) == 0 {
			return "You have finished everything for today. Well done!"
		}
		return "You still have: " + strings.Join(open, ", ") + "."
	}},
	{"Did I take my medication?", func(v *VoiceView) string {
		var due []string
		for _, r := range v.reminders.Reminders() {
			if !r.Taken {
				due = append(due, fmt.Sprintf("%s at %s", r.MedicationName, r.Time))
			}
		}
		if len(due) == 0 {
			return "Yes, you have taken all of today's medication."
		}
		return "Not yet: " + strings.Join(due, ", ") + "."
	}},
	{"How many points do I have?", func(v *VoiceView) string {
		return fmt.Sprintf("You have earned %d points today.", models.Summarize(v.tasks.Tasks()).Points)
	}},
	{"Call my family", func(v *VoiceView) string {
		contacts := v.contacts.Contacts()
		if len(contacts) == 0 {
			return "You have no family contacts yet."
		}
		return fmt.Sprintf("Calling %s...", contacts[0].Name)
	}},
}

type heardMsg struct {
	command int
	seq     int
}

// VoiceView simulates voice control with a fixed set of phrases
type VoiceView struct {
	tasks     state.TaskBoard
	reminders state.ReminderBook
	contacts  state.ContactBook
	styles    *styles.Styles
	keys      keys.KeyMap
	width     int
	height    int

	listening bool
	seq       int
	heard     string
	response  string
}

func NewVoiceView(c *state.Container, s *styles.Styles) *VoiceView {
	return &VoiceView{
		tasks:     c,
		reminders: c,
		contacts:  c,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
	}
}

func (v *VoiceView) Init() tea.Cmd {
	v.listening = false
	v.heard = ""
	v.response = ""
	return nil
}

// CapturingInput is always true so digits pick phrases rather than screens
func (v *VoiceView) CapturingInput() bool { return true }

func (v *VoiceView) listen(idx int) tea.Cmd {
	v.listening = true
	v.seq++
	seq := v.seq
	return tea.Tick(listenDelay, func(time.Time) tea.Msg {
		return heardMsg{command: idx, seq: seq}
	})
}

func (v *VoiceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case heardMsg:
		if msg.seq != v.seq || !v.listening {
			return v, nil
		}
		v.listening = false
		cmd := voiceCommands[msg.command]
		v.heard = cmd.phrase
		v.response = cmd.answer(v)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Settings):
			v.listening = false
			return v, send(SetVoiceMode{On: false})
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		}
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(voiceCommands)) {
			return v, v.listen(int(s[0] - '1'))
		}
	}
	return v, nil
}

func (v *VoiceView) View() string {
	s := v.styles
	rows := []string{s.Title.Render("🎤 Voice Control"), ""}

	switch {
	case v.listening:
		rows = append(rows, s.Badge.Render(" Listening... "))
	case v.heard != "":
		rows = append(rows,
			s.TitleMuted.Render("You said: \""+v.heard+"\""),
			"",
			s.Popup.Render(v.response),
		)
	default:
		rows = append(rows, s.TitleMuted.Render("Say one of these:"))
	}

	rows = append(rows, "")
	for i, c := range voiceCommands {
		rows = append(rows, s.ListItem.Render(fmt.Sprintf("%d  %q", i+1, c.phrase)))
	}
	rows = append(rows, helpLine(s, "1-4", "speak", "t", "text size", "!", "SOS", "s", "standard mode", "q", "quit"))

	content := lipgloss.Place(styles.ContentWidth(v.width), v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
	return styles.CenterView(content, v.width, v.height)
}
