package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// DiaryView is a placeholder until diary entries are stored locally
type DiaryView struct {
	styles *styles.Styles
	width  int
	height int
}

func NewDiaryView(s *styles.Styles) *DiaryView {
	return &DiaryView{styles: s}
}

func (v *DiaryView) Init() tea.Cmd { return nil }

func (v *DiaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *DiaryView) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		header(v.styles, "My Diary", "Your private notes and memories"),
		emptyState(v.styles, v.width, v.height, "Nothing written yet", "Diary entries are coming soon"),
	)
	return styles.CenterView(content, v.width, v.height)
}

// ProfileView shows the signed-in user and their progress
type ProfileView struct {
	tasks     state.TaskBoard
	reminders state.ReminderBook
	contacts  state.ContactBook
	user      func() *models.User
	styles    *styles.Styles
	width     int
	height    int
}

func NewProfileView(c *state.Container, user func() *models.User, s *styles.Styles) *ProfileView {
	return &ProfileView{
		tasks:     c,
		reminders: c,
		contacts:  c,
		user:      user,
		styles:    s,
	}
}

func (v *ProfileView) Init() tea.Cmd { return nil }

func (v *ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *ProfileView) View() string {
	s := v.styles
	rows := []string{s.Title.Render("My Profile")}

	if u := v.user(); u != nil {
		rows = append(rows,
			s.ListItem.Render("Name:  "+u.Name),
			s.ListItem.Render("Email: "+u.Email),
		)
		if u.Age > 0 {
			rows = append(rows, s.ListItem.Render(fmt.Sprintf("Age:   %d", u.Age)))
		}
	}

	sum := models.Summarize(v.tasks.Tasks())
	taken := 0
	reminders := v.reminders.Reminders()
	for _, r := range reminders {
		if r.Taken {
			taken++
		}
	}
	rows = append(rows, "",
		s.Title.Render("Today"),
		s.ListItem.Render(fmt.Sprintf("Activities done:  %d of %d", sum.Completed, sum.Completed+sum.Remaining)),
		s.ListItem.Render(fmt.Sprintf("Points earned:    %d", sum.Points)),
		s.ListItem.Render(fmt.Sprintf("Medication taken: %d of %d", taken, len(reminders))),
		s.ListItem.Render(fmt.Sprintf("Family contacts:  %d", len(v.contacts.Contacts()))),
	)
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}

// SettingsView exposes the accessibility switches
type SettingsView struct {
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
	cursor int
}

const (
	settingTextSize = iota
	settingVoice
	settingCount
)

func NewSettingsView(s *styles.Styles) *SettingsView {
	return &SettingsView{styles: s, keys: keys.DefaultKeyMap()}
}

func (v *SettingsView) Init() tea.Cmd { return nil }

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = moveCursor(v.cursor, -1, settingCount)
		case key.Matches(msg, v.keys.Down):
			v.cursor = moveCursor(v.cursor, 1, settingCount)
		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
			if v.cursor == settingTextSize {
				return v, send(ToggleTextScale{})
			}
			return v, send(SetVoiceMode{On: true})
		}
	}
	return v, nil
}

func (v *SettingsView) View() string {
	s := v.styles
	size := "Normal"
	if s.Large() {
		size = "Large"
	}
	entries := []string{
		"Text size: " + size,
		"Voice control mode",
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	rows := []string{s.Title.Render("Settings")}
	for i, e := range entries {
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Width(width).Render(e))
	}
	rows = append(rows, helpLine(s, "↵", "change"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
