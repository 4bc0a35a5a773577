package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

const defaultDosage = "1 tablet"

// RemindersView tracks today's medication
type RemindersView struct {
	reminders state.ReminderBook
	styles    *styles.Styles
	keys      keys.KeyMap
	width     int
	height    int
	cursor    int

	creating bool
	form     *form

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

func NewRemindersView(reminders state.ReminderBook, s *styles.Styles) *RemindersView {
	return &RemindersView{
		reminders: reminders,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		form: newForm("New Reminder", "Add Reminder",
			newField("Medication", "e.g. Vitamin D", 100),
			newField("Time", "HH:MM", 5),
			newField("Dosage", defaultDosage, 50).withDefault(defaultDosage),
		),
	}
}

func (v *RemindersView) Init() tea.Cmd { return nil }

func (v *RemindersView) CapturingInput() bool {
	return v.creating || v.confirmingDelete
}

func (v *RemindersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		reminders := v.reminders.Reminders()
		v.cursor = moveCursor(v.cursor, 0, len(reminders))
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = moveCursor(v.cursor, -1, len(reminders))
		case key.Matches(msg, v.keys.Down):
			v.cursor = moveCursor(v.cursor, 1, len(reminders))
		case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Enter):
			if len(reminders) > 0 {
				v.reminders.ToggleReminder(reminders[v.cursor].ID)
			}
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v, v.form.reset()
		case key.Matches(msg, v.keys.Delete):
			if len(reminders) > 0 {
				v.confirmingDelete = true
				v.deleteTargetID = reminders[v.cursor].ID
				v.deleteTargetName = reminders[v.cursor].MedicationName
			}
		}
		return v, nil
	}

	if v.creating {
		return v, v.form.updateInput(msg)
	}
	return v, nil
}

func (v *RemindersView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.reminders.DeleteReminder(v.deleteTargetID)
		v.confirmingDelete = false
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *RemindersView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.creating = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg, v.keys)
	if !submitted {
		return v, cmd
	}

	_, err := v.reminders.AddReminder(state.NewReminder{
		MedicationName: v.form.value(0),
		Time:           v.form.value(1),
		Dosage:         v.form.value(2),
	})
	if err != nil {
		return v, alert("Please fill in all fields")
	}
	v.creating = false
	v.cursor = len(v.reminders.Reminders()) - 1
	return v, alert("Reminder added!")
}

func (v *RemindersView) View() string {
	if v.confirmingDelete {
		return confirmBox(v.styles, v.width, v.height,
			"Remove reminder?", fmt.Sprintf("%s will no longer be reminded", v.deleteTargetName))
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height, "")
	}

	s := v.styles
	reminders := v.reminders.Reminders()

	taken := 0
	for _, r := range reminders {
		if r.Taken {
			taken++
		}
	}
	rows := []string{header(s, "Medication", fmt.Sprintf("%d of %d taken today", taken, len(reminders)))}

	if len(reminders) == 0 {
		rows = append(rows, emptyState(s, v.width, v.height, "No reminders", "Press n to add one"))
	}
	width := max(styles.ContentWidth(v.width)-4, 20)
	for i, r := range reminders {
		status := "○ due"
		style := s.ListItem
		if r.Taken {
			status = "● taken"
			style = style.Foreground(styles.Current.Success)
		}
		if i == v.cursor {
			style = s.ListSelected
		}
		line := fmt.Sprintf("%-5s  %s  %s  %s", r.Time, r.MedicationName, r.Dosage, status)
		rows = append(rows, style.Width(width).Render(line))
	}

	rows = append(rows, helpLine(s, "space", "taken", "n", "new", "d", "delete"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
