package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// EventsView lists community events. Attendance is kept only for the
// lifetime of the view and is never persisted.
type EventsView struct {
	events    state.EventBoard
	attending map[string]bool
	styles    *styles.Styles
	keys      keys.KeyMap
	width     int
	height    int
	cursor    int

	creating bool
	form     *form
}

func NewEventsView(events state.EventBoard, s *styles.Styles) *EventsView {
	return &EventsView{
		events:    events,
		attending: make(map[string]bool),
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		form: newForm("New Event", "Add Event",
			newField("Title", "e.g. Garden club", 100),
			newField("Type", "e.g. Social", 30),
			newField("Location", "Where", 100),
			newField("Date", "e.g. Saturday", 30),
			newField("Time", "e.g. 10:00", 10),
			newField("Description", "What to expect", 200),
			newField("Senior friendly (y/n)", "y", 1).withDefault("y"),
		),
	}
}

func (v *EventsView) Init() tea.Cmd { return nil }

func (v *EventsView) CapturingInput() bool { return v.creating }

// Attending reports whether the user marked the event as attending
func (v *EventsView) Attending(id string) bool {
	return v.attending[id]
}

func (v *EventsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.creating {
			return v.updateCreating(msg)
		}

		events := v.events.Events()
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = moveCursor(v.cursor, -1, len(events))
		case key.Matches(msg, v.keys.Down):
			v.cursor = moveCursor(v.cursor, 1, len(events))
		case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Enter):
			if len(events) > 0 {
				id := events[moveCursor(v.cursor, 0, len(events))].ID
				v.attending[id] = !v.attending[id]
			}
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v, v.form.reset()
		}
		return v, nil
	}

	if v.creating {
		return v, v.form.updateInput(msg)
	}
	return v, nil
}

func (v *EventsView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.creating = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg, v.keys)
	if !submitted {
		return v, cmd
	}

	if v.form.value(0) == "" || v.form.value(3) == "" {
		return v, alert("Please enter a title and date")
	}
	v.events.AddEvent(models.Event{
		Title:          v.form.value(0),
		Type:           v.form.value(1),
		Location:       v.form.value(2),
		Date:           v.form.value(3),
		Time:           v.form.value(4),
		Description:    v.form.value(5),
		SeniorFriendly: !strings.EqualFold(v.form.value(6), "n"),
	})
	v.creating = false
	v.cursor = len(v.events.Events()) - 1
	return v, nil
}

func (v *EventsView) View() string {
	if v.creating {
		return v.form.view(v.styles, v.width, v.height, "")
	}

	s := v.styles
	events := v.events.Events()
	rows := []string{header(s, "Local Events", "Things happening near you")}

	if len(events) == 0 {
		rows = append(rows, emptyState(s, v.width, v.height, "No events yet", "Press n to add one"))
	}
	width := max(styles.ContentWidth(v.width)-4, 20)
	cursor := moveCursor(v.cursor, 0, len(events))
	for i, e := range events {
		title := e.Title
		if e.SeniorFriendly {
			title += " " + s.Badge.Render("senior friendly")
		}
		if v.attending[e.ID] {
			title += " " + s.Done.Render("✓ attending")
		}
		detail := strings.Join(nonEmpty(e.Type, e.Date, e.Time, e.Location, e.Distance), " • ")

		style := s.ListItem
		if i == cursor {
			style = s.ListSelected
		}
		rows = append(rows,
			style.Width(width).Render(title),
			style.Foreground(styles.Current.ForegroundDim).Width(width).Render(detail),
		)
		if i == cursor && e.Description != "" {
			rows = append(rows, style.Foreground(styles.Current.ForegroundDim).Width(width).Render(e.Description))
		}
	}

	rows = append(rows, helpLine(s, "space", "attend", "n", "new"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
