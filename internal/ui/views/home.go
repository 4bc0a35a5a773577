package views

import (
	"fmt"
	"strconv"
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

const defaultTaskPoints = 10

// HomeView shows today's activities and progress
type HomeView struct {
	tasks  state.TaskBoard
	user   func() *models.User
	now    func() time.Time
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	cursor int

	creating bool
	form     *form

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

func NewHomeView(tasks state.TaskBoard, user func() *models.User, s *styles.Styles) *HomeView {
	return &HomeView{
		tasks:  tasks,
		user:   user,
		now:    time.Now,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		form: newForm("New Activity", "Add Activity",
			newField("Activity", "e.g. Evening walk", 100),
			newField("Points", "10", 3).withDefault(strconv.Itoa(defaultTaskPoints)),
		),
	}
}

func (v *HomeView) Init() tea.Cmd { return nil }

func (v *HomeView) CapturingInput() bool {
	return v.creating || v.confirmingDelete
}

func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (v *HomeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		tasks := v.tasks.Tasks()
		v.cursor = moveCursor(v.cursor, 0, len(tasks))

		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = moveCursor(v.cursor, -1, len(tasks))
		case key.Matches(msg, v.keys.Down):
			v.cursor = moveCursor(v.cursor, 1, len(tasks))
		case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Enter):
			if len(tasks) > 0 {
				v.tasks.ToggleTask(tasks[v.cursor].ID)
			}
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v, v.form.reset()
		case key.Matches(msg, v.keys.Delete):
			if len(tasks) > 0 {
				v.confirmingDelete = true
				v.deleteTargetID = tasks[v.cursor].ID
				v.deleteTargetName = tasks[v.cursor].Title
			}
		}
		return v, nil
	}

	if v.creating {
		return v, v.form.updateInput(msg)
	}
	return v, nil
}

func (v *HomeView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.tasks.DeleteTask(v.deleteTargetID)
		v.confirmingDelete = false
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *HomeView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.creating = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg, v.keys)
	if !submitted {
		return v, cmd
	}

	points := defaultTaskPoints
	if raw := v.form.value(1); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 {
			return v, alert("Points must be a whole number")
		}
		points = p
	}
	if _, err := v.tasks.AddTask(state.NewTask{Title: v.form.value(0), Points: points}); err != nil {
		return v, alert("Please enter an activity name")
	}
	v.creating = false
	v.cursor = len(v.tasks.Tasks()) - 1
	return v, nil
}

func (v *HomeView) View() string {
	if v.confirmingDelete {
		return confirmBox(v.styles, v.width, v.height,
			"Remove activity?", fmt.Sprintf("%q will be removed from today's list", v.deleteTargetName))
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height, "")
	}

	s := v.styles
	name := "there"
	if u := v.user(); u != nil {
		if f := strings.Fields(u.Name); len(f) > 0 {
			name = f[0]
		}
	}

	tasks := v.tasks.Tasks()
	sum := models.Summarize(tasks)

	rows := []string{
		header(s, fmt.Sprintf("%s, %s!", greeting(v.now()), name), v.now().Format("Monday, January 2")),
		s.TitleMuted.Render(fmt.Sprintf("%d done • %d to go • %d points today", sum.Completed, sum.Remaining, sum.Points)),
		"",
	}

	if len(tasks) == 0 {
		rows = append(rows, emptyState(s, v.width, v.height, "No activities yet", "Press n to add one"))
	}
	width := max(styles.ContentWidth(v.width)-4, 20)
	for i, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[✓]"
		}
		line := fmt.Sprintf("%s %s  %s  +%d", check, t.Icon.Glyph(), t.Title, t.Points)
		style := s.ListItem
		if t.Completed {
			style = style.Foreground(styles.Current.Success)
		}
		if i == v.cursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Width(width).Render(line))
	}

	rows = append(rows, helpLine(s, "space", "done", "n", "new", "d", "delete"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
