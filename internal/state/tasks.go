package state

import (
	"strings"

	"github.com/tgienger/kinfolk/internal/models"
)

// NewTask is the input for AddTask. An empty Icon is derived from the title.
type NewTask struct {
	Title  string
	Points int
	Icon   models.Icon
}

// TaskPatch updates the non-nil fields of a task
type TaskPatch struct {
	Title     *string
	Completed *bool
	Points    *int
	Icon      *models.Icon
}

func (p TaskPatch) apply(t models.Task) models.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Points != nil {
		t.Points = *p.Points
	}
	if p.Icon != nil {
		t.Icon = *p.Icon
	}
	return t
}

func (c *Container) Tasks() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Task(nil), c.tasks...)
}

// AddTask appends an incomplete task with a fresh identifier
func (c *Container) AddTask(in NewTask) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrTaskTitleRequired
	}
	icon := in.Icon
	if icon == "" {
		icon = models.ClassifyTaskIcon(title)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	t := models.Task{
		ID:     c.newID(),
		Title:  title,
		Icon:   icon,
		Points: in.Points,
	}
	c.tasks = append(c.tasks, t)
	c.persistLocked()
	return t, nil
}

// UpdateTask applies patch to the task with id, reporting whether it exists
func (c *Container) UpdateTask(id string, patch TaskPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = patch.apply(c.tasks[i])
			c.persistLocked()
			return true
		}
	}
	return false
}

// ToggleTask flips the completion flag
func (c *Container) ToggleTask(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completed = !c.tasks[i].Completed
			c.persistLocked()
			return true
		}
	}
	return false
}

// DeleteTask removes the task with id
func (c *Container) DeleteTask(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = removeAt(c.tasks, i)
			c.persistLocked()
			return true
		}
	}
	return false
}
