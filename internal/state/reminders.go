package state

import (
	"strings"

	"github.com/tgienger/kinfolk/internal/models"
)

// NewReminder is the input for AddReminder
type NewReminder struct {
	MedicationName string
	Time           string
	Dosage         string
}

// ReminderPatch updates the non-nil fields of a reminder
type ReminderPatch struct {
	MedicationName *string
	Time           *string
	Dosage         *string
	Taken          *bool
}

func (p ReminderPatch) apply(r models.Reminder) models.Reminder {
	if p.MedicationName != nil {
		r.MedicationName = *p.MedicationName
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.Dosage != nil {
		r.Dosage = *p.Dosage
	}
	if p.Taken != nil {
		r.Taken = *p.Taken
	}
	return r
}

func (c *Container) Reminders() []models.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Reminder(nil), c.reminders...)
}

// AddReminder appends a not-yet-taken reminder. Name and time are required.
func (c *Container) AddReminder(in NewReminder) (models.Reminder, error) {
	name := strings.TrimSpace(in.MedicationName)
	at := strings.TrimSpace(in.Time)
	if name == "" || at == "" {
		return models.Reminder{}, ErrReminderIncomplete
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	r := models.Reminder{
		ID:             c.newID(),
		MedicationName: name,
		Time:           at,
		Dosage:         strings.TrimSpace(in.Dosage),
	}
	c.reminders = append(c.reminders, r)
	c.persistLocked()
	return r, nil
}

func (c *Container) UpdateReminder(id string, patch ReminderPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.reminders {
		if c.reminders[i].ID == id {
			c.reminders[i] = patch.apply(c.reminders[i])
			c.persistLocked()
			return true
		}
	}
	return false
}

// ToggleReminder flips the taken flag
func (c *Container) ToggleReminder(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.reminders {
		if c.reminders[i].ID == id {
			c.reminders[i].Taken = !c.reminders[i].Taken
			c.persistLocked()
			return true
		}
	}
	return false
}

func (c *Container) DeleteReminder(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.reminders {
		if c.reminders[i].ID == id {
			c.reminders = removeAt(c.reminders, i)
			c.persistLocked()
			return true
		}
	}
	return false
}
