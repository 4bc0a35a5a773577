package state

import "github.com/tgienger/kinfolk/internal/models"

// Screens receive only the slice of the container they work with.

type TaskBoard interface {
	Tasks() []models.Task
	AddTask(NewTask) (models.Task, error)
	UpdateTask(id string, patch TaskPatch) bool
	ToggleTask(id string) bool
	DeleteTask(id string) bool
}

type ReminderBook interface {
	Reminders() []models.Reminder
	AddReminder(NewReminder) (models.Reminder, error)
	UpdateReminder(id string, patch ReminderPatch) bool
	ToggleReminder(id string) bool
	DeleteReminder(id string) bool
}

type ContactBook interface {
	Contacts() []models.Contact
	AddContact(models.Contact) error
	RemoveContact(phoneNumber string) bool
}

type FeedWall interface {
	FeedPosts() []models.FeedPost
	AddFeedPost(NewPost) models.FeedPost
	LikePost(id string) bool
	AddComment(postID string, in NewComment) (models.Comment, error)
}

type EventBoard interface {
	Events() []models.Event
	AddEvent(models.Event) models.Event
}

var (
	_ TaskBoard    = (*Container)(nil)
	_ ReminderBook = (*Container)(nil)
	_ ContactBook  = (*Container)(nil)
	_ FeedWall     = (*Container)(nil)
	_ EventBoard   = (*Container)(nil)
)
