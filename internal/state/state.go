// Package state owns the in-memory domain collections and writes every change
// through to persistent storage.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/persist"
	"go.uber.org/zap"
)

// Persister is the storage side of the container
type Persister interface {
	Save(persist.Snapshot)
	Load(prev persist.Snapshot) (persist.Snapshot, persist.Presence)
}

// Container is the sole mutator of contacts, tasks, reminders, feed posts and events.
type Container struct {
	mu        sync.RWMutex
	contacts  []models.Contact
	tasks     []models.Task
	reminders []models.Reminder
	posts     []models.FeedPost
	events    []models.Event

	store Persister
	newID func() string
	now   func() time.Time
	log   *zap.Logger
	// seeded is true when Open bootstrapped defaults instead of restoring
	seeded bool
}

type Option func(*Container)

// WithIDGenerator overrides the identifier source
func WithIDGenerator(fn func() string) Option {
	return func(c *Container) { c.newID = fn }
}

// WithClock overrides the timestamp source used for posts and comments
func WithClock(fn func() time.Time) Option {
	return func(c *Container) { c.now = fn }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Container) { c.log = log }
}

// Open builds a container over store. On first run (no tasks and no reminders
// ever stored) it seeds the default tasks and reminders and saves them;
// otherwise it restores whatever the store holds. The decision is made once.
func Open(store Persister, opts ...Option) *Container {
	c := &Container{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	snap, presence := store.Load(persist.Snapshot{})
	if presence.FirstRun() {
		c.tasks = DefaultTasks()
		c.reminders = DefaultReminders()
		c.seeded = true
		c.log.Info("seeding default tasks and reminders")
		c.persistLocked()
		return c
	}
	c.apply(snap)
	c.log.Info("restored collections",
		zap.Int("contacts", len(c.contacts)),
		zap.Int("tasks", len(c.tasks)),
		zap.Int("reminders", len(c.reminders)),
		zap.Int("posts", len(c.posts)),
		zap.Int("events", len(c.events)),
	)
	return c
}

// Seeded reports whether Open bootstrapped default data
func (c *Container) Seeded() bool {
	return c.seeded
}

// DefaultTasks are the tasks shown on a fresh install
func DefaultTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Morning stretches", Icon: models.IconStretch, Points: 10},
		{ID: "2", Title: "Walk", Icon: models.IconWalk, Points: 15},
		{ID: "3", Title: "Drink water", Icon: models.IconWater, Points: 5},
	}
}

// DefaultReminders are the reminders shown on a fresh install
func DefaultReminders() []models.Reminder {
	return []models.Reminder{
		{ID: "1", MedicationName: "Blood pressure pills", Time: "08:00", Dosage: "1 tablet"},
		{ID: "2", MedicationName: "Vitamin D", Time: "12:00", Dosage: "1 capsule"},
	}
}

func (c *Container) apply(s persist.Snapshot) {
	c.contacts = s.Contacts
	c.tasks = s.Tasks
	c.reminders = s.Reminders
	c.posts = s.FeedPosts
	c.events = s.Events
}

func (c *Container) snapshotLocked() persist.Snapshot {
	return persist.Snapshot{
		Contacts:  c.contacts,
		Tasks:     c.tasks,
		Reminders: c.reminders,
		FeedPosts: c.posts,
		Events:    c.events,
	}
}

// persistLocked writes all five collections. Callers hold mu.
func (c *Container) persistLocked() {
	c.store.Save(c.snapshotLocked())
}

// Save writes the current state in full
func (c *Container) Save() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.persistLocked()
}

// Reload replaces collections with the stored ones. Keys that are missing or
// fail to parse keep their in-memory value.
func (c *Container) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, _ := c.store.Load(c.snapshotLocked())
	c.apply(snap)
}

// Contacts

func (c *Container) Contacts() []models.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Contact(nil), c.contacts...)
}

// AddContact appends a contact unless its phone number is empty or already present
func (c *Container) AddContact(contact models.Contact) error {
	if strings.TrimSpace(contact.PhoneNumber) == "" {
		return ErrPhoneRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.contacts {
		if existing.PhoneNumber == contact.PhoneNumber {
			return ErrDuplicateContact
		}
	}
	c.contacts = append(c.contacts, contact)
	c.persistLocked()
	return nil
}

// RemoveContact removes the contact with the phone number, reporting whether one existed
func (c *Container) RemoveContact(phoneNumber string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := -1
	for i, existing := range c.contacts {
		if existing.PhoneNumber == phoneNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	c.contacts = removeAt(c.contacts, idx)
	c.persistLocked()
	return true
}

// Events

func (c *Container) Events() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Event(nil), c.events...)
}

// AddEvent appends an event with a fresh identifier
func (c *Container) AddEvent(e models.Event) models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.ID = c.newID()
	c.events = append(c.events, e)
	c.persistLocked()
	return e
}

// removeAt returns a new slice without element i, leaving s unmodified
func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
