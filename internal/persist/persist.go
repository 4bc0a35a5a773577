// Package persist serializes the domain collections to a db.KV under fixed keys.
package persist

import (
	"encoding/json"

	"github.com/tgienger/kinfolk/internal/db"
	"github.com/tgienger/kinfolk/internal/models"
	"go.uber.org/zap"
)

// Storage keys, one per collection.
const (
	KeyContacts  = "seniorConnect_contacts"
	KeyTasks     = "seniorConnect_tasks"
	KeyReminders = "seniorConnect_reminders"
	KeyFeedPosts = "seniorConnect_feedPosts"
	KeyEvents    = "seniorConnect_events"
)

// Snapshot is the full set of persisted collections
type Snapshot struct {
	Contacts  []models.Contact
	Tasks     []models.Task
	Reminders []models.Reminder
	FeedPosts []models.FeedPost
	Events    []models.Event
}

// Presence records which keys existed in storage, regardless of whether they parsed
type Presence struct {
	Contacts  bool
	Tasks     bool
	Reminders bool
	FeedPosts bool
	Events    bool
}

// FirstRun reports whether neither tasks nor reminders were ever stored
func (p Presence) FirstRun() bool {
	return !p.Tasks && !p.Reminders
}

// Adapter writes and reads snapshots. Failures are logged, never returned.
type Adapter struct {
	kv  db.KV
	log *zap.Logger
}

func NewAdapter(kv db.KV, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, log: log}
}

type entry struct {
	key   string
	value any
}

// Save writes every collection under its key. A failing key does not stop the rest.
func (a *Adapter) Save(s Snapshot) {
	entries := []entry{
		{KeyContacts, nonNil(s.Contacts)},
		{KeyTasks, nonNil(s.Tasks)},
		{KeyReminders, nonNil(s.Reminders)},
		{KeyFeedPosts, nonNil(s.FeedPosts)},
		{KeyEvents, nonNil(s.Events)},
	}
	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			a.log.Error("failed to serialize collection", zap.String("key", e.key), zap.Error(err))
			continue
		}
		if err := a.kv.Set(e.key, string(data)); err != nil {
			a.log.Error("failed to write collection", zap.String("key", e.key), zap.Error(err))
		}
	}
}

// Load reads every key. A missing, unreadable or corrupt key leaves the
// corresponding collection of prev untouched.
func (a *Adapter) Load(prev Snapshot) (Snapshot, Presence) {
	next := prev
	var p Presence
	p.Contacts = read(a, KeyContacts, &next.Contacts)
	p.Tasks = read(a, KeyTasks, &next.Tasks)
	p.Reminders = read(a, KeyReminders, &next.Reminders)
	p.FeedPosts = read(a, KeyFeedPosts, &next.FeedPosts)
	p.Events = read(a, KeyEvents, &next.Events)
	return next, p
}

// read decodes key into dst (a pointer to a slice) and reports whether the key exists
func read[T any](a *Adapter, key string, dst *[]T) bool {
	raw, ok, err := a.kv.Get(key)
	if err != nil {
		a.log.Error("failed to read collection", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.log.Warn("discarding corrupt collection", zap.String("key", key), zap.Error(err))
		return true
	}
	*dst = out
	return true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
