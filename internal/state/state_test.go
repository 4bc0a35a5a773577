package state

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/kinfolk/internal/db"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/persist"
)

// countingStore wraps a real adapter and counts full saves
type countingStore struct {
	*persist.Adapter
	saves int
}

func (s *countingStore) Save(snap persist.Snapshot) {
	s.saves++
	s.Adapter.Save(snap)
}

func sequentialIDs() func() string {
	n := 100
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

var fixedNow = time.Date(2025, 11, 18, 10, 0, 0, 0, time.UTC)

func newContainer(t *testing.T) (*Container, *countingStore, db.KV) {
	t.Helper()
	kv := db.NewMemory()
	store := &countingStore{Adapter: persist.NewAdapter(kv, nil)}
	c := Open(store, WithIDGenerator(sequentialIDs()), WithClock(func() time.Time { return fixedNow }))
	return c, store, kv
}

func reopen(kv db.KV) *Container {
	return Open(persist.NewAdapter(kv, nil))
}

func TestOpen_FirstRunSeedsDefaults(t *testing.T) {
	c, store, _ := newContainer(t)

	assert.True(t, c.Seeded())
	tasks := c.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, []int{10, 15, 5}, []int{tasks[0].Points, tasks[1].Points, tasks[2].Points})

	reminders := c.Reminders()
	require.Len(t, reminders, 2)
	assert.Equal(t, "08:00", reminders[0].Time)
	assert.Equal(t, "12:00", reminders[1].Time)

	assert.Empty(t, c.Contacts())
	assert.Empty(t, c.FeedPosts())
	assert.Empty(t, c.Events())
	assert.Equal(t, 1, store.saves, "seed is written through")
}

func TestOpen_RestoresEditedSeed(t *testing.T) {
	c, _, kv := newContainer(t)

	require.True(t, c.ToggleTask("2"))
	require.True(t, c.DeleteReminder("1"))
	added, err := c.AddTask(NewTask{Title: "Take pill", Points: 20})
	require.NoError(t, err)

	restored := reopen(kv)

	assert.False(t, restored.Seeded())
	if diff := cmp.Diff(c.Tasks(), restored.Tasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c.Reminders(), restored.Reminders())
	assert.Equal(t, models.IconMedication, restored.Tasks()[3].Icon)
	assert.Equal(t, added.ID, restored.Tasks()[3].ID)
}

func TestOpen_OnlyRemindersKeyStillRestores(t *testing.T) {
	kv := db.NewMemory()
	require.NoError(t, kv.Set(persist.KeyReminders, "[]"))

	c := reopen(kv)

	assert.False(t, c.Seeded())
	assert.Empty(t, c.Tasks())
	assert.Empty(t, c.Reminders())
}

func TestAddTask_FreshUniqueIDs(t *testing.T) {
	c := Open(persist.NewAdapter(db.NewMemory(), nil)) // default uuid generator

	seen := map[string]bool{}
	for _, task := range c.Tasks() {
		seen[task.ID] = true
	}
	for i := 0; i < 50; i++ {
		task, err := c.AddTask(NewTask{Title: "Task " + strconv.Itoa(i), Points: i})
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "identifier reused: %s", task.ID)
		seen[task.ID] = true

		count := 0
		for _, existing := range c.Tasks() {
			if existing.ID == task.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}

	for i := 0; i < 20; i++ {
		r, err := c.AddReminder(NewReminder{MedicationName: "Aspirin", Time: "09:00"})
		require.NoError(t, err)
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}

func TestAddTask_Validation(t *testing.T) {
	c, store, _ := newContainer(t)
	before := c.Tasks()
	saves := store.saves

	_, err := c.AddTask(NewTask{Title: "   ", Points: 10})

	assert.ErrorIs(t, err, ErrTaskTitleRequired)
	assert.True(t, IsCode(err, ErrCodeInvalid))
	assert.Equal(t, before, c.Tasks())
	assert.Equal(t, saves, store.saves)
}

func TestAddTask_IconClassification(t *testing.T) {
	c, _, _ := newContainer(t)

	walk, err := c.AddTask(NewTask{Title: "Evening walk", Points: 15})
	require.NoError(t, err)
	assert.Equal(t, models.IconWalk, walk.Icon)
	assert.False(t, walk.Completed)

	explicit, err := c.AddTask(NewTask{Title: "Evening walk", Icon: models.IconWater})
	require.NoError(t, err)
	assert.Equal(t, models.IconWater, explicit.Icon)
}

func TestToggleTwice_RestoresOriginal(t *testing.T) {
	c, _, _ := newContainer(t)

	origTask := c.Tasks()[1]
	require.True(t, c.ToggleTask(origTask.ID))
	assert.Equal(t, !origTask.Completed, c.Tasks()[1].Completed)
	require.True(t, c.ToggleTask(origTask.ID))
	assert.Equal(t, origTask, c.Tasks()[1])

	origReminder := c.Reminders()[0]
	require.True(t, c.ToggleReminder(origReminder.ID))
	assert.True(t, c.Reminders()[0].Taken)
	require.True(t, c.ToggleReminder(origReminder.ID))
	assert.Equal(t, origReminder, c.Reminders()[0])

	assert.False(t, c.ToggleTask("missing"))
	assert.False(t, c.ToggleReminder("missing"))
}

func TestUpdate_Patches(t *testing.T) {
	c, _, _ := newContainer(t)

	title := "Long walk"
	points := 30
	require.True(t, c.UpdateTask("2", TaskPatch{Title: &title, Points: &points}))
	got := c.Tasks()[1]
	assert.Equal(t, "Long walk", got.Title)
	assert.Equal(t, 30, got.Points)
	assert.Equal(t, models.IconWalk, got.Icon)
	assert.False(t, got.Completed)

	dosage := "2 capsules"
	taken := true
	require.True(t, c.UpdateReminder("2", ReminderPatch{Dosage: &dosage, Taken: &taken}))
	r := c.Reminders()[1]
	assert.Equal(t, "2 capsules", r.Dosage)
	assert.True(t, r.Taken)
	assert.Equal(t, "Vitamin D", r.MedicationName)

	assert.False(t, c.UpdateTask("nope", TaskPatch{Title: &title}))
	assert.False(t, c.UpdateReminder("nope", ReminderPatch{Taken: &taken}))
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	c, _, _ := newContainer(t)
	_, err := c.AddTask(NewTask{Title: "Read", Points: 5})
	require.NoError(t, err)
	before := c.Tasks()

	require.True(t, c.DeleteTask(before[1].ID))

	want := []models.Task{before[0], before[2], before[3]}
	assert.Equal(t, want, c.Tasks())
	assert.False(t, c.DeleteTask(before[1].ID))

	reminders := c.Reminders()
	require.True(t, c.DeleteReminder(reminders[0].ID))
	assert.Equal(t, reminders[1:], c.Reminders())
}

func TestAddReminder_Validation(t *testing.T) {
	c, store, _ := newContainer(t)
	saves := store.saves

	tests := []NewReminder{
		{MedicationName: "", Time: "08:00"},
		{MedicationName: "Aspirin", Time: " "},
		{},
	}
	for _, in := range tests {
		_, err := c.AddReminder(in)
		assert.ErrorIs(t, err, ErrReminderIncomplete)
	}
	assert.Len(t, c.Reminders(), 2)
	assert.Equal(t, saves, store.saves)

	r, err := c.AddReminder(NewReminder{MedicationName: "Aspirin", Time: "21:00", Dosage: "1 tablet"})
	require.NoError(t, err)
	assert.False(t, r.Taken)
	assert.Equal(t, r, c.Reminders()[2])
}

func TestAddContact_DuplicatePhone(t *testing.T) {
	c, _, _ := newContainer(t)
	sarah := models.Contact{PhoneNumber: "555-0101", Name: "Sarah", Relationship: "Daughter"}

	require.NoError(t, c.AddContact(sarah))
	err := c.AddContact(models.Contact{PhoneNumber: "555-0101", Name: "Someone else"})

	assert.ErrorIs(t, err, ErrDuplicateContact)
	assert.True(t, IsCode(err, ErrCodeConflict))
	contacts := c.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, sarah, contacts[0])

	assert.ErrorIs(t, c.AddContact(models.Contact{Name: "No phone"}), ErrPhoneRequired)
}

func TestRemoveContact(t *testing.T) {
	c, _, _ := newContainer(t)
	for _, phone := range []string{"1", "2", "3"} {
		require.NoError(t, c.AddContact(models.Contact{PhoneNumber: phone}))
	}

	assert.True(t, c.RemoveContact("2"))
	assert.False(t, c.RemoveContact("2"))

	contacts := c.Contacts()
	require.Len(t, contacts, 2)
	assert.Equal(t, "1", contacts[0].PhoneNumber)
	assert.Equal(t, "3", contacts[1].PhoneNumber)
}

func TestFeed_NewestFirst(t *testing.T) {
	c, _, _ := newContainer(t)

	first := c.AddFeedPost(NewPost{AuthorName: "Emma", Photo: "a.jpg", Caption: " Garden "})
	second := c.AddFeedPost(NewPost{AuthorName: "Sarah", Photo: "b.jpg"})

	posts := c.FeedPosts()
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, "Garden", posts[1].Caption)
	assert.Equal(t, fixedNow, posts[0].Timestamp)
	assert.Zero(t, posts[0].Likes)
	assert.False(t, posts[0].IsLiked)
	assert.Zero(t, posts[0].Comments)
}

func TestLikePost_Involution(t *testing.T) {
	for _, start := range []int{0, 1, 7} {
		t.Run(strconv.Itoa(start), func(t *testing.T) {
			c, _, _ := newContainer(t)
			p := c.AddFeedPost(NewPost{AuthorName: "Emma"})
			c.posts[0].Likes = start

			require.True(t, c.LikePost(p.ID))
			got := c.FeedPosts()[0]
			assert.True(t, got.IsLiked)
			assert.Equal(t, start+1, got.Likes)

			require.True(t, c.LikePost(p.ID))
			got = c.FeedPosts()[0]
			assert.False(t, got.IsLiked)
			assert.Equal(t, start, got.Likes)
		})
	}

	c, _, _ := newContainer(t)
	assert.False(t, c.LikePost("missing"))
}

func TestAddComment(t *testing.T) {
	c, _, _ := newContainer(t)
	other := c.AddFeedPost(NewPost{AuthorName: "Sarah"})
	target := c.AddFeedPost(NewPost{AuthorName: "Emma"})

	c1, err := c.AddComment(target.ID, NewComment{Author: "Grandma", Text: "Beautiful!"})
	require.NoError(t, err)
	c2, err := c.AddComment(target.ID, NewComment{Author: "Sarah", Text: "Agreed"})
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)

	posts := c.FeedPosts()
	assert.Equal(t, 2, posts[0].Comments)
	assert.Equal(t, []models.Comment{c1, c2}, posts[0].CommentsList)

	assert.Equal(t, 0, posts[1].Comments)
	assert.NotNil(t, posts[1].CommentsList)
	assert.Empty(t, posts[1].CommentsList)
	assert.Equal(t, other.ID, posts[1].ID)

	_, err = c.AddComment("missing", NewComment{Text: "hi"})
	assert.True(t, IsCode(err, ErrCodeNotFound))
	_, err = c.AddComment(target.ID, NewComment{Text: "  "})
	assert.ErrorIs(t, err, ErrCommentEmpty)
	assert.Equal(t, 2, c.FeedPosts()[0].Comments)
}

func TestFeedPosts_ReturnsCopies(t *testing.T) {
	c, _, _ := newContainer(t)
	p := c.AddFeedPost(NewPost{AuthorName: "Emma"})
	_, err := c.AddComment(p.ID, NewComment{Text: "one"})
	require.NoError(t, err)

	posts := c.FeedPosts()
	posts[0].CommentsList[0].Text = "changed"
	posts[0].Likes = 99

	fresh := c.FeedPosts()
	assert.Equal(t, "one", fresh[0].CommentsList[0].Text)
	assert.Zero(t, fresh[0].Likes)
}

func TestAddEvent_Appends(t *testing.T) {
	c, _, _ := newContainer(t)

	e1 := c.AddEvent(models.Event{Title: "Community Choir Practice", Type: "music"})
	e2 := c.AddEvent(models.Event{Title: "Chair Yoga Class", Type: "exercise", SeniorFriendly: true})

	events := c.Events()
	require.Len(t, events, 2)
	assert.Equal(t, e1, events[0])
	assert.Equal(t, e2, events[1])
	assert.NotEmpty(t, e1.ID)
}

func TestWriteThrough_EveryMutation(t *testing.T) {
	c, store, kv := newContainer(t)
	start := store.saves

	require.NoError(t, c.AddContact(models.Contact{PhoneNumber: "1"}))
	_, err := c.AddTask(NewTask{Title: "Read"})
	require.NoError(t, err)
	c.ToggleTask("1")
	c.AddEvent(models.Event{Title: "Tea"})
	p := c.AddFeedPost(NewPost{AuthorName: "Emma"})
	c.LikePost(p.ID)
	_, err = c.AddComment(p.ID, NewComment{Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, start+7, store.saves)

	restored := reopen(kv)
	want := persist.Snapshot{
		Contacts: c.Contacts(), Tasks: c.Tasks(), Reminders: c.Reminders(),
		FeedPosts: c.FeedPosts(), Events: c.Events(),
	}
	got := persist.Snapshot{
		Contacts: restored.Contacts(), Tasks: restored.Tasks(), Reminders: restored.Reminders(),
		FeedPosts: restored.FeedPosts(), Events: restored.Events(),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}
}

func TestReload_KeepsCollectionsWithoutKeys(t *testing.T) {
	c, _, kv := newContainer(t)
	require.NoError(t, c.AddContact(models.Contact{PhoneNumber: "1"}))

	require.NoError(t, kv.Delete(persist.KeyContacts))
	require.NoError(t, kv.Set(persist.KeyTasks, `[{"id":"x","title":"From disk","points":1}]`))

	c.Reload()

	assert.Len(t, c.Contacts(), 1)
	require.Len(t, c.Tasks(), 1)
	assert.Equal(t, "From disk", c.Tasks()[0].Title)
}
