package models

import "time"

// Contact is a family member or friend reachable from the family screen.
// PhoneNumber is the identity key.
type Contact struct {
	PhoneNumber  string `json:"phoneNumber"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Photo        string `json:"photo"`
}

// Task is a daily activity worth a number of points when completed
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      Icon   `json:"icon"`
	Completed bool   `json:"completed"`
	Points    int    `json:"points"`
}

// Reminder is a medication reminder for a time of day
type Reminder struct {
	ID             string `json:"id"`
	MedicationName string `json:"medicationName"`
	Time           string `json:"time"`
	Dosage         string `json:"dosage"`
	Taken          bool   `json:"taken"`
}

// Comment belongs to exactly one FeedPost
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedPost is a shared family photo
type FeedPost struct {
	ID           string    `json:"id"`
	AuthorName   string    `json:"authorName"`
	AuthorPhoto  string    `json:"authorPhoto"`
	Photo        string    `json:"photo"`
	Caption      string    `json:"caption,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	IsLiked      bool      `json:"isLiked"`
	CommentsList []Comment `json:"commentsList"`
}

// Event is a local community event
type Event struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Location       string `json:"location"`
	Distance       string `json:"distance"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Photo          string `json:"photo"`
	Description    string `json:"description"`
	SeniorFriendly bool   `json:"seniorFriendly"`
}

// User is the signed-in profile returned by the login and signup endpoints
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// TaskSummary aggregates task progress for the home and profile screens
type TaskSummary struct {
	Completed int
	Remaining int
	Points    int
}

// Summarize counts completed tasks and the points they earned
func Summarize(tasks []Task) TaskSummary {
	var s TaskSummary
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			s.Points += t.Points
		}
	}
	s.Remaining = len(tasks) - s.Completed
	return s
}
