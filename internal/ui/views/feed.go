package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

// FeedView shows the family photo wall
type FeedView struct {
	feed   state.FeedWall
	user   func() *models.User
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
	cursor int

	// expanded shows the comment thread of the selected post
	expanded bool

	commenting   bool
	commentInput textinput.Model

	posting bool
	form    *form
}

func NewFeedView(feed state.FeedWall, user func() *models.User, s *styles.Styles) *FeedView {
	comment := textinput.New()
	comment.Placeholder = "Write a comment..."
	comment.CharLimit = 500

	return &FeedView{
		feed:         feed,
		user:         user,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		commentInput: comment,
		form: newForm("Share a Photo", "Post",
			newField("Photo", "Image path or URL", 300),
			newField("Caption", "Say something (optional)", 200),
		),
	}
}

func (v *FeedView) Init() tea.Cmd { return nil }

func (v *FeedView) CapturingInput() bool {
	return v.commenting || v.posting
}

func (v *FeedView) author() string {
	if u := v.user(); u != nil && u.Name != "" {
		return u.Name
	}
	return "You"
}

func (v *FeedView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.posting {
			return v.updatePosting(msg)
		}
		if v.commenting {
			return v.updateCommenting(msg)
		}

		posts := v.feed.FeedPosts()
		v.cursor = moveCursor(v.cursor, 0, len(posts))
		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = moveCursor(v.cursor, -1, len(posts))
			v.expanded = false
		case key.Matches(msg, v.keys.Down):
			v.cursor = moveCursor(v.cursor, 1, len(posts))
			v.expanded = false
		case key.Matches(msg, v.keys.Like):
			if len(posts) > 0 {
				v.feed.LikePost(posts[v.cursor].ID)
			}
		case key.Matches(msg, v.keys.Enter):
			v.expanded = !v.expanded
		case key.Matches(msg, v.keys.Comment):
			if len(posts) > 0 {
				v.commenting = true
				v.expanded = true
				v.commentInput.Reset()
				v.commentInput.Focus()
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.New):
			v.posting = true
			return v, v.form.reset()
		}
		return v, nil
	}

	if v.posting {
		return v, v.form.updateInput(msg)
	}
	if v.commenting {
		var cmd tea.Cmd
		v.commentInput, cmd = v.commentInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *FeedView) updateCommenting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.commenting = false
		v.commentInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Save):
		posts := v.feed.FeedPosts()
		if len(posts) == 0 {
			v.commenting = false
			return v, nil
		}
		_, err := v.feed.AddComment(posts[v.cursor].ID, state.NewComment{
			Author: v.author(),
			Text:   v.commentInput.Value(),
		})
		if err != nil {
			return v, alert("Please write a comment first")
		}
		v.commenting = false
		v.commentInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.commentInput, cmd = v.commentInput.Update(msg)
	return v, cmd
}

func (v *FeedView) updatePosting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.posting = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg, v.keys)
	if !submitted {
		return v, cmd
	}
	if v.form.value(0) == "" {
		return v, alert("Please choose a photo to share")
	}
	v.feed.AddFeedPost(state.NewPost{
		AuthorName: v.author(),
		Photo:      v.form.value(0),
		Caption:    v.form.value(1),
	})
	v.posting = false
	v.cursor = 0
	v.expanded = false
	return v, nil
}

// timeAgo renders a coarse relative timestamp
func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}

func (v *FeedView) View() string {
	if v.posting {
		return v.form.view(v.styles, v.width, v.height, "")
	}

	s := v.styles
	posts := v.feed.FeedPosts()
	rows := []string{header(s, "Family Photos", "")}

	if len(posts) == 0 {
		rows = append(rows, emptyState(s, v.width, v.height, "No photos yet", "Press n to share one"))
	}
	width := max(styles.ContentWidth(v.width)-4, 20)
	now := time.Now()
	cursor := moveCursor(v.cursor, 0, len(posts))
	for i, p := range posts {
		style := s.ListItem
		if i == cursor {
			style = s.ListSelected
		}
		heart := "♡"
		if p.IsLiked {
			heart = "♥"
		}
		rows = append(rows,
			style.Width(width).Render(fmt.Sprintf("%s • %s", p.AuthorName, timeAgo(p.Timestamp, now))),
			style.Foreground(styles.Current.ForegroundDim).Width(width).Render("▣ "+p.Photo),
		)
		if p.Caption != "" {
			rows = append(rows, style.Width(width).Render(p.Caption))
		}
		rows = append(rows, style.Foreground(styles.Current.ForegroundDim).Width(width).
			Render(fmt.Sprintf("%s %d   💬 %d", heart, p.Likes, p.Comments)))

		if i == cursor && v.expanded {
			for _, c := range p.CommentsList {
				rows = append(rows, s.TitleMuted.PaddingLeft(4).Render(c.Author+": "+c.Text))
			}
			if v.commenting {
				rows = append(rows, s.InputFocused.Width(min(width, 50)).Render(v.commentInput.View()))
			}
		}
	}

	help := helpLine(s, "l", "like", "c", "comment", "↵", "comments", "n", "share")
	if v.commenting {
		help = helpLine(s, "↵", "post", "esc", "cancel")
	}
	rows = append(rows, help)
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
