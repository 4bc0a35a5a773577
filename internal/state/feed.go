package state

import (
	"strings"

	"github.com/tgienger/kinfolk/internal/models"
)

// NewPost is the input for AddFeedPost
type NewPost struct {
	AuthorName  string
	AuthorPhoto string
	Photo       string
	Caption     string
}

// NewComment is the input for AddComment
type NewComment struct {
	Author string
	Text   string
}

// FeedPosts returns the feed newest first. Comment lists are copied.
func (c *Container) FeedPosts() []models.FeedPost {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.FeedPost, len(c.posts))
	for i, p := range c.posts {
		p.CommentsList = append(make([]models.Comment, 0, len(p.CommentsList)), p.CommentsList...)
		out[i] = p
	}
	return out
}

// AddFeedPost prepends a post with no likes or comments
func (c *Container) AddFeedPost(in NewPost) models.FeedPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := models.FeedPost{
		ID:           c.newID(),
		AuthorName:   in.AuthorName,
		AuthorPhoto:  in.AuthorPhoto,
		Photo:        in.Photo,
		Caption:      strings.TrimSpace(in.Caption),
		Timestamp:    c.now(),
		CommentsList: []models.Comment{},
	}
	c.posts = append([]models.FeedPost{p}, c.posts...)
	c.persistLocked()
	return p
}

// LikePost toggles the viewer's like, moving the count by one in step with the flag
func (c *Container) LikePost(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.posts {
		p := &c.posts[i]
		if p.ID != id {
			continue
		}
		if p.IsLiked {
			p.Likes--
		} else {
			p.Likes++
		}
		p.IsLiked = !p.IsLiked
		c.persistLocked()
		return true
	}
	return false
}

// AddComment appends a comment to the post and bumps its comment count
func (c *Container) AddComment(postID string, in NewComment) (models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return models.Comment{}, ErrCommentEmpty
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.posts {
		p := &c.posts[i]
		if p.ID != postID {
			continue
		}
		comment := models.Comment{
			ID:        c.newID(),
			Author:    in.Author,
			Text:      text,
			Timestamp: c.now(),
		}
		list := make([]models.Comment, 0, len(p.CommentsList)+1)
		p.CommentsList = append(append(list, p.CommentsList...), comment)
		p.Comments++
		c.persistLocked()
		return comment, nil
	}
	return models.Comment{}, ErrPostNotFound
}
