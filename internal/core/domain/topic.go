package domain

import (
	"errors"
	"time"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrForbidden     = errors.New("access forbidden")
)

// Topic is a discussion thread. The author is referenced by id and username;
// usernames are immutable after registration, so the denormalised username is
// safe to display and to use for ownership checks.
type Topic struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	AuthorID       string     `json:"author_id"`
	AuthorUsername string     `json:"author_username"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Apply performs a partial update: nil fields are left unchanged. Any call
// stamps UpdatedAt, even when both fields are nil.
func (t *Topic) Apply(title, content *string, now time.Time) {
	if title != nil {
		t.Title = *title
	}
	if content != nil {
		t.Content = *content
	}
	t.UpdatedAt = &now
}
