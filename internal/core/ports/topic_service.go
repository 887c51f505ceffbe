package ports

import (
	"context"
	"time"

	"github.com/forohub/forum-api/internal/core/domain"
)

// CreateTopicInput carries the fields for a new topic.
type CreateTopicInput struct {
	Title   string
	Content string
}

// UpdateTopicInput carries a partial update. Nil means "leave unchanged".
type UpdateTopicInput struct {
	Title   *string
	Content *string
}

// ListTopicsInput carries pagination parameters. Page is 1-based.
type ListTopicsInput struct {
	Page int
	Size int
}

// TopicView is the public representation of a topic: the author appears as a
// username, never as the full user record.
type TopicView struct {
	ID        string
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ListTopicsResult is one page of topics plus pagination metadata.
type ListTopicsResult struct {
	Items      []TopicView
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// TopicService defines the CRUD use cases for topics. Mutating operations
// take the acting identity explicitly; authorization is never read from
// ambient state.
type TopicService interface {
	Create(ctx context.Context, input CreateTopicInput, actor domain.Identity) (*TopicView, error)
	List(ctx context.Context, input ListTopicsInput) (*ListTopicsResult, error)
	Get(ctx context.Context, id string) (*TopicView, error)
	Update(ctx context.Context, id string, input UpdateTopicInput, actor domain.Identity) (*TopicView, error)
	Delete(ctx context.Context, id string, actor domain.Identity) error
}
