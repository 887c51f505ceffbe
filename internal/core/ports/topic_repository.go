package ports

import (
	"context"

	"github.com/forohub/forum-api/internal/core/domain"
)

// TopicRepository defines persistence operations for topics.
type TopicRepository interface {
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	FindByID(ctx context.Context, id string) (*domain.Topic, error)
	// List returns one page of topics in insertion order together with the
	// total number of topics. page is 1-based.
	List(ctx context.Context, page, size int) ([]*domain.Topic, int64, error)
	Update(ctx context.Context, topic *domain.Topic) error
	Delete(ctx context.Context, id string) error
}
