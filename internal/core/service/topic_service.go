package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TopicService orchestrates topic CRUD and enforces the owner-or-admin rule
// on every mutation.
type TopicService struct {
	repo  ports.TopicRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewTopicService(repo ports.TopicRepository, users ports.UserRepository, log zerolog.Logger) *TopicService {
	return &TopicService{repo: repo, users: users, log: log}
}

// Create persists a new topic authored by actor.
func (s *TopicService) Create(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
	author, err := s.users.FindByUsername(ctx, actor.Username)
	if err != nil {
		return nil, err
	}

	topic := &domain.Topic{
		Title:          input.Title,
		Content:        input.Content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, topic)
	if err != nil {
		s.log.Error().Err(err).Str("author", actor.Username).Msg("failed to create topic")
		return nil, err
	}

	s.log.Info().Str("topic_id", created.ID).Str("author", actor.Username).Msg("topic created")
	view := toView(created)
	return &view, nil
}

// List returns one page of topics in insertion order.
func (s *TopicService) List(ctx context.Context, input ports.ListTopicsInput) (*ports.ListTopicsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.Size
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	topics, total, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}

	items := make([]ports.TopicView, len(topics))
	for i, t := range topics {
		items[i] = toView(t)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.ListTopicsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single topic or domain.ErrTopicNotFound.
func (s *TopicService) Get(ctx context.Context, id string) (*ports.TopicView, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(topic)
	return &view, nil
}

// Update applies the provided fields and stamps UpdatedAt. Existence is
// checked before permission so a missing topic is 404, not 403.
func (s *TopicService) Update(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(topic.AuthorUsername) {
		return nil, domain.ErrForbidden
	}

	topic.Apply(input.Title, input.Content, time.Now().UTC())
	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, err
	}

	s.log.Info().Str("topic_id", topic.ID).Str("actor", actor.Username).Msg("topic updated")
	view := toView(topic)
	return &view, nil
}

// Delete removes the topic after the same existence and permission checks
// as Update.
func (s *TopicService) Delete(ctx context.Context, id string, actor domain.Identity) error {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanModify(topic.AuthorUsername) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, topic.ID); err != nil {
		return err
	}

	s.log.Info().Str("topic_id", topic.ID).Str("actor", actor.Username).Msg("topic deleted")
	return nil
}

func toView(t *domain.Topic) ports.TopicView {
	return ports.TopicView{
		ID:        t.ID,
		Title:     t.Title,
		Content:   t.Content,
		Author:    t.AuthorUsername,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
