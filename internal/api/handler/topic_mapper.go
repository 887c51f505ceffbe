package handler

import (
	"time"

	"github.com/forohub/forum-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toTopicResponse(v *ports.TopicView) topicResponse {
	var updated *time.Time
	if v.UpdatedAt != nil {
		u := v.UpdatedAt.UTC()
		updated = &u
	}
	return topicResponse{
		ID:        v.ID,
		Title:     v.Title,
		Content:   v.Content,
		Author:    v.Author,
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: updated,
	}
}

func toListResponse(r *ports.ListTopicsResult) listTopicsResponse {
	items := make([]topicResponse, len(r.Items))
	for i := range r.Items {
		items[i] = toTopicResponse(&r.Items[i])
	}
	return listTopicsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Size:       r.Size,
			TotalPages: r.TotalPages,
		},
	}
}
