package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createTopicRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// updateTopicRequest carries a partial update. Absent fields (nil) are left
// unchanged; an explicitly empty string is rejected by validation rather than
// treated as "clear the field".
type updateTopicRequest struct {
	Title   *string `json:"title"   validate:"omitnil,min=1,max=200"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

type topicResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

type listTopicsResponse struct {
	Data       []topicResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
