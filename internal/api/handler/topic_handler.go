package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/api/metrics"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// TopicHandler handles HTTP requests for topic operations.
type TopicHandler struct {
	service ports.TopicService
}

func NewTopicHandler(service ports.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

// Create handles POST /topics.
//
// @Summary      Create a topic
// @Tags         topics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTopicRequest  true  "Topic fields"
// @Success      201   {object}  topicResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /topics [post]
func (h *TopicHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req createTopicRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateTopicInput{
		Title:   req.Title,
		Content: req.Content,
	}, identity)
	if err != nil {
		metrics.TopicWritesTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.TopicWritesTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, toTopicResponse(view))
}

// List handles GET /topics?page&size.
//
// @Summary      List topics
// @Tags         topics
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Param        size  query     int  false  "Page size (max 100)"
// @Success      200   {object}  listTopicsResponse
// @Router       /topics [get]
func (h *TopicHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.service.List(c.Request().Context(), ports.ListTopicsInput{Page: page, Size: size})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /topics/:id.
//
// @Summary      Get a topic
// @Tags         topics
// @Produce      json
// @Param        id   path      string  true  "Topic id"
// @Success      200  {object}  topicResponse
// @Failure      404  {object}  errorResponse
// @Router       /topics/{id} [get]
func (h *TopicHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTopicNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "topic not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toTopicResponse(view))
}

// Update handles PUT /topics/:id.
//
// @Summary      Update a topic (owner or admin)
// @Tags         topics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Topic id"
// @Param        body  body      updateTopicRequest  true  "Fields to change"
// @Success      200   {object}  topicResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /topics/{id} [put]
func (h *TopicHandler) Update(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req updateTopicRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTopicInput{
		Title:   req.Title,
		Content: req.Content,
	}, identity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTopicNotFound):
			metrics.TopicWritesTotal.WithLabelValues("update", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "topic not found"})
		case errors.Is(err, domain.ErrForbidden):
			metrics.TopicWritesTotal.WithLabelValues("update", "forbidden").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "not allowed to modify this topic"})
		}
		metrics.TopicWritesTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.TopicWritesTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, toTopicResponse(view))
}

// Delete handles DELETE /topics/:id.
//
// @Summary      Delete a topic (owner or admin)
// @Tags         topics
// @Security     BearerAuth
// @Param        id  path  string  true  "Topic id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /topics/{id} [delete]
func (h *TopicHandler) Delete(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		switch {
		case errors.Is(err, domain.ErrTopicNotFound):
			metrics.TopicWritesTotal.WithLabelValues("delete", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "topic not found"})
		case errors.Is(err, domain.ErrForbidden):
			metrics.TopicWritesTotal.WithLabelValues("delete", "forbidden").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "not allowed to modify this topic"})
		}
		metrics.TopicWritesTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.TopicWritesTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}
