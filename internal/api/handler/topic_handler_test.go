package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/api/middleware"
	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

type stubTopicService struct {
	createFn func(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error)
	listFn   func(ctx context.Context, input ports.ListTopicsInput) (*ports.ListTopicsResult, error)
	getFn    func(ctx context.Context, id string) (*ports.TopicView, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error)
	deleteFn func(ctx context.Context, id string, actor domain.Identity) error
}

func (s *stubTopicService) Create(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
	return s.createFn(ctx, input, actor)
}

func (s *stubTopicService) List(ctx context.Context, input ports.ListTopicsInput) (*ports.ListTopicsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubTopicService) Get(ctx context.Context, id string) (*ports.TopicView, error) {
	return s.getFn(ctx, id)
}

func (s *stubTopicService) Update(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
	return s.updateFn(ctx, id, input, actor)
}

func (s *stubTopicService) Delete(ctx context.Context, id string, actor domain.Identity) error {
	return s.deleteFn(ctx, id, actor)
}

type topicContextOpts struct {
	method   string
	target   string
	body     string
	identity *domain.Identity
	paramID  string
}

func newTopicContext(opts topicContextOpts) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if opts.body != "" {
		req = httptest.NewRequest(opts.method, opts.target, strings.NewReader(opts.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(opts.method, opts.target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if opts.identity != nil {
		c.Set(middleware.IdentityKey, *opts.identity)
	}
	if opts.paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(opts.paramID)
	}
	return c, rec, e
}

var aliceID = domain.Identity{Username: "alice", Role: domain.RoleUser}

func TestTopicHandler_Create_Success(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubTopicService{
		createFn: func(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			if input.Title != "hello" || input.Content != "world" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if actor.Username != "alice" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return &ports.TopicView{ID: "t1", Title: input.Title, Content: input.Content, Author: actor.Username, CreatedAt: now}, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method:   http.MethodPost,
		target:   "/topics",
		body:     `{"title":"hello","content":"world"}`,
		identity: &aliceID,
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "t1" || resp["author"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["updated_at"] != nil {
		t.Fatalf("expected updated_at null, got %v", resp["updated_at"])
	}
}

func TestTopicHandler_Create_Unauthenticated(t *testing.T) {
	stub := &stubTopicService{
		createFn: func(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, e := newTopicContext(topicContextOpts{
		method: http.MethodPost,
		target: "/topics",
		body:   `{"title":"hello","content":"world"}`,
	})
	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTopicHandler_Create_MissingFields(t *testing.T) {
	stub := &stubTopicService{
		createFn: func(ctx context.Context, input ports.CreateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method:   http.MethodPost,
		target:   "/topics",
		body:     `{"title":"only a title"}`,
		identity: &aliceID,
	})
	_ = h.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTopicHandler_List(t *testing.T) {
	stub := &stubTopicService{
		listFn: func(ctx context.Context, input ports.ListTopicsInput) (*ports.ListTopicsResult, error) {
			if input.Page != 2 || input.Size != 5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListTopicsResult{
				Items:      []ports.TopicView{{ID: "t6", Title: "six", Author: "alice"}},
				Total:      6,
				Page:       2,
				Size:       5,
				TotalPages: 2,
			}, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method: http.MethodGet,
		target: "/topics?page=2&size=5",
	})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data: %+v", resp["data"])
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination in response")
	}
	if pagination["total"] != float64(6) || pagination["total_pages"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
}

func TestTopicHandler_Get_NotFound(t *testing.T) {
	stub := &stubTopicService{
		getFn: func(ctx context.Context, id string) (*ports.TopicView, error) {
			return nil, domain.ErrTopicNotFound
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method:  http.MethodGet,
		target:  "/topics/999",
		paramID: "999",
	})
	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTopicHandler_Update_Forbidden(t *testing.T) {
	stub := &stubTopicService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewTopicHandler(stub)

	bob := domain.Identity{Username: "bob", Role: domain.RoleUser}
	c, rec, _ := newTopicContext(topicContextOpts{
		method:   http.MethodPut,
		target:   "/topics/t1",
		body:     `{"title":"hijack"}`,
		identity: &bob,
		paramID:  "t1",
	})
	_ = h.Update(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestTopicHandler_Update_RejectsEmptyString(t *testing.T) {
	stub := &stubTopicService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method:   http.MethodPut,
		target:   "/topics/t1",
		body:     `{"title":""}`,
		identity: &aliceID,
		paramID:  "t1",
	})
	_ = h.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for explicit empty string, got %d", rec.Code)
	}
}

func TestTopicHandler_Update_PartialFieldsPassedThrough(t *testing.T) {
	stub := &stubTopicService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateTopicInput, actor domain.Identity) (*ports.TopicView, error) {
			if input.Title == nil || *input.Title != "renamed" {
				t.Fatalf("expected title pointer, got %+v", input.Title)
			}
			if input.Content != nil {
				t.Fatalf("omitted field must stay nil")
			}
			return &ports.TopicView{ID: id, Title: *input.Title, Author: actor.Username}, nil
		},
	}
	h := NewTopicHandler(stub)

	c, rec, _ := newTopicContext(topicContextOpts{
		method:   http.MethodPut,
		target:   "/topics/t1",
		body:     `{"title":"renamed"}`,
		identity: &aliceID,
		paramID:  "t1",
	})
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTopicHandler_Delete(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusNoContent},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", domain.ErrTopicNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubTopicService{
				deleteFn: func(ctx context.Context, id string, actor domain.Identity) error {
					return tc.err
				},
			}
			h := NewTopicHandler(stub)

			c, rec, _ := newTopicContext(topicContextOpts{
				method:   http.MethodDelete,
				target:   "/topics/t1",
				identity: &aliceID,
				paramID:  "t1",
			})
			_ = h.Delete(c)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
