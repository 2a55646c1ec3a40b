package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/api/middleware"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

type stubPostService struct {
	createFn func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	getFn    func(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error)
	listFn   func(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error)
	updateFn func(ctx context.Context, id string, in ports.UpdatePostInput, actorID, actorRole string) (*domain.Post, error)
	deleteFn func(ctx context.Context, id, actorID, actorRole string) error
}

func (s *stubPostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) Get(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error) {
	return s.getFn(ctx, ref, includeDrafts)
}

func (s *stubPostService) List(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error) {
	return s.listFn(ctx, filter)
}

func (s *stubPostService) Update(ctx context.Context, id string, in ports.UpdatePostInput, actorID, actorRole string) (*domain.Post, error) {
	return s.updateFn(ctx, id, in, actorID, actorRole)
}

func (s *stubPostService) Delete(ctx context.Context, id, actorID, actorRole string) error {
	return s.deleteFn(ctx, id, actorID, actorRole)
}

type stubProfileService struct {
	getFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	if s.getFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.getFn(ctx, userID)
}

func (s *stubProfileService) Update(ctx context.Context, userID, name, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type stubDispatcher struct {
	events []domain.ViewEvent
}

func (d *stubDispatcher) Enqueue(ev domain.ViewEvent) {
	d.events = append(d.events, ev)
}

func newPostContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, userID, role string) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxEmail, userID+"@example.com")
	c.Set(middleware.CtxRole, role)
}

func TestPostHandler_Get_PublishedEnqueuesView(t *testing.T) {
	published := &domain.Post{ID: "post-1", Slug: "hello", Status: domain.PostPublished}
	dispatcher := &stubDispatcher{}
	h := NewPostHandler(&stubPostService{
		getFn: func(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error) {
			if includeDrafts {
				t.Fatalf("anonymous request must not include drafts")
			}
			return published, nil
		},
	}, &stubProfileService{}, dispatcher)

	c, rec := newPostContext(t, http.MethodGet, "/api/posts/hello", "")
	c.SetParamNames("ref")
	c.SetParamValues("hello")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(dispatcher.events) != 1 {
		t.Fatalf("expected one view event, got %d", len(dispatcher.events))
	}
	ev := dispatcher.events[0]
	if ev.PostID != "post-1" || ev.ViewerHash == "" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestPostHandler_Get_DraftHiddenFromOtherUsers(t *testing.T) {
	draft := &domain.Post{ID: "post-1", Status: domain.PostDraft, AuthorID: "author-1"}
	dispatcher := &stubDispatcher{}
	h := NewPostHandler(&stubPostService{
		getFn: func(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error) {
			return draft, nil
		},
	}, &stubProfileService{}, dispatcher)

	c, _ := newPostContext(t, http.MethodGet, "/api/posts/post-1", "")
	c.SetParamNames("ref")
	c.SetParamValues("post-1")
	authenticate(c, "someone-else", domain.RoleUser)

	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if len(dispatcher.events) != 0 {
		t.Fatalf("draft access must not record a view")
	}
}

func TestPostHandler_Get_DraftVisibleToAuthor(t *testing.T) {
	draft := &domain.Post{ID: "post-1", Status: domain.PostDraft, AuthorID: "author-1"}
	dispatcher := &stubDispatcher{}
	h := NewPostHandler(&stubPostService{
		getFn: func(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error) {
			return draft, nil
		},
	}, &stubProfileService{}, dispatcher)

	c, rec := newPostContext(t, http.MethodGet, "/api/posts/post-1", "")
	c.SetParamNames("ref")
	c.SetParamValues("post-1")
	authenticate(c, "author-1", domain.RoleUser)

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(dispatcher.events) != 0 {
		t.Fatalf("draft views must not be counted")
	}
}

func TestPostHandler_List_DraftsRequireAuth(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		listFn: func(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error) {
			t.Fatalf("service must not be reached")
			return nil, nil
		},
	}, &stubProfileService{}, &stubDispatcher{})

	c, _ := newPostContext(t, http.MethodGet, "/api/posts?status=draft", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_List_AuthorSeesOwnDraftsOnly(t *testing.T) {
	var captured domain.PostFilter
	h := NewPostHandler(&stubPostService{
		listFn: func(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error) {
			captured = filter
			return &ports.ListPostsResult{Page: 1, Limit: 10}, nil
		},
	}, &stubProfileService{}, &stubDispatcher{})

	c, _ := newPostContext(t, http.MethodGet, "/api/posts?status=draft", "")
	authenticate(c, "author-1", domain.RoleUser)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.Status != domain.PostDraft || captured.AuthorID != "author-1" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
}

func TestPostHandler_List_AdminSeesAllDrafts(t *testing.T) {
	var captured domain.PostFilter
	h := NewPostHandler(&stubPostService{
		listFn: func(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error) {
			captured = filter
			return &ports.ListPostsResult{Page: 1, Limit: 10}, nil
		},
	}, &stubProfileService{}, &stubDispatcher{})

	c, _ := newPostContext(t, http.MethodGet, "/api/posts?status=draft", "")
	authenticate(c, "admin-1", domain.RoleAdmin)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.Status != domain.PostDraft || captured.AuthorID != "" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
}

func TestPostHandler_Create_ResolvesAuthorName(t *testing.T) {
	var captured ports.CreatePostInput
	h := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			captured = in
			return &domain.Post{ID: "post-1", Title: in.Title}, nil
		},
	}, &stubProfileService{
		getFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice Author"}, nil
		},
	}, &stubDispatcher{})

	c, rec := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First Post","content":"body text"}`)
	authenticate(c, "author-1", domain.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.AuthorID != "author-1" || captured.AuthorName != "Alice Author" {
		t.Fatalf("unexpected author fields: %+v", captured)
	}
}

func TestPostHandler_Create_FallsBackToEmail(t *testing.T) {
	var captured ports.CreatePostInput
	h := NewPostHandler(&stubPostService{
		createFn: func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			captured = in
			return &domain.Post{ID: "post-1"}, nil
		},
	}, &stubProfileService{}, &stubDispatcher{})

	c, _ := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First Post","content":"body text"}`)
	authenticate(c, "author-1", domain.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.AuthorName != "author-1@example.com" {
		t.Fatalf("expected email fallback, got %q", captured.AuthorName)
	}
}

func TestPostHandler_Create_RequiresAuth(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, &stubProfileService{}, &stubDispatcher{})

	c, _ := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First Post","content":"body text"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_Delete_NoContent(t *testing.T) {
	h := NewPostHandler(&stubPostService{
		deleteFn: func(ctx context.Context, id, actorID, actorRole string) error {
			if id != "post-1" || actorID != "author-1" {
				t.Fatalf("unexpected args: %s %s", id, actorID)
			}
			return nil
		},
	}, &stubProfileService{}, &stubDispatcher{})

	c, rec := newPostContext(t, http.MethodDelete, "/api/posts/post-1", "")
	c.SetParamNames("id")
	c.SetParamValues("post-1")
	authenticate(c, "author-1", domain.RoleUser)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestViewerHash_Anonymous(t *testing.T) {
	e := echo.New()

	makeCtx := func(ip, agent string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/x", nil)
		req.RemoteAddr = ip + ":12345"
		req.Header.Set("User-Agent", agent)
		return e.NewContext(req, httptest.NewRecorder())
	}

	a := viewerHash(makeCtx("10.0.0.1", "browser-a"), "")
	b := viewerHash(makeCtx("10.0.0.1", "browser-a"), "")
	if a != b {
		t.Fatalf("same viewer hashed differently: %s vs %s", a, b)
	}

	other := viewerHash(makeCtx("10.0.0.2", "browser-a"), "")
	if a == other {
		t.Fatalf("distinct IPs produced the same hash")
	}
}

func TestViewerHash_AuthenticatedIgnoresNetwork(t *testing.T) {
	e := echo.New()

	makeCtx := func(ip string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/x", nil)
		req.RemoteAddr = ip + ":12345"
		return e.NewContext(req, httptest.NewRecorder())
	}

	a := viewerHash(makeCtx("10.0.0.1"), "user-1")
	b := viewerHash(makeCtx("10.0.0.2"), "user-1")
	if a != b {
		t.Fatalf("same user hashed differently across networks")
	}
}
