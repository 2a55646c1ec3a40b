package handler

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// ViewDispatcher is the interface the handler uses to enqueue page views.
type ViewDispatcher interface {
	Enqueue(event domain.ViewEvent)
}

// PostHandler exposes the post CRUD and listing surface.
type PostHandler struct {
	posts      ports.PostService
	profiles   ports.ProfileService
	dispatcher ViewDispatcher
}

func NewPostHandler(posts ports.PostService, profiles ports.ProfileService, dispatcher ViewDispatcher) *PostHandler {
	return &PostHandler{posts: posts, profiles: profiles, dispatcher: dispatcher}
}

// List returns a filtered, paginated page of posts. Anonymous callers only
// see published posts; authenticated authors may request their own drafts
// with status=draft.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Param        category  query     string  false  "Category slug"
// @Param        tag       query     string  false  "Tag slug"
// @Param        search    query     string  false  "Full-text search over title and excerpt"
// @Param        slug      query     string  false  "Exact slug match"
// @Param        status    query     string  false  "Post status (draft requires auth)"
// @Success      200       {object}  listPostsResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := domain.PostFilter{
		CategorySlug: c.QueryParam("category"),
		TagSlug:      c.QueryParam("tag"),
		Search:       c.QueryParam("search"),
		Slug:         c.QueryParam("slug"),
		Status:       domain.PostPublished,
		Page:         page,
		Limit:        limit,
	}

	// Drafts are only listable by their author (or any admin).
	if c.QueryParam("status") == string(domain.PostDraft) {
		userID, role := optionalClaims(c)
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required to list drafts")
		}
		filter.Status = domain.PostDraft
		if role != domain.RoleAdmin {
			filter.AuthorID = userID
		}
	}

	result, err := h.posts.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPostsResponse(result))
}

// Get resolves a post by ID or slug and records a page view for published
// posts. The view is enqueued off the request path; its success never
// affects the response.
//
// @Summary      Get a post by ID or slug
// @Tags         posts
// @Produce      json
// @Param        ref  path      string  true  "Post ID or slug"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{ref} [get]
func (h *PostHandler) Get(c echo.Context) error {
	userID, role := optionalClaims(c)
	includeDrafts := userID != ""

	post, err := h.posts.Get(c.Request().Context(), c.Param("ref"), includeDrafts)
	if err != nil {
		return err
	}

	// A draft is only visible to its author or an admin.
	if post.Status == domain.PostDraft && post.AuthorID != userID && role != domain.RoleAdmin {
		return domain.ErrPostNotFound
	}

	if post.Status == domain.PostPublished {
		h.dispatcher.Enqueue(domain.ViewEvent{
			PostID:     post.ID,
			ViewerHash: viewerHash(c, userID),
			Timestamp:  time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, post)
}

// Create creates a post authored by the authenticated user.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post fields"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, email, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	authorName := email
	if user, err := h.profiles.Get(c.Request().Context(), userID); err == nil {
		authorName = user.Name
	}

	post, err := h.posts.Create(c.Request().Context(), toCreatePostInput(req, userID, authorName))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update replaces the editable fields of a post. Only the author or an
// admin may modify it.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Post fields"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), toUpdatePostInput(req), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post. Only the author or an admin may delete it.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// viewerHash derives a stable, non-reversible viewer identity for view
// deduplication. Authenticated viewers dedup on user ID; anonymous viewers
// on remote IP plus user agent.
func viewerHash(c echo.Context, userID string) string {
	h := fnv.New64a()
	if userID != "" {
		_, _ = h.Write([]byte(userID))
	} else {
		_, _ = h.Write([]byte(c.RealIP()))
		_, _ = h.Write([]byte{'|'})
		_, _ = h.Write([]byte(c.Request().UserAgent()))
	}
	return fmt.Sprintf("%x", h.Sum64())
}
