package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// CreatePostInput carries all data needed to create a post. Author fields
// come from the session claims, never from the request body.
type CreatePostInput struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	CategoryID    string
	TagIDs        []string
	Status        domain.PostStatus
	AuthorID      string
	AuthorName    string
}

// UpdatePostInput carries a full replacement of the editable post fields.
type UpdatePostInput struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	CategoryID    string
	TagIDs        []string
	Status        domain.PostStatus
}

// ListPostsResult is the paginated listing envelope.
type ListPostsResult struct {
	Items      []domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines use-case operations for posts.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	// Get resolves ref as an ID first, then as a slug. Drafts are only
	// visible when includeDrafts is set.
	Get(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) (*ListPostsResult, error)
	// Update enforces ownership: only the author or an admin may modify.
	Update(ctx context.Context, id string, in UpdatePostInput, actorID, actorRole string) (*domain.Post, error)
	Delete(ctx context.Context, id string, actorID, actorRole string) error
}

// PostRepository defines the interface for post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status domain.PostStatus) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountByTag(ctx context.Context, tagID string) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.Post, error)
}
