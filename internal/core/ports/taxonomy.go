package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// TaxonomyInput carries the editable fields of a category or tag.
type TaxonomyInput struct {
	Name        string
	Slug        string
	Description string
}

// TaxonomyService defines use-case operations over categories and tags.
type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in TaxonomyInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in TaxonomyInput) (*domain.Category, error)
	// DeleteCategory refuses to remove a category still referenced by posts.
	DeleteCategory(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, in TaxonomyInput) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id string, in TaxonomyInput) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// TagRepository defines the interface for tag persistence.
type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	FindByID(ctx context.Context, id string) (*domain.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}
