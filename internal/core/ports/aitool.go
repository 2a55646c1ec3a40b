package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// AIToolInput carries the editable fields of a gallery tool.
type AIToolInput struct {
	Name        string
	Slug        string
	Description string
	EmbedURL    string
	Active      *bool
}

// ListToolsResult is the paginated tool listing envelope.
type ListToolsResult struct {
	Items      []domain.AITool
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AIToolService defines use-case operations for the tool gallery.
type AIToolService interface {
	List(ctx context.Context, page, limit int, includeInactive bool) (*ListToolsResult, error)
	Get(ctx context.Context, id string) (*domain.AITool, error)
	Create(ctx context.Context, in AIToolInput) (*domain.AITool, error)
	Update(ctx context.Context, id string, in AIToolInput) (*domain.AITool, error)
	Delete(ctx context.Context, id string) error
}

// AIToolRepository defines the interface for tool persistence.
type AIToolRepository interface {
	Create(ctx context.Context, t *domain.AITool) (*domain.AITool, error)
	FindByID(ctx context.Context, id string) (*domain.AITool, error)
	List(ctx context.Context, page, limit int, activeOnly bool) ([]domain.AITool, int64, error)
	Update(ctx context.Context, t *domain.AITool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
