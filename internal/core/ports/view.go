package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// ViewService processes page-view events off the request path.
type ViewService interface {
	Process(ctx context.Context, event domain.ViewEvent) error
}
