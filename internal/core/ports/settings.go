package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// SettingsService reads and updates the site-wide configuration document.
type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error)
}

// SettingsRepository defines the interface for settings persistence.
// Load returns (nil, nil) when no document has been saved yet.
type SettingsRepository interface {
	Load(ctx context.Context) (*domain.SiteSettings, error)
	Save(ctx context.Context, s *domain.SiteSettings) error
}

// SettingsCache is a read-through cache in front of SettingsRepository.
// Get returns (nil, nil) on a miss; failures are soft.
type SettingsCache interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Set(ctx context.Context, s *domain.SiteSettings) error
	Invalidate(ctx context.Context) error
}
