package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// SettingsService serves the site-settings singleton through a cache.
type SettingsService struct {
	repo   ports.SettingsRepository
	cache  ports.SettingsCache
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, cache ports.SettingsCache, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, cache: cache, logger: logger}
}

// Get reads through the cache. Cache failures are soft; a missing document
// yields the defaults rather than an error.
func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("settings cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.DefaultSiteSettings()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			s.logger.Warn().Err(err).Msg("settings cache write failed")
		}
	}
	return settings, nil
}

// Update writes through and invalidates the cache.
func (s *SettingsService) Update(ctx context.Context, in *domain.SiteSettings) (*domain.SiteSettings, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	in.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("settings cache invalidation failed")
		}
	}

	s.logger.Info().Str("title", in.Title).Msg("site settings updated")
	return in, nil
}
