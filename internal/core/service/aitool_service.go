package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// AIToolService implements the embeddable tool gallery.
type AIToolService struct {
	repo   ports.AIToolRepository
	logger zerolog.Logger
}

func NewAIToolService(repo ports.AIToolRepository, logger zerolog.Logger) *AIToolService {
	return &AIToolService{repo: repo, logger: logger}
}

// List returns a page of tools. Anonymous callers only see active tools.
func (s *AIToolService) List(ctx context.Context, page, limit int, includeInactive bool) (*ports.ListToolsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, page, limit, !includeInactive)
	if err != nil {
		return nil, err
	}
	return &ports.ListToolsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *AIToolService) Get(ctx context.Context, id string) (*domain.AITool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AIToolService) Create(ctx context.Context, in ports.AIToolInput) (*domain.AITool, error) {
	if in.Name == "" || in.EmbedURL == "" {
		return nil, domain.ErrInvalidInput
	}
	slug := in.Slug
	if slug == "" {
		slug = domain.Slugify(in.Name)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := time.Now().UTC()
	tool, err := s.repo.Create(ctx, &domain.AITool{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		EmbedURL:    in.EmbedURL,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("tool_id", tool.ID).Str("name", tool.Name).Msg("tool created")
	return tool, nil
}

func (s *AIToolService) Update(ctx context.Context, id string, in ports.AIToolInput) (*domain.AITool, error) {
	tool, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.EmbedURL == "" {
		return nil, domain.ErrInvalidInput
	}

	tool.Name = in.Name
	if in.Slug != "" {
		tool.Slug = in.Slug
	}
	tool.Description = in.Description
	tool.EmbedURL = in.EmbedURL
	if in.Active != nil {
		tool.Active = *in.Active
	}
	tool.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *AIToolService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
