package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// TaxonomyService implements category and tag management.
type TaxonomyService struct {
	categories ports.CategoryRepository
	tags       ports.TagRepository
	posts      ports.PostRepository
	logger     zerolog.Logger
}

func NewTaxonomyService(categories ports.CategoryRepository, tags ports.TagRepository, posts ports.PostRepository, logger zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{categories: categories, tags: tags, posts: posts, logger: logger}
}

// ListCategories returns all categories with their post counts.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		n, err := s.posts.CountByCategory(ctx, cats[i].ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("category_id", cats[i].ID).Msg("post count failed")
			continue
		}
		cats[i].PostCount = n
	}
	return cats, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in ports.TaxonomyInput) (*domain.Category, error) {
	name, slug, err := normalizeTaxonomy(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.categories.Create(ctx, &domain.Category{
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, id string, in ports.TaxonomyInput) (*domain.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, slug, err := normalizeTaxonomy(in)
	if err != nil {
		return nil, err
	}

	cat.Name = name
	cat.Slug = slug
	cat.Description = in.Description
	cat.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses to remove a category still referenced by posts.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.posts.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}
	return s.categories.Delete(ctx, id)
}

// ListTags returns all tags with their post counts.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		n, err := s.posts.CountByTag(ctx, tags[i].ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag_id", tags[i].ID).Msg("post count failed")
			continue
		}
		tags[i].PostCount = n
	}
	return tags, nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, in ports.TaxonomyInput) (*domain.Tag, error) {
	name, slug, err := normalizeTaxonomy(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.tags.Create(ctx, &domain.Tag{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *TaxonomyService) UpdateTag(ctx context.Context, id string, in ports.TaxonomyInput) (*domain.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, slug, err := normalizeTaxonomy(in)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Slug = slug
	tag.UpdatedAt = time.Now().UTC()
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag. Posts keep dangling tag IDs; list views drop them.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id string) error {
	if _, err := s.tags.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

func normalizeTaxonomy(in ports.TaxonomyInput) (name, slug string, err error) {
	if in.Name == "" {
		return "", "", domain.ErrInvalidInput
	}
	slug = in.Slug
	if slug == "" {
		slug = domain.Slugify(in.Name)
	}
	if slug == "" {
		return "", "", domain.ErrInvalidInput
	}
	return in.Name, slug, nil
}
