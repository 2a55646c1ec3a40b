package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/api/metrics"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type PostService struct {
	repo       ports.PostRepository
	categories ports.CategoryRepository
	tags       ports.TagRepository
	logger     zerolog.Logger
}

func NewPostService(repo ports.PostRepository, categories ports.CategoryRepository, tags ports.TagRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, categories: categories, tags: tags, logger: logger}
}

// Create persists a new post. The slug is derived from the title when the
// client does not supply one; a colliding slug fails with ErrSlugExists.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if in.Title == "" || in.Content == "" || in.AuthorID == "" {
		return nil, domain.ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = domain.PostDraft
	}
	if !domain.ValidPostStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	slug := in.Slug
	if slug == "" {
		slug = domain.Slugify(in.Title)
	}
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:         in.Title,
		Slug:          slug,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		CategoryID:    in.CategoryID,
		TagIDs:        in.TagIDs,
		AuthorID:      in.AuthorID,
		AuthorName:    in.AuthorName,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == domain.PostPublished {
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().Str("post_id", created.ID).Str("slug", created.Slug).Msg("post created")
	return created, nil
}

// Get resolves ref as an ObjectID first, then as a slug. Drafts are hidden
// unless includeDrafts is set.
func (s *PostService) Get(ctx context.Context, ref string, includeDrafts bool) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, ref)
	if errors.Is(err, domain.ErrPostNotFound) {
		post, err = s.repo.FindBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	if post.Status != domain.PostPublished && !includeDrafts {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// List returns a page of posts. Category and tag filters are given as slugs
// and resolved to IDs here; an unknown slug yields an empty page rather
// than an error, matching what a visitor following a stale link should see.
func (s *PostService) List(ctx context.Context, filter domain.PostFilter) (*ports.ListPostsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	empty := &ports.ListPostsResult{Items: []domain.Post{}, Page: filter.Page, Limit: filter.Limit}

	if filter.CategorySlug != "" {
		cat, err := s.categories.FindBySlug(ctx, filter.CategorySlug)
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return empty, nil
		} else if err != nil {
			return nil, err
		}
		filter.CategorySlug = cat.ID
	}
	if filter.TagSlug != "" {
		tag, err := s.tags.FindBySlug(ctx, filter.TagSlug)
		if errors.Is(err, domain.ErrTagNotFound) {
			return empty, nil
		} else if err != nil {
			return nil, err
		}
		filter.TagSlug = tag.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Update replaces the editable fields. Only the author or an admin may
// modify a post. The first transition to published stamps PublishedAt once.
func (s *PostService) Update(ctx context.Context, id string, in ports.UpdatePostInput, actorID, actorRole string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if in.Title == "" || in.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = post.Status
	}
	if !domain.ValidPostStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	slug := in.Slug
	if slug == "" {
		slug = domain.Slugify(in.Title)
	}

	if in.CategoryID != "" && in.CategoryID != post.CategoryID {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	post.Title = in.Title
	post.Slug = slug
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.FeaturedImage = in.FeaturedImage
	post.CategoryID = in.CategoryID
	post.TagIDs = in.TagIDs
	if status == domain.PostPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.Status = status
	post.UpdatedAt = now

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author or an admin may delete.
func (s *PostService) Delete(ctx context.Context, id string, actorID, actorRole string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.logger.Info().Str("post_id", id).Str("actor_id", actorID).Msg("post deleted")
	return nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
