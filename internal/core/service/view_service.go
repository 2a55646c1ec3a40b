package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/api/metrics"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// ViewDeduper abstracts the per-viewer dedup store (Redis).
type ViewDeduper interface {
	IsDuplicate(ctx context.Context, postID, viewerHash string) (bool, error)
	Mark(ctx context.Context, postID, viewerHash string) error
}

type viewService struct {
	posts ports.PostRepository
	dedup ViewDeduper
	log   zerolog.Logger
}

// NewViewService returns a ViewService implementation.
func NewViewService(posts ports.PostRepository, dedup ViewDeduper, log zerolog.Logger) ports.ViewService {
	return &viewService{posts: posts, dedup: dedup, log: log}
}

// Process deduplicates and records a single page view.
func (s *viewService) Process(ctx context.Context, ev domain.ViewEvent) error {
	// 1. Dedup check — fail open so a Redis outage never drops views.
	isDup, err := s.dedup.IsDuplicate(ctx, ev.PostID, ev.ViewerHash)
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", ev.PostID).Msg("view dedup check failed, counting anyway")
	} else if isDup {
		metrics.ViewsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("post_id", ev.PostID).Msg("duplicate view skipped")
		return nil
	}
	metrics.ViewsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Mark before writing so a retry of the same event is absorbed.
	if markErr := s.dedup.Mark(ctx, ev.PostID, ev.ViewerHash); markErr != nil {
		s.log.Warn().Err(markErr).Str("post_id", ev.PostID).Msg("failed to set view dedup key")
	}

	// 3. Increment the persistent counter.
	if err := s.posts.IncrementViews(ctx, ev.PostID); err != nil {
		metrics.ViewsErrorsTotal.WithLabelValues("increment_failed").Inc()
		return fmt.Errorf("process view: %w", err)
	}

	metrics.ViewsProcessedTotal.Inc()
	return nil
}
