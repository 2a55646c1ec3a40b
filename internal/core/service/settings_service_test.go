package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

func TestSettingsService_DefaultsWhenMissing(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo, &stubSettingsCache{}, zerolog.Nop())

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if settings.Title != domain.DefaultSiteSettings().Title {
		t.Fatalf("expected default title, got %q", settings.Title)
	}
}

func TestSettingsService_ReadThroughCache(t *testing.T) {
	repo := &stubSettingsRepo{saved: &domain.SiteSettings{Title: "Stored"}}
	cache := &stubSettingsCache{}
	svc := NewSettingsService(repo, cache, zerolog.Nop())

	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("second get failed: %v", err)
	}

	// Second read must come from cache, not the repository.
	if repo.loads != 1 {
		t.Fatalf("expected 1 repository load, got %d", repo.loads)
	}
}

func TestSettingsService_CacheFailureIsSoft(t *testing.T) {
	repo := &stubSettingsRepo{saved: &domain.SiteSettings{Title: "Stored"}}
	cache := &stubSettingsCache{getErr: errors.New("redis down")}
	svc := NewSettingsService(repo, cache, zerolog.Nop())

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed despite cache error: %v", err)
	}
	if settings.Title != "Stored" {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

func TestSettingsService_UpdateInvalidatesCache(t *testing.T) {
	repo := &stubSettingsRepo{}
	cache := &stubSettingsCache{}
	svc := NewSettingsService(repo, cache, zerolog.Nop())

	// Prime the cache.
	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("prime failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), &domain.SiteSettings{Title: "New Title"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("update did not stamp updated_at")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidated)
	}

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if settings.Title != "New Title" {
		t.Fatalf("stale settings after update: %+v", settings)
	}
}

func TestSettingsService_UpdateRequiresTitle(t *testing.T) {
	svc := NewSettingsService(&stubSettingsRepo{}, &stubSettingsCache{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), &domain.SiteSettings{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
