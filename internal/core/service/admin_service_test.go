package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

func newTestAdminService(users *stubUserRepo, posts *stubPostRepo, media *stubMediaRepo, tools *stubAIToolRepo) *AdminService {
	return NewAdminService(users, posts, media, tools, bcrypt.MinCost, zerolog.Nop())
}

func TestAdminService_Dashboard(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	media := newStubMediaRepo()
	tools := newStubAIToolRepo()
	svc := newTestAdminService(users, posts, media, tools)

	ctx := context.Background()
	_, _ = users.Create(ctx, &domain.User{Email: "a@example.com"})
	_, _ = posts.Create(ctx, &domain.Post{Title: "P1", Slug: "p1", Status: domain.PostPublished})
	_, _ = posts.Create(ctx, &domain.Post{Title: "P2", Slug: "p2", Status: domain.PostDraft})
	_, _ = media.Create(ctx, &domain.Media{Key: "k"})
	_, _ = tools.Create(ctx, &domain.AITool{Name: "T", Slug: "t"})

	p, _ := posts.FindBySlug(ctx, "p1")
	_ = posts.IncrementViews(ctx, p.ID)
	_ = posts.IncrementViews(ctx, p.ID)

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if stats.PostsTotal != 2 || stats.PostsPublished != 1 || stats.PostsDraft != 1 {
		t.Fatalf("unexpected post counts: %+v", stats)
	}
	if stats.Users != 1 || stats.Media != 1 || stats.Tools != 1 {
		t.Fatalf("unexpected entity counts: %+v", stats)
	}
	if stats.TotalViews != 2 {
		t.Fatalf("expected 2 total views, got %d", stats.TotalViews)
	}
	if len(stats.RecentPosts) != 2 {
		t.Fatalf("expected 2 recent posts, got %d", len(stats.RecentPosts))
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Admin Made",
		Email:    "made@example.com",
		Password: "pass",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass")) != nil {
		t.Fatalf("password not hashed correctly")
	}
}

func TestAdminService_CreateUser_InvalidRole(t *testing.T) {
	svc := newTestAdminService(newStubUserRepo(), newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "X",
		Email:    "x@example.com",
		Password: "pass",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminService_CreateUser_DuplicateEmail(t *testing.T) {
	svc := newTestAdminService(newStubUserRepo(), newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	in := ports.CreateUserInput{Name: "A", Email: "dup@example.com", Password: "pass", Role: domain.RoleUser}
	if _, err := svc.CreateUser(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), in); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAdminService_UpdateUser_PartialFields(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "Before", Email: "before@example.com", Password: "pass", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %s", updated.Role)
	}
	if updated.Name != "Before" || updated.Email != "before@example.com" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("password hash changed without a new password")
	}
}

func TestAdminService_UpdateUser_RehashesPassword(t *testing.T) {
	svc := newTestAdminService(newStubUserRepo(), newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "R", Email: "r@example.com", Password: "old", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), created.ID, ports.UpdateUserInput{Password: "new"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new")) != nil {
		t.Fatalf("new password not stored")
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubPostRepo(), newStubMediaRepo(), newStubAIToolRepo())

	created, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "Gone", Email: "gone@example.com", Password: "pass", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
