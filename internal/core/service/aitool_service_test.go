package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

func TestAIToolService_Create_DefaultsActive(t *testing.T) {
	svc := NewAIToolService(newStubAIToolRepo(), zerolog.Nop())

	tool, err := svc.Create(context.Background(), ports.AIToolInput{
		Name:     "Prompt Helper",
		EmbedURL: "https://tools.example.com/prompt",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !tool.Active {
		t.Fatalf("expected tool active by default")
	}
	if tool.Slug != "prompt-helper" {
		t.Fatalf("unexpected slug: %s", tool.Slug)
	}
}

func TestAIToolService_List_AnonymousSeesActiveOnly(t *testing.T) {
	repo := newStubAIToolRepo()
	svc := NewAIToolService(repo, zerolog.Nop())

	inactive := false
	if _, err := svc.Create(context.Background(), ports.AIToolInput{
		Name: "Hidden", EmbedURL: "https://example.com/hidden", Active: &inactive,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.AIToolInput{
		Name: "Visible", EmbedURL: "https://example.com/visible",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	public, err := svc.List(context.Background(), 1, 10, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(public.Items) != 1 || public.Items[0].Name != "Visible" {
		t.Fatalf("anonymous listing leaked inactive tools: %+v", public.Items)
	}

	all, err := svc.List(context.Background(), 1, 10, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("admin listing incomplete: %+v", all.Items)
	}
}

func TestAIToolService_Update_TogglesActive(t *testing.T) {
	svc := NewAIToolService(newStubAIToolRepo(), zerolog.Nop())

	tool, err := svc.Create(context.Background(), ports.AIToolInput{
		Name: "Toggle", EmbedURL: "https://example.com/toggle",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	off := false
	updated, err := svc.Update(context.Background(), tool.ID, ports.AIToolInput{
		Name: "Toggle", EmbedURL: "https://example.com/toggle", Active: &off,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active {
		t.Fatalf("active flag not toggled off")
	}
}

func TestAIToolService_Delete_Missing(t *testing.T) {
	svc := NewAIToolService(newStubAIToolRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}
