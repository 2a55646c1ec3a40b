package handler

import (
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

type createPostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content" validate:"required"`
	FeaturedImage string   `json:"featured_image"`
	CategoryID    string   `json:"category_id"`
	TagIDs        []string `json:"tag_ids"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published"`
}

type updatePostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content" validate:"required"`
	FeaturedImage string   `json:"featured_image"`
	CategoryID    string   `json:"category_id"`
	TagIDs        []string `json:"tag_ids"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published"`
}

type listPostsResponse struct {
	Posts      []domain.Post `json:"posts"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

func toListPostsResponse(r *ports.ListPostsResult) listPostsResponse {
	return listPostsResponse{
		Posts:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

func toCreatePostInput(r createPostRequest, authorID, authorName string) ports.CreatePostInput {
	status := domain.PostStatus(r.Status)
	if r.Status == "" {
		status = domain.PostDraft
	}
	return ports.CreatePostInput{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		CategoryID:    r.CategoryID,
		TagIDs:        r.TagIDs,
		Status:        status,
		AuthorID:      authorID,
		AuthorName:    authorName,
	}
}

// toUpdatePostInput leaves an empty status empty; the service keeps the
// post's current status in that case.
func toUpdatePostInput(r updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		CategoryID:    r.CategoryID,
		TagIDs:        r.TagIDs,
		Status:        domain.PostStatus(r.Status),
	}
}
