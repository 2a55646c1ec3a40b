package handler

import (
	"time"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

type uploadURLRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FileType string `json:"file_type" validate:"required"`
	FileSize int64  `json:"file_size" validate:"gt=0"`
	Purpose  string `json:"purpose"`
}

type uploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type confirmUploadRequest struct {
	Key      string `json:"key" validate:"required"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

type listMediaResponse struct {
	Media      []domain.Media `json:"media"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func toListMediaResponse(r *ports.ListMediaResult) listMediaResponse {
	return listMediaResponse{
		Media:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
