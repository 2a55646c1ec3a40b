package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/api/metrics"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

const (
	uploadURLTTL   = 15 * time.Minute
	maxUploadBytes = 32 << 20 // 32 MiB
)

var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// MediaService implements the two-phase presigned upload flow: issue a
// signed, expiring PUT URL, then confirm once the object landed.
type MediaService struct {
	repo      ports.MediaRepository
	store     ports.ObjectStore
	presigner ports.Presigner
	baseURL   string
	logger    zerolog.Logger
}

func NewMediaService(repo ports.MediaRepository, store ports.ObjectStore, presigner ports.Presigner, baseURL string, logger zerolog.Logger) *MediaService {
	return &MediaService{
		repo:      repo,
		store:     store,
		presigner: presigner,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

// CreateUploadURL allocates an object key, records a pending media entry,
// and returns a presigned PUT URL valid for uploadURLTTL.
func (s *MediaService) CreateUploadURL(ctx context.Context, in ports.UploadURLInput) (*ports.UploadURLResult, error) {
	if in.FileName == "" || in.FileType == "" {
		return nil, domain.ErrInvalidInput
	}
	ext, ok := allowedContentTypes[in.FileType]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.FileSize > maxUploadBytes {
		return nil, domain.ErrInvalidInput
	}

	// Purpose is client-supplied and becomes the key prefix; slugify it so
	// no path or URL metacharacters survive into the key.
	purpose := domain.Slugify(in.Purpose)
	if purpose == "" {
		purpose = "uploads"
	}
	key := path.Join(purpose, uuid.NewString()+ext)

	now := time.Now().UTC()
	media := &domain.Media{
		Key:         key,
		FileName:    in.FileName,
		ContentType: in.FileType,
		Size:        in.FileSize,
		Purpose:     purpose,
		Status:      domain.MediaPending,
		UploaderID:  in.UploaderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.Create(ctx, media); err != nil {
		return nil, err
	}

	expires := now.Add(uploadURLTTL)
	sig := s.presigner.Sign("PUT", key, expires)
	uploadURL := fmt.Sprintf("%s/api/media/object/%s?expires=%d&signature=%s",
		s.baseURL, key, expires.Unix(), url.QueryEscape(sig))

	s.logger.Info().Str("key", key).Str("uploader_id", in.UploaderID).Msg("upload url issued")
	return &ports.UploadURLResult{UploadURL: uploadURL, Key: key, ExpiresAt: expires}, nil
}

// ConfirmUpload flips a pending record to confirmed once the object exists
// in the store, and assigns the public URL.
func (s *MediaService) ConfirmUpload(ctx context.Context, in ports.ConfirmUploadInput) (*domain.Media, error) {
	if in.Key == "" {
		return nil, domain.ErrInvalidInput
	}

	media, err := s.repo.FindByKey(ctx, in.Key)
	if err != nil {
		return nil, err
	}
	if !s.store.Exists(in.Key) {
		return nil, domain.ErrMediaNotFound
	}

	media.Status = domain.MediaConfirmed
	media.URL = s.baseURL + "/api/media/object/" + media.Key
	if in.FileSize > 0 {
		media.Size = in.FileSize
	}
	media.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, media); err != nil {
		return nil, err
	}

	metrics.MediaUploadsTotal.WithLabelValues(media.ContentType).Inc()
	s.logger.Info().Str("key", media.Key).Int64("size", media.Size).Msg("upload confirmed")
	return media, nil
}

// GetByKey returns the media record for a stored object key.
func (s *MediaService) GetByKey(ctx context.Context, key string) (*domain.Media, error) {
	return s.repo.FindByKey(ctx, key)
}

// List returns a page of media records, optionally filtered by content type
// prefix ("image", "application", ...).
func (s *MediaService) List(ctx context.Context, page, limit int, contentType string) (*ports.ListMediaResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, page, limit, contentType)
	if err != nil {
		return nil, err
	}
	return &ports.ListMediaResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Delete removes the record and the stored object. A missing object is not
// an error — the record is the source of truth.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(media.Key); err != nil {
		s.logger.Warn().Err(err).Str("key", media.Key).Msg("failed to delete stored object")
	}
	return nil
}
