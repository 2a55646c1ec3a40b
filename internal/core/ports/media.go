package ports

import (
	"context"
	"io"
	"time"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// UploadURLInput describes the object a client wants to upload.
type UploadURLInput struct {
	FileName   string
	FileType   string
	FileSize   int64
	Purpose    string
	UploaderID string
}

// UploadURLResult is the presigned-upload grant returned to the client.
type UploadURLResult struct {
	UploadURL string
	Key       string
	ExpiresAt time.Time
}

// ConfirmUploadInput identifies a completed upload.
type ConfirmUploadInput struct {
	Key      string
	FileName string
	FileType string
	FileSize int64
}

// ListMediaResult is the paginated media listing envelope.
type ListMediaResult struct {
	Items      []domain.Media
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MediaService defines the two-phase upload and library use-cases.
type MediaService interface {
	CreateUploadURL(ctx context.Context, in UploadURLInput) (*UploadURLResult, error)
	ConfirmUpload(ctx context.Context, in ConfirmUploadInput) (*domain.Media, error)
	// GetByKey returns the record for a stored object key.
	GetByKey(ctx context.Context, key string) (*domain.Media, error)
	List(ctx context.Context, page, limit int, contentType string) (*ListMediaResult, error)
	Delete(ctx context.Context, id string) error
}

// MediaRepository defines the interface for media record persistence.
type MediaRepository interface {
	Create(ctx context.Context, m *domain.Media) (*domain.Media, error)
	FindByID(ctx context.Context, id string) (*domain.Media, error)
	FindByKey(ctx context.Context, key string) (*domain.Media, error)
	List(ctx context.Context, page, limit int, contentType string) ([]domain.Media, int64, error)
	Update(ctx context.Context, m *domain.Media) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ObjectStore persists raw uploaded bytes under opaque keys.
type ObjectStore interface {
	Put(key string, r io.Reader, maxBytes int64) (int64, error)
	Open(key string) (io.ReadCloser, int64, error)
	Exists(key string) bool
	Delete(key string) error
}

// Presigner signs and validates expiring upload grants. The signature binds
// the HTTP method, object key, and expiry so a grant cannot be replayed for
// a different object or verb.
type Presigner interface {
	Sign(method, key string, expires time.Time) string
	Verify(method, key string, expires time.Time, signature string) error
}
