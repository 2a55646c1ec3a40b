package domain

import "time"

// MediaStatus tracks the two-phase upload: a record is created when the
// presigned URL is issued and confirmed once the client reports completion.
type MediaStatus string

const (
	MediaPending   MediaStatus = "pending"
	MediaConfirmed MediaStatus = "confirmed"
)

// Media is an uploaded object (image, attachment) referenced by posts,
// tools, or site settings.
type Media struct {
	ID          string      `json:"id"`
	Key         string      `json:"key"`
	FileName    string      `json:"file_name"`
	ContentType string      `json:"content_type"`
	Size        int64       `json:"size"`
	Purpose     string      `json:"purpose,omitempty"`
	URL         string      `json:"url,omitempty"`
	Status      MediaStatus `json:"status"`
	UploaderID  string      `json:"uploader_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
