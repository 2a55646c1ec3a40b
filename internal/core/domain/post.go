package domain

import "time"

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// ValidPostStatus reports whether s is one of the enumerated states.
func ValidPostStatus(s PostStatus) bool {
	return s == PostDraft || s == PostPublished
}

// Post is a blog article. Category and tags are stored as references;
// AuthorName is denormalised at creation time so list views never join.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	CategoryID    string     `json:"category_id,omitempty"`
	TagIDs        []string   `json:"tag_ids,omitempty"`
	AuthorID      string     `json:"author_id"`
	AuthorName    string     `json:"author_name"`
	Status        PostStatus `json:"status"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PostFilter narrows a post listing. Zero values mean "no constraint".
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	Search       string
	Slug         string
	Status       PostStatus
	AuthorID     string
	Page         int
	Limit        int
}

// ViewEvent is a single page view awaiting asynchronous processing.
type ViewEvent struct {
	PostID     string
	ViewerHash string
	Timestamp  time.Time
}
