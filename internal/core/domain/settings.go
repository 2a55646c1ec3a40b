package domain

import "time"

// SiteSettings is the single site-wide configuration document.
type SiteSettings struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	FaviconURL  string    `json:"favicon_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSiteSettings is returned when no settings document has been saved yet.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		Title:       "My Blog",
		Description: "A personal blog",
	}
}
