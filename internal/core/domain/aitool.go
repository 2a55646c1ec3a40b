package domain

import "time"

// AITool is an embeddable external tool shown in the tool gallery.
// Inactive tools are hidden from anonymous listings.
type AITool struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	EmbedURL    string    `json:"embed_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
