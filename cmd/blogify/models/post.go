package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is an insert-only record. CoverImageURL, once set, is immutable
// and always points at an asset that was staged before the row was
// written.
type Post struct {
	PostID        uuid.UUID `json:"post_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	AuthorID      uuid.UUID `json:"author_id"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined display fields, populated on reads only
	AuthorName string `json:"author_name,omitempty"`
}

// HasCover reports whether the post carries a staged cover image
func (p *Post) HasCover() bool {
	return p.CoverImageURL != nil && *p.CoverImageURL != ""
}

// CoverURL returns the content address of the cover image, or "" when
// the post has none. Templates use this instead of the nullable field.
func (p *Post) CoverURL() string {
	if p.CoverImageURL == nil {
		return ""
	}
	return *p.CoverImageURL
}
