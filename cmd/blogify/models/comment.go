package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an insert-only record tied to a post and an author.
// PostID is a plain reference: existence is not checked at write time,
// so an orphaned comment can reference a post id that was never issued.
type Comment struct {
	CommentID uuid.UUID `json:"comment_id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Joined display fields, populated on reads only
	AuthorName string `json:"author_name,omitempty"`
}
