package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a known identity. Created by the signup flow; consumed
// read-only everywhere else. Role is display-only and carries no
// authorization semantics.
type User struct {
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}
