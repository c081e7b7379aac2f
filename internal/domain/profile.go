package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a registered user of the application
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     *string   `json:"full_name,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Timezone     string    `json:"timezone"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
