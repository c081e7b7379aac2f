package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sport represents a sport available for bet legs
type Sport struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmaker represents a bookmaker a bet can be placed with. Custom
// bookmakers are owned by the user who created them.
type Bookmaker struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Name       string     `json:"name"`
	WebsiteURL *string    `json:"website_url,omitempty"`
	IsCustom   bool       `json:"is_custom"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}
