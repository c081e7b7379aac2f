package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow represents a directed follower edge between two users. At most one
// edge exists per ordered pair; self-follows are rejected before the store.
type Follow struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
