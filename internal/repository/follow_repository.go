package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"betanalytix/internal/domain"
)

// FollowRepositoryImpl implements the FollowRepository interface
type FollowRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) domain.FollowRepository {
	return &FollowRepositoryImpl{db: db}
}

// Create inserts a follower edge. ON CONFLICT makes repeated follows of the
// same user a no-op rather than an error.
func (r *FollowRepositoryImpl) Create(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// Delete removes a follower edge; deleting a non-existent edge is a no-op
func (r *FollowRepositoryImpl) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	if _, err := r.db.Exec(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	return nil
}

// Exists reports whether follower follows following
func (r *FollowRepositoryImpl) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

// CountFollowers returns the number of users following userID
func (r *FollowRepositoryImpl) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}

	return count, nil
}

// CountFollowing returns the number of users userID follows
func (r *FollowRepositoryImpl) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}

	return count, nil
}
