package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"betanalytix/internal/domain"
)

// ProfileRepositoryImpl implements the ProfileRepository interface
type ProfileRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

const profileColumns = `
	id, email, username, full_name, avatar_url, bio, timezone,
	password_hash, is_public, created_at, updated_at
`

// Create creates a new profile
func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, username, full_name, avatar_url, bio, timezone,
			password_hash, is_public, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.Email,
		profile.Username,
		profile.FullName,
		profile.AvatarURL,
		profile.Bio,
		profile.Timezone,
		profile.PasswordHash,
		profile.IsPublic,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a profile by username
func (r *ProfileRepositoryImpl) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// Update persists profile edits
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name  = $1,
		    avatar_url = $2,
		    bio        = $3,
		    timezone   = $4,
		    is_public  = $5,
		    updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		profile.FullName,
		profile.AvatarURL,
		profile.Bio,
		profile.Timezone,
		profile.IsPublic,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ProfileRepositoryImpl) scanOne(row pgx.Row) (*domain.Profile, error) {
	profile := &domain.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.Username,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Bio,
		&profile.Timezone,
		&profile.PasswordHash,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
