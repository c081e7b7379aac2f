package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"betanalytix/internal/domain"
)

// SportRepositoryImpl implements the SportRepository interface
type SportRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSportRepository creates a new SportRepository
func NewSportRepository(db *pgxpool.Pool) domain.SportRepository {
	return &SportRepositoryImpl{db: db}
}

// GetActive retrieves active sports ordered by name
func (r *SportRepositoryImpl) GetActive(ctx context.Context) ([]*domain.Sport, error) {
	query := `
		SELECT id, name, icon, is_active, created_at
		FROM sports
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sports: %w", err)
	}
	defer rows.Close()

	var sports []*domain.Sport
	for rows.Next() {
		sport := &domain.Sport{}
		if err := rows.Scan(&sport.ID, &sport.Name, &sport.Icon, &sport.IsActive, &sport.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sport: %w", err)
		}
		sports = append(sports, sport)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sports: %w", err)
	}

	return sports, nil
}

// BookmakerRepositoryImpl implements the BookmakerRepository interface
type BookmakerRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewBookmakerRepository creates a new BookmakerRepository
func NewBookmakerRepository(db *pgxpool.Pool) domain.BookmakerRepository {
	return &BookmakerRepositoryImpl{db: db}
}

// GetActive retrieves active bookmakers visible to a user: the global
// catalog plus the user's own custom entries
func (r *BookmakerRepositoryImpl) GetActive(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmaker, error) {
	query := `
		SELECT id, user_id, name, website_url, is_custom, is_active, created_at
		FROM bookmakers
		WHERE is_active = TRUE AND (user_id IS NULL OR user_id = $1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmakers: %w", err)
	}
	defer rows.Close()

	var bookmakers []*domain.Bookmaker
	for rows.Next() {
		bookmaker := &domain.Bookmaker{}
		err := rows.Scan(
			&bookmaker.ID,
			&bookmaker.UserID,
			&bookmaker.Name,
			&bookmaker.WebsiteURL,
			&bookmaker.IsCustom,
			&bookmaker.IsActive,
			&bookmaker.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmaker: %w", err)
		}
		bookmakers = append(bookmakers, bookmaker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmakers: %w", err)
	}

	return bookmakers, nil
}

// Create adds a custom bookmaker for a user
func (r *BookmakerRepositoryImpl) Create(ctx context.Context, bookmaker *domain.Bookmaker) error {
	query := `
		INSERT INTO bookmakers (id, user_id, name, website_url, is_custom, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		bookmaker.ID,
		bookmaker.UserID,
		bookmaker.Name,
		bookmaker.WebsiteURL,
		bookmaker.IsCustom,
		bookmaker.IsActive,
		bookmaker.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bookmaker: %w", err)
	}

	return nil
}
