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

// BankrollRepositoryImpl implements the BankrollRepository interface
type BankrollRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewBankrollRepository creates a new BankrollRepository
func NewBankrollRepository(db *pgxpool.Pool) domain.BankrollRepository {
	return &BankrollRepositoryImpl{db: db}
}

const bankrollColumns = `
	id, user_id, name, description, initial_capital, current_capital,
	currency, is_active, is_public, created_at, updated_at
`

// Create creates a new bankroll
func (r *BankrollRepositoryImpl) Create(ctx context.Context, bankroll *domain.Bankroll) error {
	query := `
		INSERT INTO bankrolls (
			id, user_id, name, description, initial_capital, current_capital,
			currency, is_active, is_public, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(ctx, query,
		bankroll.ID,
		bankroll.UserID,
		bankroll.Name,
		bankroll.Description,
		bankroll.InitialCapital,
		bankroll.CurrentCapital,
		bankroll.Currency,
		bankroll.IsActive,
		bankroll.IsPublic,
		bankroll.CreatedAt,
		bankroll.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bankroll: %w", err)
	}

	return nil
}

// GetByID retrieves a bankroll by ID
func (r *BankrollRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bankroll, error) {
	query := `SELECT ` + bankrollColumns + ` FROM bankrolls WHERE id = $1`

	bankroll, err := scanBankroll(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bankroll by ID: %w", err)
	}

	return bankroll, nil
}

// GetByUserID retrieves all bankrolls owned by a user, newest first
func (r *BankrollRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bankroll, error) {
	query := `SELECT ` + bankrollColumns + ` FROM bankrolls WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, userID)
}

// GetPublicByUserID retrieves the user's public bankrolls, newest first
func (r *BankrollRepositoryImpl) GetPublicByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bankroll, error) {
	query := `SELECT ` + bankrollColumns + ` FROM bankrolls WHERE user_id = $1 AND is_public = TRUE ORDER BY created_at DESC`
	return r.queryMany(ctx, query, userID)
}

// GetActiveIDs retrieves the IDs of all active bankrolls
func (r *BankrollRepositoryImpl) GetActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM bankrolls WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bankroll IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bankroll ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bankroll IDs: %w", err)
	}

	return ids, nil
}

// Update persists bankroll edits. Initial capital, currency and current
// capital are deliberately not part of the statement; the former two are
// immutable and the latter only moves through settlement.
func (r *BankrollRepositoryImpl) Update(ctx context.Context, bankroll *domain.Bankroll) error {
	query := `
		UPDATE bankrolls
		SET name        = $1,
		    description = $2,
		    is_active   = $3,
		    is_public   = $4,
		    updated_at  = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		bankroll.Name,
		bankroll.Description,
		bankroll.IsActive,
		bankroll.IsPublic,
		bankroll.UpdatedAt,
		bankroll.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bankroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes a bankroll; its bets and their legs cascade
func (r *BankrollRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bankrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bankroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *BankrollRepositoryImpl) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Bankroll, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bankrolls: %w", err)
	}
	defer rows.Close()

	var bankrolls []*domain.Bankroll
	for rows.Next() {
		bankroll, err := scanBankroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bankroll: %w", err)
		}
		bankrolls = append(bankrolls, bankroll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bankrolls: %w", err)
	}

	return bankrolls, nil
}

func scanBankroll(row pgx.Row) (*domain.Bankroll, error) {
	bankroll := &domain.Bankroll{}
	err := row.Scan(
		&bankroll.ID,
		&bankroll.UserID,
		&bankroll.Name,
		&bankroll.Description,
		&bankroll.InitialCapital,
		&bankroll.CurrentCapital,
		&bankroll.Currency,
		&bankroll.IsActive,
		&bankroll.IsPublic,
		&bankroll.CreatedAt,
		&bankroll.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return bankroll, nil
}
