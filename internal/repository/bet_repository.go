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

// BetRepositoryImpl implements the BetRepository interface
type BetRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewBetRepository creates a new BetRepository
func NewBetRepository(db *pgxpool.Pool) domain.BetRepository {
	return &BetRepositoryImpl{db: db}
}

const betColumns = `
	id, user_id, bankroll_id, bookmaker_id, bet_type, stake, total_odds,
	potential_return, actual_return, profit_loss, status, placed_at,
	settled_at, notes, tags, created_at, updated_at
`

// Create inserts a new bet row
func (r *BetRepositoryImpl) Create(ctx context.Context, bet *domain.Bet) error {
	query := `
		INSERT INTO bets (
			id, user_id, bankroll_id, bookmaker_id, bet_type, stake,
			total_odds, potential_return, actual_return, profit_loss,
			status, placed_at, notes, tags, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	_, err := r.db.Exec(ctx, query,
		bet.ID,
		bet.UserID,
		bet.BankrollID,
		bet.BookmakerID,
		bet.BetType,
		bet.Stake,
		bet.TotalOdds,
		bet.PotentialReturn,
		bet.ActualReturn,
		bet.ProfitLoss,
		bet.Status,
		bet.PlacedAt,
		bet.Notes,
		bet.Tags,
		bet.CreatedAt,
		bet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// CreateLegs inserts the legs of a bet
func (r *BetRepositoryImpl) CreateLegs(ctx context.Context, legs []*domain.BetLeg) error {
	query := `
		INSERT INTO bet_legs (
			id, bet_id, sport_id, event_name, event_date, selection, odds,
			outcome, league, market_type, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	batch := &pgx.Batch{}
	for _, leg := range legs {
		batch.Queue(query,
			leg.ID,
			leg.BetID,
			leg.SportID,
			leg.EventName,
			leg.EventDate,
			leg.Selection,
			leg.Odds,
			leg.Outcome,
			leg.League,
			leg.MarketType,
			leg.CreatedAt,
			leg.UpdatedAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range legs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create bet legs: %w", err)
		}
	}

	return nil
}

// Delete removes a bet; its legs cascade at the store
func (r *BetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// GetByID retrieves a bet with its legs
func (r *BetRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bet by ID: %w", err)
	}

	legs, err := r.getLegs(ctx, id)
	if err != nil {
		return nil, err
	}
	bet.Legs = legs

	return bet, nil
}

// GetByBankrollID retrieves all bets in a bankroll, newest placed first
func (r *BetRepositoryImpl) GetByBankrollID(ctx context.Context, bankrollID uuid.UUID) ([]*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE bankroll_id = $1 ORDER BY placed_at DESC`
	return r.queryMany(ctx, query, bankrollID)
}

// GetByUserID retrieves all bets across a user's bankrolls. With publicOnly
// set, only bets belonging to public bankrolls are returned.
func (r *BetRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 ORDER BY placed_at DESC`
	if publicOnly {
		query = `
			SELECT ` + betColumnsPrefixed + `
			FROM bets b
			JOIN bankrolls bk ON bk.id = b.bankroll_id
			WHERE b.user_id = $1 AND bk.is_public = TRUE
			ORDER BY b.placed_at DESC
		`
	}
	return r.queryMany(ctx, query, userID)
}

const betColumnsPrefixed = `
	b.id, b.user_id, b.bankroll_id, b.bookmaker_id, b.bet_type, b.stake,
	b.total_odds, b.potential_return, b.actual_return, b.profit_loss,
	b.status, b.placed_at, b.settled_at, b.notes, b.tags, b.created_at,
	b.updated_at
`

// Settle persists a settled bet and applies its profit/loss to the owning
// bankroll's current capital inside a single transaction. The WHERE guard
// on status makes a concurrent double-settle lose cleanly instead of
// double-applying the profit.
func (r *BetRepositoryImpl) Settle(ctx context.Context, bet *domain.Bet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE bets
		SET status        = $1,
		    actual_return = $2,
		    profit_loss   = $3,
		    settled_at    = $4,
		    updated_at    = $5
		WHERE id = $6 AND status = 'pending'
	`,
		bet.Status,
		bet.ActualReturn,
		bet.ProfitLoss,
		bet.SettledAt,
		bet.UpdatedAt,
		bet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bet on settlement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetAlreadySettled
	}

	_, err = tx.Exec(ctx, `
		UPDATE bankrolls
		SET current_capital = current_capital + $1,
		    updated_at      = $2
		WHERE id = $3
	`,
		bet.ProfitLoss,
		bet.UpdatedAt,
		bet.BankrollID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply settlement to bankroll: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	return nil
}

func (r *BetRepositoryImpl) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Bet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []*domain.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}

	return bets, nil
}

func (r *BetRepositoryImpl) getLegs(ctx context.Context, betID uuid.UUID) ([]*domain.BetLeg, error) {
	query := `
		SELECT id, bet_id, sport_id, event_name, event_date, selection,
		       odds, outcome, league, market_type, created_at, updated_at
		FROM bet_legs
		WHERE bet_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet legs: %w", err)
	}
	defer rows.Close()

	var legs []*domain.BetLeg
	for rows.Next() {
		leg := &domain.BetLeg{}
		err := rows.Scan(
			&leg.ID,
			&leg.BetID,
			&leg.SportID,
			&leg.EventName,
			&leg.EventDate,
			&leg.Selection,
			&leg.Odds,
			&leg.Outcome,
			&leg.League,
			&leg.MarketType,
			&leg.CreatedAt,
			&leg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet leg: %w", err)
		}
		legs = append(legs, leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bet legs: %w", err)
	}

	return legs, nil
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	bet := &domain.Bet{}
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.BankrollID,
		&bet.BookmakerID,
		&bet.BetType,
		&bet.Stake,
		&bet.TotalOdds,
		&bet.PotentialReturn,
		&bet.ActualReturn,
		&bet.ProfitLoss,
		&bet.Status,
		&bet.PlacedAt,
		&bet.SettledAt,
		&bet.Notes,
		&bet.Tags,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return bet, nil
}
