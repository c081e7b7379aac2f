package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetType represents the type of a bet
type BetType string

// BetType constants
const (
	BetTypeSingle      BetType = "single"
	BetTypeAccumulator BetType = "accumulator"
	BetTypeSystem      BetType = "system"
)

// Valid reports whether the bet type is one of the known types.
func (t BetType) Valid() bool {
	switch t {
	case BetTypeSingle, BetTypeAccumulator, BetTypeSystem:
		return true
	}
	return false
}

// BetStatus represents the lifecycle state of a bet
type BetStatus string

// BetStatus constants. A bet starts pending and moves to exactly one of the
// terminal statuses on settlement.
const (
	BetStatusPending  BetStatus = "pending"
	BetStatusWon      BetStatus = "won"
	BetStatusLost     BetStatus = "lost"
	BetStatusVoid     BetStatus = "void"
	BetStatusCashout  BetStatus = "cashout"
	BetStatusHalfWon  BetStatus = "half_won"
	BetStatusHalfLost BetStatus = "half_lost"
)

// Terminal reports whether the status is a settled (terminal) status.
func (s BetStatus) Terminal() bool {
	switch s {
	case BetStatusWon, BetStatusLost, BetStatusVoid, BetStatusCashout, BetStatusHalfWon, BetStatusHalfLost:
		return true
	}
	return false
}

// RequiresExplicitReturn reports whether settling with this status needs a
// caller-supplied return amount. Cashout and half outcomes have no derivable
// amount; defaulting them silently to zero would corrupt the ledger.
func (s BetStatus) RequiresExplicitReturn() bool {
	switch s {
	case BetStatusCashout, BetStatusHalfWon, BetStatusHalfLost:
		return true
	}
	return false
}

// LegOutcome represents the leg-level result, tracked independently of the
// bet-level status
type LegOutcome string

// LegOutcome constants
const (
	LegOutcomePending LegOutcome = "pending"
	LegOutcomeWon     LegOutcome = "won"
	LegOutcomeLost    LegOutcome = "lost"
	LegOutcomeVoid    LegOutcome = "void"
	LegOutcomePush    LegOutcome = "push"
)

// Bet represents a single wagered stake against one or more legs
type Bet struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	BankrollID      uuid.UUID       `json:"bankroll_id"`
	BookmakerID     *uuid.UUID      `json:"bookmaker_id,omitempty"`
	BetType         BetType         `json:"bet_type"`
	Stake           decimal.Decimal `json:"stake"`
	TotalOdds       decimal.Decimal `json:"total_odds"`
	PotentialReturn decimal.Decimal `json:"potential_return"`
	ActualReturn    decimal.Decimal `json:"actual_return"`
	ProfitLoss      decimal.Decimal `json:"profit_loss"`
	Status          BetStatus       `json:"status"`
	PlacedAt        time.Time       `json:"placed_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Legs []*BetLeg `json:"legs,omitempty"`
}

// BetLeg represents one selection within a bet
type BetLeg struct {
	ID         uuid.UUID       `json:"id"`
	BetID      uuid.UUID       `json:"bet_id"`
	SportID    *uuid.UUID      `json:"sport_id,omitempty"`
	EventName  string          `json:"event_name"`
	EventDate  *time.Time      `json:"event_date,omitempty"`
	Selection  string          `json:"selection"`
	Odds       decimal.Decimal `json:"odds"`
	Outcome    LegOutcome      `json:"outcome"`
	League     *string         `json:"league,omitempty"`
	MarketType *string         `json:"market_type,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Pending reports whether the bet is still open.
func (b *Bet) Pending() bool {
	return b.Status == BetStatusPending
}

// Settle resolves a pending bet to a terminal status, fixing the actual
// return and profit/loss. The return amount resolves as:
//   - explicit amount when provided;
//   - won: the potential return;
//   - lost: zero;
//   - void: the stake, fully refunded;
//   - cashout/half_won/half_lost: the explicit amount is mandatory.
func (b *Bet) Settle(status BetStatus, actualReturn *decimal.Decimal, now time.Time) error {
	if !status.Terminal() {
		return &ValidationError{Field: "status", Message: "invalid settlement status: " + string(status)}
	}
	if !b.Pending() {
		return ErrBetAlreadySettled
	}
	if actualReturn != nil && actualReturn.IsNegative() {
		return &ValidationError{Field: "actual_return", Message: "actual return cannot be negative"}
	}

	var resolved decimal.Decimal
	switch {
	case actualReturn != nil:
		resolved = *actualReturn
	case status == BetStatusWon:
		resolved = b.PotentialReturn
	case status == BetStatusLost:
		resolved = decimal.Zero
	case status == BetStatusVoid:
		resolved = b.Stake
	default:
		return &ValidationError{Field: "actual_return", Message: "actual return is required for status " + string(status)}
	}

	b.Status = status
	b.ActualReturn = resolved
	b.ProfitLoss = resolved.Sub(b.Stake)
	b.SettledAt = &now
	b.UpdatedAt = now
	return nil
}
