package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bankroll represents a named pool of capital a user tracks bets against.
// InitialCapital and Currency are fixed at creation; CurrentCapital only
// moves through bet settlement.
type Bankroll struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
	CurrentCapital decimal.Decimal `json:"current_capital"`
	Currency       string          `json:"currency"`
	IsActive       bool            `json:"is_active"`
	IsPublic       bool            `json:"is_public"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewBankroll creates a bankroll with CurrentCapital initialized to
// InitialCapital.
func NewBankroll(userID uuid.UUID, name string, description *string, initialCapital decimal.Decimal, currency string) (*Bankroll, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if initialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Field: "initial_capital", Message: "initial capital must be greater than zero"}
	}
	if len(currency) != 3 {
		return nil, &ValidationError{Field: "currency", Message: "currency must be a 3-letter code"}
	}

	now := time.Now()
	return &Bankroll{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           strings.TrimSpace(name),
		Description:    description,
		InitialCapital: initialCapital,
		CurrentCapital: initialCapital,
		Currency:       strings.ToUpper(currency),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Profit returns the bankroll-level profit/loss: current minus initial capital.
func (b *Bankroll) Profit() decimal.Decimal {
	return b.CurrentCapital.Sub(b.InitialCapital)
}

// ROI returns the bankroll-level return on capital as a percentage.
// Defined as 0 when initial capital is 0.
func (b *Bankroll) ROI() decimal.Decimal {
	if b.InitialCapital.IsZero() {
		return decimal.Zero
	}
	return b.Profit().Div(b.InitialCapital).Mul(decimal.NewFromInt(100))
}
