package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetLegInput represents one leg in a create-bet request
type BetLegInput struct {
	SportID    *string         `json:"sport_id"`
	EventName  string          `json:"event_name"`
	EventDate  *time.Time      `json:"event_date"`
	Selection  string          `json:"selection"`
	Odds       decimal.Decimal `json:"odds"`
	League     *string         `json:"league"`
	MarketType *string         `json:"market_type"`
}

// CreateBetRequest represents the payload for placing a bet
type CreateBetRequest struct {
	BankrollID  string          `json:"bankroll_id"`
	BookmakerID *string         `json:"bookmaker_id"`
	BetType     string          `json:"bet_type"`
	Stake       decimal.Decimal `json:"stake"`
	PlacedAt    *time.Time      `json:"placed_at"`
	Notes       *string         `json:"notes"`
	Tags        []string        `json:"tags"`
	Legs        []BetLegInput   `json:"legs"`
}

// SettleBetRequest represents the payload for settling a bet.
// ActualReturn is mandatory for cashout, half_won and half_lost.
type SettleBetRequest struct {
	Status       string           `json:"status"`
	ActualReturn *decimal.Decimal `json:"actual_return"`
}
