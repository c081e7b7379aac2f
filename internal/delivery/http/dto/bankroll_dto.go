package dto

import "github.com/shopspring/decimal"

// CreateBankrollRequest represents the payload for creating a bankroll
type CreateBankrollRequest struct {
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
	Currency       string          `json:"currency"`
	IsPublic       bool            `json:"is_public"`
}

// UpdateBankrollRequest represents bankroll edits. Initial capital and
// currency are immutable and current capital only moves through settlement,
// so none of them appear here.
type UpdateBankrollRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	IsPublic    *bool   `json:"is_public"`
}
