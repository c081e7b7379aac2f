package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankrollStats holds the derived statistics for one bankroll
type BankrollStats struct {
	TotalBets    int             `json:"total_bets"`
	WonBets      int             `json:"won_bets"`
	LostBets     int             `json:"lost_bets"`
	PendingBets  int             `json:"pending_bets"`
	TotalStaked  decimal.Decimal `json:"total_staked"`
	TotalReturns decimal.Decimal `json:"total_returns"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	WinRate      decimal.Decimal `json:"win_rate"`
	ROI          decimal.Decimal `json:"roi"`
	ROC          decimal.Decimal `json:"roc"`
	AvgOdds      decimal.Decimal `json:"avg_odds"`
	AvgStake     decimal.Decimal `json:"avg_stake"`
}

// BalancePoint is one sample of a bankroll's running balance
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// ProfileStats holds the aggregate figures shown on a public profile
type ProfileStats struct {
	TotalBets   int             `json:"total_bets"`
	WonBets     int             `json:"won_bets"`
	LostBets    int             `json:"lost_bets"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	WinRate     decimal.Decimal `json:"win_rate"`
}

// PublicProfile is the read-only external projection of a user with a
// public tipster page
type PublicProfile struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	FullName  *string      `json:"full_name,omitempty"`
	AvatarURL *string      `json:"avatar_url,omitempty"`
	Bio       *string      `json:"bio,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Stats     ProfileStats `json:"stats"`
	Followers int          `json:"followers"`
	Following int          `json:"following"`
}

// PublicBankroll is the external projection of a public bankroll
type PublicBankroll struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialCapital decimal.Decimal `json:"initial_capital"`
	CurrentCapital decimal.Decimal `json:"current_capital"`
	CreatedAt      time.Time       `json:"created_at"`
	Profit         decimal.Decimal `json:"profit"`
	ROI            decimal.Decimal `json:"roi"`
}
