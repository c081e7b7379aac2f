// Package oddsmath holds the pure odds and return arithmetic. All values are
// fixed-point decimals; rounding to 2 places happens only at the
// presentation/persistence boundary, never inside a calculation.
package oddsmath

import (
	"github.com/shopspring/decimal"

	"betanalytix/internal/domain"
)

// MinLegOdds is the lowest odds accepted for a single leg.
var MinLegOdds = decimal.NewFromFloat(1.01)

// TotalOdds returns the product of all leg odds, the multiplicative fold
// starting at 1. For a single bet this degenerates to the one leg's odds.
// Callers validate that at least one leg exists before reaching here.
func TotalOdds(legs []*domain.BetLeg) decimal.Decimal {
	total := decimal.NewFromInt(1)
	for _, leg := range legs {
		total = total.Mul(leg.Odds)
	}
	return total
}

// PotentialReturn returns stake multiplied by total odds.
func PotentialReturn(stake, totalOdds decimal.Decimal) decimal.Decimal {
	return stake.Mul(totalOdds)
}

// ValidLegOdds reports whether odds meet the per-leg minimum.
func ValidLegOdds(odds decimal.Decimal) bool {
	return odds.GreaterThanOrEqual(MinLegOdds)
}

// Round2 rounds a value to 2 decimal places for display and storage.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
