package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func pendingBet(stake, potentialReturn float64) *Bet {
	return &Bet{
		Stake:           decimal.NewFromFloat(stake),
		PotentialReturn: decimal.NewFromFloat(potentialReturn),
		Status:          BetStatusPending,
	}
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestSettleWonDerivesPotentialReturn(t *testing.T) {
	bet := pendingBet(50, 90)
	now := time.Now()

	if err := bet.Settle(BetStatusWon, nil, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bet.Status != BetStatusWon {
		t.Errorf("expected status won, got %s", bet.Status)
	}
	if !bet.ActualReturn.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected actual return 90, got %s", bet.ActualReturn)
	}
	if !bet.ProfitLoss.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected profit 40, got %s", bet.ProfitLoss)
	}
	if bet.SettledAt == nil || !bet.SettledAt.Equal(now) {
		t.Errorf("expected settled_at %v, got %v", now, bet.SettledAt)
	}
}

func TestSettleLostDerivesZeroReturn(t *testing.T) {
	bet := pendingBet(50, 90)

	if err := bet.Settle(BetStatusLost, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bet.ActualReturn.IsZero() {
		t.Errorf("expected actual return 0, got %s", bet.ActualReturn)
	}
	if !bet.ProfitLoss.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected profit -50, got %s", bet.ProfitLoss)
	}
}

func TestSettleVoidRefundsStake(t *testing.T) {
	bet := pendingBet(50, 90)

	if err := bet.Settle(BetStatusVoid, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bet.ActualReturn.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected actual return 50, got %s", bet.ActualReturn)
	}
	if !bet.ProfitLoss.IsZero() {
		t.Errorf("expected profit 0, got %s", bet.ProfitLoss)
	}
}

func TestSettleExplicitReturnOverridesDerived(t *testing.T) {
	bet := pendingBet(50, 90)

	if err := bet.Settle(BetStatusWon, dec(85.50), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bet.ActualReturn.Equal(decimal.NewFromFloat(85.50)) {
		t.Errorf("expected actual return 85.50, got %s", bet.ActualReturn)
	}
	if !bet.ProfitLoss.Equal(decimal.NewFromFloat(35.50)) {
		t.Errorf("expected profit 35.50, got %s", bet.ProfitLoss)
	}
}

func TestSettleCashoutRequiresExplicitReturn(t *testing.T) {
	for _, status := range []BetStatus{BetStatusCashout, BetStatusHalfWon, BetStatusHalfLost} {
		t.Run(string(status), func(t *testing.T) {
			bet := pendingBet(50, 90)

			err := bet.Settle(status, nil, time.Now())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != "actual_return" {
				t.Errorf("expected actual_return field, got %s", verr.Field)
			}
			if bet.Status != BetStatusPending {
				t.Errorf("bet mutated on failed settlement: %s", bet.Status)
			}
		})
	}
}

func TestSettleCashoutWithExplicitReturn(t *testing.T) {
	bet := pendingBet(50, 90)

	if err := bet.Settle(BetStatusCashout, dec(62), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bet.ProfitLoss.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected profit 12, got %s", bet.ProfitLoss)
	}
}

func TestSettleAlreadySettled(t *testing.T) {
	bet := pendingBet(50, 90)
	if err := bet.Settle(BetStatusWon, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := bet.Settle(BetStatusLost, nil, time.Now())
	if !errors.Is(err, ErrBetAlreadySettled) {
		t.Fatalf("expected ErrBetAlreadySettled, got %v", err)
	}
	if bet.Status != BetStatusWon {
		t.Errorf("second settlement changed status to %s", bet.Status)
	}
}

func TestSettleInvalidStatus(t *testing.T) {
	for _, status := range []BetStatus{BetStatusPending, "cancelled", ""} {
		bet := pendingBet(50, 90)

		err := bet.Settle(status, nil, time.Now())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("status %q: expected validation error, got %v", status, err)
		}
	}
}

func TestSettleNegativeReturnRejected(t *testing.T) {
	bet := pendingBet(50, 90)

	err := bet.Settle(BetStatusCashout, dec(-10), time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []BetStatus{BetStatusWon, BetStatusLost, BetStatusVoid, BetStatusCashout, BetStatusHalfWon, BetStatusHalfLost}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	if BetStatusPending.Terminal() {
		t.Error("pending should not be terminal")
	}
}
