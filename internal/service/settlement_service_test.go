package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
)

type settleBetRepo struct {
	fakeBetRepo

	bets       map[uuid.UUID]*domain.Bet
	settled    []*domain.Bet
	failSettle error
}

func newSettleBetRepo(bets ...*domain.Bet) *settleBetRepo {
	r := &settleBetRepo{bets: make(map[uuid.UUID]*domain.Bet)}
	for _, b := range bets {
		r.bets[b.ID] = b
	}
	return r
}

func (r *settleBetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	if bet, ok := r.bets[id]; ok {
		return bet, nil
	}
	return nil, domain.ErrNotFound
}

func (r *settleBetRepo) Settle(ctx context.Context, bet *domain.Bet) error {
	if r.failSettle != nil {
		return r.failSettle
	}
	r.settled = append(r.settled, bet)
	return nil
}

func newTestSettlementService(betRepo *settleBetRepo) *SettlementService {
	analytics := NewAnalyticsService(betRepo, &fakeBankrollRepo{}, nil, 0, nil, zap.NewNop())
	return NewSettlementService(betRepo, analytics, nil, zap.NewNop())
}

func newPendingBet(userID uuid.UUID, stake, potentialReturn float64) *domain.Bet {
	return &domain.Bet{
		ID:              uuid.New(),
		UserID:          userID,
		BankrollID:      uuid.New(),
		Stake:           decimal.NewFromFloat(stake),
		PotentialReturn: decimal.NewFromFloat(potentialReturn),
		Status:          domain.BetStatusPending,
	}
}

func TestSettlePersistsOutcome(t *testing.T) {
	userID := uuid.New()
	bet := newPendingBet(userID, 50, 90)
	repo := newSettleBetRepo(bet)
	svc := newTestSettlementService(repo)

	settled, err := svc.Settle(context.Background(), userID, bet.ID, domain.BetStatusWon, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settled.Status != domain.BetStatusWon {
		t.Errorf("expected won, got %s", settled.Status)
	}
	if !settled.ProfitLoss.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected profit 40, got %s", settled.ProfitLoss)
	}
	if len(repo.settled) != 1 {
		t.Fatalf("expected 1 persisted settlement, got %d", len(repo.settled))
	}
}

func TestSettleForeignBet(t *testing.T) {
	bet := newPendingBet(uuid.New(), 50, 90)
	repo := newSettleBetRepo(bet)
	svc := newTestSettlementService(repo)

	_, err := svc.Settle(context.Background(), uuid.New(), bet.ID, domain.BetStatusWon, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.settled) != 0 {
		t.Error("foreign settlement reached the store")
	}
}

func TestSettleMissingBet(t *testing.T) {
	svc := newTestSettlementService(newSettleBetRepo())

	_, err := svc.Settle(context.Background(), uuid.New(), uuid.New(), domain.BetStatusWon, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettleTwiceConflicts(t *testing.T) {
	userID := uuid.New()
	bet := newPendingBet(userID, 50, 90)
	repo := newSettleBetRepo(bet)
	svc := newTestSettlementService(repo)

	if _, err := svc.Settle(context.Background(), userID, bet.ID, domain.BetStatusWon, nil); err != nil {
		t.Fatalf("first settlement failed: %v", err)
	}

	_, err := svc.Settle(context.Background(), userID, bet.ID, domain.BetStatusLost, nil)
	if !errors.Is(err, domain.ErrBetAlreadySettled) {
		t.Fatalf("expected ErrBetAlreadySettled, got %v", err)
	}
	if len(repo.settled) != 1 {
		t.Errorf("expected exactly 1 persisted settlement, got %d", len(repo.settled))
	}
}

func TestSettleCashoutWithoutReturn(t *testing.T) {
	userID := uuid.New()
	bet := newPendingBet(userID, 50, 90)
	repo := newSettleBetRepo(bet)
	svc := newTestSettlementService(repo)

	_, err := svc.Settle(context.Background(), userID, bet.ID, domain.BetStatusCashout, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if bet.Status != domain.BetStatusPending {
		t.Errorf("failed settlement mutated the bet: %s", bet.Status)
	}
}
