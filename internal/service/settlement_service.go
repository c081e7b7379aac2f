package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
	"betanalytix/internal/infra"
)

// SettlementService resolves pending bets to their terminal outcome and
// applies the resulting profit/loss to the owning bankroll's capital. The
// bet row and the bankroll balance move together in one transaction at the
// repository.
type SettlementService struct {
	betRepo   domain.BetRepository
	analytics *AnalyticsService
	metrics   *infra.Metrics
	logger    *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	betRepo domain.BetRepository,
	analytics *AnalyticsService,
	metrics *infra.Metrics,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		betRepo:   betRepo,
		analytics: analytics,
		metrics:   metrics,
		logger:    logger,
	}
}

// Settle resolves the bet to the given terminal status. actualReturn is
// required for cashout, half_won and half_lost; for won/lost/void it
// overrides the derived amount when provided. Settling a bet that is not
// pending fails with ErrBetAlreadySettled.
func (s *SettlementService) Settle(ctx context.Context, userID, betID uuid.UUID, status domain.BetStatus, actualReturn *decimal.Decimal) (*domain.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		s.countFailure()
		return nil, err
	}
	if bet.UserID != userID {
		s.countFailure()
		return nil, domain.ErrForbidden
	}

	if err := bet.Settle(status, actualReturn, time.Now()); err != nil {
		s.countFailure()
		return nil, err
	}

	if err := s.betRepo.Settle(ctx, bet); err != nil {
		s.countFailure()
		return nil, fmt.Errorf("failed to persist settlement: %w", err)
	}

	s.analytics.InvalidateStats(ctx, bet.BankrollID)
	if s.metrics != nil {
		s.metrics.BetsSettled.WithLabelValues(string(status)).Inc()
	}

	s.logger.Info("bet settled",
		zap.String("bet_id", bet.ID.String()),
		zap.String("bankroll_id", bet.BankrollID.String()),
		zap.String("status", string(status)),
		zap.String("actual_return", bet.ActualReturn.String()),
		zap.String("profit_loss", bet.ProfitLoss.String()))

	return bet, nil
}

func (s *SettlementService) countFailure() {
	if s.metrics != nil {
		s.metrics.SettlementFailures.Inc()
	}
}
