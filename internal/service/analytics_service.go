package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
	"betanalytix/internal/infra"
	"betanalytix/internal/oddsmath"
)

var hundred = decimal.NewFromInt(100)

// AnalyticsService derives bankroll statistics and balance history from the
// bets belonging to a bankroll. The aggregation itself is pure and computed
// in-process; Redis acts only as an optional read-through cache in front of
// it.
type AnalyticsService struct {
	betRepo      domain.BetRepository
	bankrollRepo domain.BankrollRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	metrics      *infra.Metrics
	logger       *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService. cache may be nil, in
// which case every read recomputes.
func NewAnalyticsService(
	betRepo domain.BetRepository,
	bankrollRepo domain.BankrollRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	metrics *infra.Metrics,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		betRepo:      betRepo,
		bankrollRepo: bankrollRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics,
		logger:       logger,
	}
}

// ComputeStats aggregates statistics over a bankroll's bets.
// total_staked covers every bet; returns and profit cover settled bets only.
// Percentages and averages are rounded to 2 places.
func ComputeStats(bets []*domain.Bet, initialCapital decimal.Decimal) domain.BankrollStats {
	stats := domain.BankrollStats{TotalBets: len(bets)}

	totalStaked := decimal.Zero
	settledStaked := decimal.Zero
	totalReturns := decimal.Zero
	oddsSum := decimal.Zero

	for _, bet := range bets {
		totalStaked = totalStaked.Add(bet.Stake)
		oddsSum = oddsSum.Add(bet.TotalOdds)

		switch bet.Status {
		case domain.BetStatusPending:
			stats.PendingBets++
		case domain.BetStatusWon:
			stats.WonBets++
		case domain.BetStatusLost:
			stats.LostBets++
		}

		if bet.Status.Terminal() {
			settledStaked = settledStaked.Add(bet.Stake)
			totalReturns = totalReturns.Add(bet.ActualReturn)
		}
	}

	stats.TotalStaked = totalStaked
	stats.TotalReturns = totalReturns
	stats.TotalProfit = totalReturns.Sub(settledStaked)

	if settled := stats.WonBets + stats.LostBets; settled > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.WonBets)).
			Div(decimal.NewFromInt(int64(settled))).
			Mul(hundred).Round(2)
	}
	if totalStaked.IsPositive() {
		stats.ROI = stats.TotalProfit.Div(totalStaked).Mul(hundred).Round(2)
	}
	if initialCapital.IsPositive() {
		stats.ROC = stats.TotalProfit.Div(initialCapital).Mul(hundred).Round(2)
	}
	if len(bets) > 0 {
		n := decimal.NewFromInt(int64(len(bets)))
		stats.AvgOdds = oddsSum.Div(n).Round(2)
		stats.AvgStake = totalStaked.Div(n).Round(2)
	}

	return stats
}

// ComputeBalanceHistory builds the running-balance series for the trailing
// window. The opening point carries the balance before the first in-window
// settlement; each settlement day contributes the balance after its last
// settlement. With no settlements in the window the series is a single flat
// point at the current capital.
func ComputeBalanceHistory(bankroll *domain.Bankroll, bets []*domain.Bet, days int, now time.Time) []domain.BalancePoint {
	windowStart := now.AddDate(0, 0, -days)

	var settled []*domain.Bet
	for _, bet := range bets {
		if bet.SettledAt != nil && !bet.SettledAt.Before(windowStart) && !bet.SettledAt.After(now) {
			settled = append(settled, bet)
		}
	}

	if len(settled) == 0 {
		return []domain.BalancePoint{{Date: now, Balance: bankroll.CurrentCapital}}
	}

	sort.Slice(settled, func(i, j int) bool {
		return settled[i].SettledAt.Before(*settled[j].SettledAt)
	})

	// Walk back from the current capital to the balance at the window start
	opening := bankroll.CurrentCapital
	for _, bet := range settled {
		opening = opening.Sub(bet.ProfitLoss)
	}

	openingDate := windowStart
	if bankroll.CreatedAt.After(windowStart) {
		openingDate = bankroll.CreatedAt
	}

	points := []domain.BalancePoint{{Date: openingDate, Balance: opening}}

	balance := opening
	for i, bet := range settled {
		balance = balance.Add(bet.ProfitLoss)

		// One point per settlement day: keep only the last balance of a day
		day := bet.SettledAt.Truncate(24 * time.Hour)
		if i+1 < len(settled) && settled[i+1].SettledAt.Truncate(24*time.Hour).Equal(day) {
			continue
		}
		points = append(points, domain.BalancePoint{Date: *bet.SettledAt, Balance: balance})
	}

	return points
}

// GetBankrollStats returns the statistics for a bankroll owned by userID,
// served from cache when possible.
func (s *AnalyticsService) GetBankrollStats(ctx context.Context, userID, bankrollID uuid.UUID) (*domain.BankrollStats, error) {
	bankroll, err := s.bankrollRepo.GetByID(ctx, bankrollID)
	if err != nil {
		return nil, err
	}
	if bankroll.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if cached := s.getCached(ctx, bankrollID); cached != nil {
		return cached, nil
	}

	stats, err := s.computeForBankroll(ctx, bankroll)
	if err != nil {
		return nil, err
	}

	s.putCached(ctx, bankrollID, stats)
	return stats, nil
}

// GetBalanceHistory returns the balance series for the trailing windowDays
// days of a bankroll owned by userID.
func (s *AnalyticsService) GetBalanceHistory(ctx context.Context, userID, bankrollID uuid.UUID, windowDays int) ([]domain.BalancePoint, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if windowDays > 365 {
		windowDays = 365
	}

	bankroll, err := s.bankrollRepo.GetByID(ctx, bankrollID)
	if err != nil {
		return nil, err
	}
	if bankroll.UserID != userID {
		return nil, domain.ErrForbidden
	}

	bets, err := s.betRepo.GetByBankrollID(ctx, bankrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets for history: %w", err)
	}

	return ComputeBalanceHistory(bankroll, bets, windowDays, time.Now()), nil
}

// RefreshStats recomputes and re-caches the stats of one bankroll. Used by
// the scheduler to keep the cache warm for active bankrolls.
func (s *AnalyticsService) RefreshStats(ctx context.Context, bankrollID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}

	bankroll, err := s.bankrollRepo.GetByID(ctx, bankrollID)
	if err != nil {
		return err
	}

	stats, err := s.computeForBankroll(ctx, bankroll)
	if err != nil {
		return err
	}

	s.putCached(ctx, bankrollID, stats)
	return nil
}

// InvalidateStats drops the cached stats for a bankroll. Called after every
// settlement and bet mutation.
func (s *AnalyticsService) InvalidateStats(ctx context.Context, bankrollID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(bankrollID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate stats cache",
			zap.String("bankroll_id", bankrollID.String()),
			zap.Error(err))
	}
}

func (s *AnalyticsService) computeForBankroll(ctx context.Context, bankroll *domain.Bankroll) (*domain.BankrollStats, error) {
	bets, err := s.betRepo.GetByBankrollID(ctx, bankroll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets for stats: %w", err)
	}

	stats := ComputeStats(bets, bankroll.InitialCapital)
	stats.TotalStaked = oddsmath.Round2(stats.TotalStaked)
	stats.TotalReturns = oddsmath.Round2(stats.TotalReturns)
	stats.TotalProfit = oddsmath.Round2(stats.TotalProfit)
	return &stats, nil
}

func (s *AnalyticsService) getCached(ctx context.Context, bankrollID uuid.UUID) *domain.BankrollStats {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, statsCacheKey(bankrollID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.StatsCacheMisses.Inc()
		}
		return nil
	}

	var stats domain.BankrollStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("stats cache entry corrupt, dropping", zap.Error(err))
		_ = s.cache.Del(ctx, statsCacheKey(bankrollID)).Err()
		return nil
	}

	if s.metrics != nil {
		s.metrics.StatsCacheHits.Inc()
	}
	return &stats
}

func (s *AnalyticsService) putCached(ctx context.Context, bankrollID uuid.UUID, stats *domain.BankrollStats) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey(bankrollID), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func statsCacheKey(bankrollID uuid.UUID) string {
	return "bankroll:stats:" + bankrollID.String()
}
