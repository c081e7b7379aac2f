package infra

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
)

// StatsRefresher recomputes and re-caches the stats of one bankroll
type StatsRefresher interface {
	RefreshStats(ctx context.Context, bankrollID uuid.UUID) error
}

// Scheduler manages the background job that keeps the stats cache warm for
// active bankrolls, so dashboard reads rarely pay the aggregation cost.
type Scheduler struct {
	cron         *cron.Cron
	bankrollRepo domain.BankrollRepository
	refresher    StatsRefresher
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(bankrollRepo domain.BankrollRepository, refresher StatsRefresher, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		bankrollRepo: bankrollRepo,
		refresher:    refresher,
		logger:       logger,
	}
}

// Start starts the scheduler. The warm-up job runs every 5 minutes.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.warmStats(ctx); err != nil {
			s.logger.Error("stats warm-up run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("stats_warmup", "*/5 * * * *"))
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) warmStats(ctx context.Context) error {
	ids, err := s.bankrollRepo.GetActiveIDs(ctx)
	if err != nil {
		return err
	}

	refreshed := 0
	for _, id := range ids {
		if err := s.refresher.RefreshStats(ctx, id); err != nil {
			s.logger.Warn("failed to refresh bankroll stats",
				zap.String("bankroll_id", id.String()),
				zap.Error(err))
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		s.logger.Debug("stats cache warmed", zap.Int("bankrolls", refreshed))
	}
	return nil
}
