package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
	"betanalytix/internal/infra"
	"betanalytix/internal/oddsmath"
	"betanalytix/internal/service"
)

// BettingService handles bet placement and retrieval. Placement validates
// the form, computes total odds and potential return server-side, and
// inserts the bet followed by its legs; when the leg insert fails the bet
// row is deleted again so no leg-less bet survives.
type BettingService struct {
	betRepo       domain.BetRepository
	bankrollRepo  domain.BankrollRepository
	sportRepo     domain.SportRepository
	bookmakerRepo domain.BookmakerRepository
	analytics     *service.AnalyticsService
	metrics       *infra.Metrics
	logger        *zap.Logger
}

// NewBettingService creates a new BettingService
func NewBettingService(
	betRepo domain.BetRepository,
	bankrollRepo domain.BankrollRepository,
	sportRepo domain.SportRepository,
	bookmakerRepo domain.BookmakerRepository,
	analytics *service.AnalyticsService,
	metrics *infra.Metrics,
	logger *zap.Logger,
) *BettingService {
	return &BettingService{
		betRepo:       betRepo,
		bankrollRepo:  bankrollRepo,
		sportRepo:     sportRepo,
		bookmakerRepo: bookmakerRepo,
		analytics:     analytics,
		metrics:       metrics,
		logger:        logger,
	}
}

// CreateBetLegInput is one leg of a new bet
type CreateBetLegInput struct {
	SportID    *uuid.UUID
	EventName  string
	EventDate  *time.Time
	Selection  string
	Odds       decimal.Decimal
	League     *string
	MarketType *string
}

// CreateBetInput is the payload for placing a new bet
type CreateBetInput struct {
	BankrollID  uuid.UUID
	BookmakerID *uuid.UUID
	BetType     domain.BetType
	Stake       decimal.Decimal
	PlacedAt    *time.Time
	Notes       *string
	Tags        []string
	Legs        []CreateBetLegInput
}

func (in *CreateBetInput) validate() error {
	if !in.BetType.Valid() {
		return &domain.ValidationError{Field: "bet_type", Message: "bet type must be single, accumulator or system"}
	}
	if in.Stake.LessThanOrEqual(decimal.Zero) {
		return &domain.ValidationError{Field: "stake", Message: "stake must be greater than zero"}
	}
	if len(in.Legs) == 0 {
		return &domain.ValidationError{Field: "legs", Message: "at least one leg is required"}
	}
	if in.BetType == domain.BetTypeSingle && len(in.Legs) != 1 {
		return &domain.ValidationError{Field: "legs", Message: "a single bet must have exactly one leg"}
	}
	for i, leg := range in.Legs {
		if strings.TrimSpace(leg.EventName) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("legs[%d].event_name", i), Message: "event name is required"}
		}
		if strings.TrimSpace(leg.Selection) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("legs[%d].selection", i), Message: "selection is required"}
		}
		if !oddsmath.ValidLegOdds(leg.Odds) {
			return &domain.ValidationError{Field: fmt.Sprintf("legs[%d].odds", i), Message: "odds must be at least 1.01"}
		}
	}
	return nil
}

// CreateBet validates and places a new bet for userID.
func (s *BettingService) CreateBet(ctx context.Context, userID uuid.UUID, in *CreateBetInput) (*domain.Bet, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	bankroll, err := s.bankrollRepo.GetByID(ctx, in.BankrollID)
	if err != nil {
		return nil, err
	}
	if bankroll.UserID != userID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	placedAt := now
	if in.PlacedAt != nil {
		placedAt = *in.PlacedAt
	}

	betID := uuid.New()
	legs := make([]*domain.BetLeg, 0, len(in.Legs))
	for _, l := range in.Legs {
		legs = append(legs, &domain.BetLeg{
			ID:         uuid.New(),
			BetID:      betID,
			SportID:    l.SportID,
			EventName:  strings.TrimSpace(l.EventName),
			EventDate:  l.EventDate,
			Selection:  strings.TrimSpace(l.Selection),
			Odds:       l.Odds,
			Outcome:    domain.LegOutcomePending,
			League:     l.League,
			MarketType: l.MarketType,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	totalOdds := oddsmath.TotalOdds(legs)
	bet := &domain.Bet{
		ID:              betID,
		UserID:          userID,
		BankrollID:      in.BankrollID,
		BookmakerID:     in.BookmakerID,
		BetType:         in.BetType,
		Stake:           in.Stake,
		TotalOdds:       totalOdds,
		PotentialReturn: oddsmath.Round2(oddsmath.PotentialReturn(in.Stake, totalOdds)),
		ActualReturn:    decimal.Zero,
		ProfitLoss:      decimal.Zero,
		Status:          domain.BetStatusPending,
		PlacedAt:        placedAt,
		Notes:           in.Notes,
		Tags:            in.Tags,
		CreatedAt:       now,
		UpdatedAt:       now,
		Legs:            legs,
	}

	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if err := s.betRepo.CreateLegs(ctx, legs); err != nil {
		// Compensating rollback: a bet without legs must not linger
		if delErr := s.betRepo.Delete(ctx, betID); delErr != nil {
			s.logger.Error("failed to roll back bet after leg insert failure",
				zap.String("bet_id", betID.String()),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create bet legs: %w", err)
	}

	s.analytics.InvalidateStats(ctx, in.BankrollID)
	if s.metrics != nil {
		s.metrics.BetsPlaced.Inc()
	}

	s.logger.Info("bet placed",
		zap.String("bet_id", bet.ID.String()),
		zap.String("bankroll_id", bet.BankrollID.String()),
		zap.String("bet_type", string(bet.BetType)),
		zap.String("stake", bet.Stake.String()),
		zap.String("total_odds", bet.TotalOdds.String()),
		zap.Int("legs", len(legs)))

	return bet, nil
}

// GetBet retrieves one of the user's bets with its legs.
func (s *BettingService) GetBet(ctx context.Context, userID, betID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return bet, nil
}

// ListBets lists the user's bets, optionally restricted to one bankroll.
func (s *BettingService) ListBets(ctx context.Context, userID uuid.UUID, bankrollID *uuid.UUID) ([]*domain.Bet, error) {
	if bankrollID == nil {
		return s.betRepo.GetByUserID(ctx, userID, false)
	}

	bankroll, err := s.bankrollRepo.GetByID(ctx, *bankrollID)
	if err != nil {
		return nil, err
	}
	if bankroll.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return s.betRepo.GetByBankrollID(ctx, *bankrollID)
}

// DeleteBet removes one of the user's bets; its legs cascade.
func (s *BettingService) DeleteBet(ctx context.Context, userID, betID uuid.UUID) error {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return err
	}
	if bet.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.betRepo.Delete(ctx, betID); err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}

	s.analytics.InvalidateStats(ctx, bet.BankrollID)
	return nil
}

// GetSports lists the active sports catalog.
func (s *BettingService) GetSports(ctx context.Context) ([]*domain.Sport, error) {
	return s.sportRepo.GetActive(ctx)
}

// GetBookmakers lists the bookmakers visible to the user.
func (s *BettingService) GetBookmakers(ctx context.Context, userID uuid.UUID) ([]*domain.Bookmaker, error) {
	return s.bookmakerRepo.GetActive(ctx, userID)
}
