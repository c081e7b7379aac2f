package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
	"betanalytix/internal/oddsmath"
)

// SocialService projects public tipster profiles and manages the follow
// graph. A profile is visible only when the user opted in; each bankroll is
// listed only when itself public.
type SocialService struct {
	profileRepo  domain.ProfileRepository
	bankrollRepo domain.BankrollRepository
	betRepo      domain.BetRepository
	followRepo   domain.FollowRepository

	// includePrivateStats widens the public stats aggregate to bets from
	// private bankrolls as well
	includePrivateStats bool

	logger *zap.Logger
}

// NewSocialService creates a new SocialService
func NewSocialService(
	profileRepo domain.ProfileRepository,
	bankrollRepo domain.BankrollRepository,
	betRepo domain.BetRepository,
	followRepo domain.FollowRepository,
	includePrivateStats bool,
	logger *zap.Logger,
) *SocialService {
	return &SocialService{
		profileRepo:         profileRepo,
		bankrollRepo:        bankrollRepo,
		betRepo:             betRepo,
		followRepo:          followRepo,
		includePrivateStats: includePrivateStats,
		logger:              logger,
	}
}

// GetPublicProfile returns the external projection of a user's profile.
// Private profiles are indistinguishable from absent ones.
func (s *SocialService) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		return nil, domain.ErrNotFound
	}

	bets, err := s.betRepo.GetByUserID(ctx, profile.ID, !s.includePrivateStats)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets for public stats: %w", err)
	}

	followers, err := s.followRepo.CountFollowers(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := s.followRepo.CountFollowing(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &domain.PublicProfile{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt,
		Stats:     computeProfileStats(bets),
		Followers: followers,
		Following: following,
	}, nil
}

// GetPublicBankrolls returns the public bankrolls of a public profile with
// their profit and ROI figures.
func (s *SocialService) GetPublicBankrolls(ctx context.Context, username string) ([]*domain.PublicBankroll, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		return nil, domain.ErrNotFound
	}

	bankrolls, err := s.bankrollRepo.GetPublicByUserID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load public bankrolls: %w", err)
	}

	out := make([]*domain.PublicBankroll, 0, len(bankrolls))
	for _, b := range bankrolls {
		out = append(out, &domain.PublicBankroll{
			ID:             b.ID.String(),
			Name:           b.Name,
			Currency:       b.Currency,
			InitialCapital: b.InitialCapital,
			CurrentCapital: b.CurrentCapital,
			CreatedAt:      b.CreatedAt,
			Profit:         oddsmath.Round2(b.Profit()),
			ROI:            b.ROI().Round(2),
		})
	}
	return out, nil
}

// Follow adds a follower edge from follower to target. Following an
// already-followed user is a no-op.
func (s *SocialService) Follow(ctx context.Context, followerID, targetID uuid.UUID) error {
	if followerID == targetID {
		return &domain.ValidationError{Field: "user_id", Message: "cannot follow yourself"}
	}
	if _, err := s.profileRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, followerID, targetID)
}

// Unfollow removes the follower edge. Unfollowing a user that was never
// followed is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// IsFollowing reports whether viewer follows target.
func (s *SocialService) IsFollowing(ctx context.Context, viewerID, targetID uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, viewerID, targetID)
}

func computeProfileStats(bets []*domain.Bet) domain.ProfileStats {
	stats := domain.ProfileStats{TotalBets: len(bets)}

	profit := decimal.Zero
	for _, bet := range bets {
		switch bet.Status {
		case domain.BetStatusWon:
			stats.WonBets++
		case domain.BetStatusLost:
			stats.LostBets++
		}
		if bet.Status.Terminal() {
			profit = profit.Add(bet.ProfitLoss)
		}
	}

	stats.TotalProfit = oddsmath.Round2(profit)
	if settled := stats.WonBets + stats.LostBets; settled > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.WonBets)).
			Div(decimal.NewFromInt(int64(settled))).
			Mul(hundred).Round(2)
	}
	return stats
}
