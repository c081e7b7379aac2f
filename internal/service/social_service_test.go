package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"betanalytix/internal/domain"
)

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }

type fakeBankrollRepo struct {
	public []*domain.Bankroll
}

func (f *fakeBankrollRepo) Create(ctx context.Context, b *domain.Bankroll) error { return nil }
func (f *fakeBankrollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bankroll, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeBankrollRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bankroll, error) {
	return nil, nil
}
func (f *fakeBankrollRepo) GetPublicByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Bankroll, error) {
	return f.public, nil
}
func (f *fakeBankrollRepo) GetActiveIDs(ctx context.Context) ([]uuid.UUID, error) { return nil, nil }
func (f *fakeBankrollRepo) Update(ctx context.Context, b *domain.Bankroll) error  { return nil }
func (f *fakeBankrollRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

type fakeBetRepo struct {
	publicBets []*domain.Bet
	allBets    []*domain.Bet

	lastPublicOnly bool
}

func (f *fakeBetRepo) Create(ctx context.Context, b *domain.Bet) error          { return nil }
func (f *fakeBetRepo) CreateLegs(ctx context.Context, l []*domain.BetLeg) error { return nil }
func (f *fakeBetRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (f *fakeBetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeBetRepo) GetByBankrollID(ctx context.Context, id uuid.UUID) ([]*domain.Bet, error) {
	return nil, nil
}
func (f *fakeBetRepo) GetByUserID(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*domain.Bet, error) {
	f.lastPublicOnly = publicOnly
	if publicOnly {
		return f.publicBets, nil
	}
	return f.allBets, nil
}
func (f *fakeBetRepo) Settle(ctx context.Context, b *domain.Bet) error { return nil }

type fakeFollowRepo struct {
	edges map[[2]uuid.UUID]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeFollowRepo) Create(ctx context.Context, followerID, followingID uuid.UUID) error {
	f.edges[[2]uuid.UUID{followerID, followingID}] = true
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	delete(f.edges, [2]uuid.UUID{followerID, followingID})
	return nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return f.edges[[2]uuid.UUID{followerID, followingID}], nil
}

func (f *fakeFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for edge := range f.edges {
		if edge[1] == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for edge := range f.edges {
		if edge[0] == userID {
			n++
		}
	}
	return n, nil
}

func newTestSocialService(profiles *fakeProfileRepo, bankrolls *fakeBankrollRepo, bets *fakeBetRepo, follows *fakeFollowRepo, includePrivate bool) *SocialService {
	return NewSocialService(profiles, bankrolls, bets, follows, includePrivate, zap.NewNop())
}

func publicUser(username string) *domain.Profile {
	return &domain.Profile{
		ID:        uuid.New(),
		Username:  username,
		IsPublic:  true,
		CreatedAt: time.Now(),
	}
}

func TestGetPublicProfilePrivateLooksAbsent(t *testing.T) {
	user := publicUser("hidden")
	user.IsPublic = false
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"hidden": user}}

	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, &fakeBetRepo{}, newFakeFollowRepo(), false)

	_, err := svc.GetPublicProfile(context.Background(), "hidden")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for private profile, got %v", err)
	}

	_, err = svc.GetPublicProfile(context.Background(), "nosuchuser")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent user, got %v", err)
	}
}

func TestGetPublicProfileStatsScope(t *testing.T) {
	user := publicUser("tipster")
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"tipster": user}}

	now := time.Now()
	bets := &fakeBetRepo{
		publicBets: []*domain.Bet{
			settledBet(50, 1.8, 90, domain.BetStatusWon, now),
		},
		allBets: []*domain.Bet{
			settledBet(50, 1.8, 90, domain.BetStatusWon, now),
			settledBet(50, 2.0, 0, domain.BetStatusLost, now),
		},
	}

	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, bets, newFakeFollowRepo(), false)

	profile, err := svc.GetPublicProfile(context.Background(), "tipster")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bets.lastPublicOnly {
		t.Error("expected public-only bet scope by default")
	}
	if profile.Stats.TotalBets != 1 {
		t.Errorf("expected 1 bet in public stats, got %d", profile.Stats.TotalBets)
	}
	if !profile.Stats.TotalProfit.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected profit 40, got %s", profile.Stats.TotalProfit)
	}

	// widened scope pulls in private bankroll bets too
	svc = newTestSocialService(profiles, &fakeBankrollRepo{}, bets, newFakeFollowRepo(), true)
	profile, err = svc.GetPublicProfile(context.Background(), "tipster")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Stats.TotalBets != 2 {
		t.Errorf("expected 2 bets in widened stats, got %d", profile.Stats.TotalBets)
	}
}

func TestGetPublicProfileFollowCounts(t *testing.T) {
	user := publicUser("tipster")
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"tipster": user}}

	follows := newFakeFollowRepo()
	_ = follows.Create(context.Background(), uuid.New(), user.ID)
	_ = follows.Create(context.Background(), uuid.New(), user.ID)
	_ = follows.Create(context.Background(), user.ID, uuid.New())

	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, &fakeBetRepo{}, follows, false)

	profile, err := svc.GetPublicProfile(context.Background(), "tipster")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Followers != 2 {
		t.Errorf("expected 2 followers, got %d", profile.Followers)
	}
	if profile.Following != 1 {
		t.Errorf("expected 1 following, got %d", profile.Following)
	}
}

func TestGetPublicBankrolls(t *testing.T) {
	user := publicUser("tipster")
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"tipster": user}}

	bankrolls := &fakeBankrollRepo{
		public: []*domain.Bankroll{{
			ID:             uuid.New(),
			UserID:         user.ID,
			Name:           "Main",
			Currency:       "EUR",
			InitialCapital: decimal.NewFromInt(1000),
			CurrentCapital: decimal.NewFromInt(1150),
		}},
	}

	svc := newTestSocialService(profiles, bankrolls, &fakeBetRepo{}, newFakeFollowRepo(), false)

	out, err := svc.GetPublicBankrolls(context.Background(), "tipster")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 bankroll, got %d", len(out))
	}
	if !out[0].Profit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected profit 150, got %s", out[0].Profit)
	}
	if !out[0].ROI.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected ROI 15, got %s", out[0].ROI)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	user := publicUser("tipster")
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"tipster": user}}
	follows := newFakeFollowRepo()

	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, &fakeBetRepo{}, follows, false)

	err := svc.Follow(context.Background(), user.ID, user.ID)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(follows.edges) != 0 {
		t.Error("self-follow created an edge")
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, &fakeBetRepo{}, newFakeFollowRepo(), false)

	err := svc.Follow(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	target := publicUser("tipster")
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{"tipster": target}}
	follows := newFakeFollowRepo()
	svc := newTestSocialService(profiles, &fakeBankrollRepo{}, &fakeBetRepo{}, follows, false)

	viewer := uuid.New()
	ctx := context.Background()

	if err := svc.Follow(ctx, viewer, target.ID); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	following, err := svc.IsFollowing(ctx, viewer, target.ID)
	if err != nil || !following {
		t.Fatalf("expected following=true, got %v err=%v", following, err)
	}

	if err := svc.Unfollow(ctx, viewer, target.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	following, err = svc.IsFollowing(ctx, viewer, target.ID)
	if err != nil || following {
		t.Fatalf("expected following=false, got %v err=%v", following, err)
	}

	// unfollowing again stays a no-op
	if err := svc.Unfollow(ctx, viewer, target.ID); err != nil {
		t.Fatalf("repeat unfollow failed: %v", err)
	}
}
