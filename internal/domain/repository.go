package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// GetByUsername retrieves a profile by username
	GetByUsername(ctx context.Context, username string) (*Profile, error)

	// GetByEmail retrieves a profile by email
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// Update persists profile edits (name, bio, avatar, timezone, visibility)
	Update(ctx context.Context, profile *Profile) error
}

// BankrollRepository defines the interface for bankroll data operations
type BankrollRepository interface {
	// Create creates a new bankroll
	Create(ctx context.Context, bankroll *Bankroll) error

	// GetByID retrieves a bankroll by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Bankroll, error)

	// GetByUserID retrieves all bankrolls owned by a user, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Bankroll, error)

	// GetPublicByUserID retrieves the user's public bankrolls, newest first
	GetPublicByUserID(ctx context.Context, userID uuid.UUID) ([]*Bankroll, error)

	// GetActiveIDs retrieves the IDs of all active bankrolls
	GetActiveIDs(ctx context.Context) ([]uuid.UUID, error)

	// Update persists bankroll edits (name, description, flags)
	Update(ctx context.Context, bankroll *Bankroll) error

	// Delete removes a bankroll; bets and legs cascade at the store
	Delete(ctx context.Context, id uuid.UUID) error
}

// BetRepository defines the interface for bet data operations
type BetRepository interface {
	// Create inserts a new bet row
	Create(ctx context.Context, bet *Bet) error

	// CreateLegs inserts the legs of a bet
	CreateLegs(ctx context.Context, legs []*BetLeg) error

	// Delete removes a bet (and, via cascade, its legs). Also used as the
	// compensating action when leg insertion fails after the bet row landed.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves a bet with its legs
	GetByID(ctx context.Context, id uuid.UUID) (*Bet, error)

	// GetByBankrollID retrieves all bets in a bankroll, newest placed first
	GetByBankrollID(ctx context.Context, bankrollID uuid.UUID) ([]*Bet, error)

	// GetByUserID retrieves all bets across a user's bankrolls. With
	// publicOnly set, only bets in public bankrolls are returned.
	GetByUserID(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*Bet, error)

	// Settle persists a settled bet and applies its profit/loss to the
	// owning bankroll's current capital in a single transaction.
	Settle(ctx context.Context, bet *Bet) error
}

// FollowRepository defines the interface for the follow graph
type FollowRepository interface {
	// Create inserts a follower edge; following an already-followed user
	// is a no-op
	Create(ctx context.Context, followerID, followingID uuid.UUID) error

	// Delete removes a follower edge; unfollowing a non-followed user is
	// a no-op
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error

	// Exists reports whether follower follows following
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)

	// CountFollowers returns the number of users following userID
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)

	// CountFollowing returns the number of users userID follows
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
}

// SportRepository defines the interface for the sports catalog
type SportRepository interface {
	// GetActive retrieves active sports ordered by name
	GetActive(ctx context.Context) ([]*Sport, error)
}

// BookmakerRepository defines the interface for the bookmakers catalog
type BookmakerRepository interface {
	// GetActive retrieves active bookmakers visible to a user (global ones
	// plus the user's custom entries) ordered by name
	GetActive(ctx context.Context, userID uuid.UUID) ([]*Bookmaker, error)

	// Create adds a custom bookmaker for a user
	Create(ctx context.Context, bookmaker *Bookmaker) error
}
