// Package rewards tracks per-rider points and the available/used badge
// split. A badge lives in exactly one of the two collections; using it is a
// one-way move.
package rewards

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"MastoRide/internal/state"
)

var (
	ErrBadgeNotAvailable = errors.New("badge not available")
	ErrNotEnoughPoints   = errors.New("not enough points")
)

type Badge struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	UsedAt *time.Time `json:"usedAt,omitempty"`
}

type State struct {
	Points          int     `json:"points"`
	AvailableBadges []Badge `json:"availableBadges"`
	UsedBadges      []Badge `json:"usedBadges"`
}

const starterPoints = 250

// starterBadges seeds a rider's reward state on first read.
func starterBadges() []Badge {
	return []Badge{
		{ID: "first-ride", Label: "First Ride"},
		{ID: "ten-rides", Label: "10 Rides Completed"},
		{ID: "weekend-warrior", Label: "Weekend Warrior"},
		{ID: "eco-rider", Label: "Eco Rider"},
	}
}

type Service struct {
	store  state.Store
	logger *zap.Logger

	// serializes read-modify-write cycles within this process; cross-process
	// writers are last-write-wins like the rest of the cached state
	mu sync.Mutex
}

func NewService(store state.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.Named("rewards")}
}

// Load returns the persisted split, seeding the starter catalog the first
// time an identity's reward state is read.
func (s *Service) Load(ctx context.Context, identityKey string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, identityKey)
}

func (s *Service) load(ctx context.Context, identityKey string) (State, error) {
	var st State
	ok, err := state.GetJSON(ctx, s.store, identityKey, state.NSRewards, &st)
	if err != nil {
		return State{}, err
	}
	if ok {
		return st, nil
	}

	st = State{
		Points:          starterPoints,
		AvailableBadges: starterBadges(),
		UsedBadges:      []Badge{},
	}
	if err := state.PutJSON(ctx, s.store, identityKey, state.NSRewards, st); err != nil {
		return State{}, err
	}
	s.logger.Info("seeded reward state", zap.String("identity", identityKey))
	return st, nil
}

// UseBadge moves a badge from available to used, stamped with the use time.
// A second call with the same badge finds nothing in available and fails
// with ErrBadgeNotAvailable instead of duplicating the badge.
func (s *Service) UseBadge(ctx context.Context, identityKey, badgeID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, identityKey)
	if err != nil {
		return State{}, err
	}

	idx := -1
	for i, b := range st.AvailableBadges {
		if b.ID == badgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return State{}, ErrBadgeNotAvailable
	}

	badge := st.AvailableBadges[idx]
	now := time.Now()
	badge.UsedAt = &now

	st.AvailableBadges = append(st.AvailableBadges[:idx], st.AvailableBadges[idx+1:]...)
	st.UsedBadges = append([]Badge{badge}, st.UsedBadges...)

	if err := state.PutJSON(ctx, s.store, identityKey, state.NSRewards, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Redeem deducts points for a perk.
func (s *Service) Redeem(ctx context.Context, identityKey string, points int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, identityKey)
	if err != nil {
		return State{}, err
	}
	if points <= 0 || points > st.Points {
		return State{}, ErrNotEnoughPoints
	}
	st.Points -= points
	if err := state.PutJSON(ctx, s.store, identityKey, state.NSRewards, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// AddPoints credits ride completion points.
func (s *Service) AddPoints(ctx context.Context, identityKey string, points int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, identityKey)
	if err != nil {
		return State{}, err
	}
	st.Points += points
	if err := state.PutJSON(ctx, s.store, identityKey, state.NSRewards, st); err != nil {
		return State{}, err
	}
	return st, nil
}
