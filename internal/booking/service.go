package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MastoRide/internal/rewards"
	"MastoRide/internal/state"
)

var (
	ErrMissingPickup     = errors.New("pickup location is required")
	ErrMissingDropoff    = errors.New("dropoff location is required")
	ErrInvalidPassengers = errors.New("passengers must be between 1 and 6")
	ErrUnknownVehicle    = errors.New("unknown vehicle type")
)

const maxPassengers = 6

// base fares per vehicle type, plus a per-extra-passenger charge
var vehicleBaseFare = map[string]float64{
	"standard": 5.00,
	"xl":       8.00,
	"premium":  12.00,
}

const perExtraPassenger = 1.50

// points credited when a ride is confirmed
const ridePoints = 25

// BookingStore is the slice of the repository the service needs.
type BookingStore interface {
	Create(ctx context.Context, booking *Booking) error
	ListByIdentity(ctx context.Context, identityKey string) ([]*Booking, error)
}

// Service owns the draft lifecycle and booking confirmation.
type Service struct {
	store    BookingStore
	drafts   state.Store
	rewarder *rewards.Service
	logger   *zap.Logger
}

func NewService(repo *BookingRepository, drafts state.Store, rewarder *rewards.Service, logger *zap.Logger) *Service {
	return NewServiceWithStore(repo, drafts, rewarder, logger)
}

func NewServiceWithStore(store BookingStore, drafts state.Store, rewarder *rewards.Service, logger *zap.Logger) *Service {
	return &Service{store: store, drafts: drafts, rewarder: rewarder, logger: logger.Named("booking")}
}

// LoadDraft returns the cached draft, or an empty one on first visit.
func (s *Service) LoadDraft(ctx context.Context, identityKey string) (Draft, error) {
	draft := Draft{Passengers: 1, VehicleType: "standard"}
	if _, err := state.GetJSON(ctx, s.drafts, identityKey, state.NSRideDraft, &draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SaveDraft persists the form as typed. No validation here; a half-filled
// draft is fine until confirmation.
func (s *Service) SaveDraft(ctx context.Context, identityKey string, draft Draft) error {
	return state.PutJSON(ctx, s.drafts, identityKey, state.NSRideDraft, draft)
}

// ValidateDraft enforces the confirmation preconditions: both stops set, a
// sane passenger count, a known vehicle.
func ValidateDraft(draft Draft) error {
	if strings.TrimSpace(draft.Pickup) == "" {
		return ErrMissingPickup
	}
	if strings.TrimSpace(draft.Dropoff) == "" {
		return ErrMissingDropoff
	}
	if draft.Passengers < 1 || draft.Passengers > maxPassengers {
		return ErrInvalidPassengers
	}
	if _, ok := vehicleBaseFare[draft.VehicleType]; !ok {
		return ErrUnknownVehicle
	}
	return nil
}

// EstimateFare prices a valid draft: vehicle base plus a charge per extra
// passenger.
func EstimateFare(draft Draft) (float64, error) {
	if err := ValidateDraft(draft); err != nil {
		return 0, err
	}
	base := vehicleBaseFare[draft.VehicleType]
	return base + perExtraPassenger*float64(draft.Passengers-1), nil
}

// Confirm turns the draft into a booking, credits ride points, and clears
// the draft so a stale form never survives into the next booking.
func (s *Service) Confirm(ctx context.Context, identityKey string, draft Draft) (*Booking, error) {
	fare, err := EstimateFare(draft)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		RideNumber:  uuid.NewString(),
		IdentityID:  identityKey,
		Pickup:      strings.TrimSpace(draft.Pickup),
		Dropoff:     strings.TrimSpace(draft.Dropoff),
		Date:        draft.Date,
		Time:        draft.Time,
		Passengers:  draft.Passengers,
		VehicleType: draft.VehicleType,
		Fare:        fare,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Create(ctx, booking); err != nil {
		return nil, err
	}

	if _, err := s.rewarder.AddPoints(ctx, identityKey, ridePoints); err != nil {
		s.logger.Warn("failed to credit ride points", zap.Error(err))
	}
	if err := s.drafts.Delete(ctx, identityKey, state.NSRideDraft); err != nil {
		s.logger.Warn("failed to clear ride draft", zap.Error(err))
	}

	s.logger.Info("booking confirmed",
		zap.String("ride_number", booking.RideNumber),
		zap.Float64("fare", fare),
	)
	return booking, nil
}

// History lists the rider's bookings newest first with summary totals.
func (s *Service) History(ctx context.Context, identityKey string) (*History, error) {
	rides, err := s.store.ListByIdentity(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	var spent float64
	for _, ride := range rides {
		spent += ride.Fare
	}
	return &History{Rides: rides, TotalRides: len(rides), TotalSpent: spent}, nil
}
