package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MastoRide/internal/rewards"
	"MastoRide/internal/state"
)

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []*Booking
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings = append([]*Booking{&cp}, f.bookings...)
	return nil
}

func (f *fakeBookingStore) ListByIdentity(ctx context.Context, identityKey string) ([]*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Booking
	for _, b := range f.bookings {
		if b.IdentityID == identityKey {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeBookingStore, *rewards.Service, state.Store) {
	t.Helper()
	store := &fakeBookingStore{}
	cache := state.NewMemStore()
	rewarder := rewards.NewService(cache, zap.NewNop())
	return NewServiceWithStore(store, cache, rewarder, zap.NewNop()), store, rewarder, cache
}

func validDraft() Draft {
	return Draft{
		Pickup:      "Walb Student Union",
		Dropoff:     "Memorial Coliseum",
		Date:        "2026-09-01",
		Time:        "14:30",
		Passengers:  2,
		VehicleType: "standard",
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"valid", func(d *Draft) {}, nil},
		{"empty pickup", func(d *Draft) { d.Pickup = "" }, ErrMissingPickup},
		{"whitespace pickup", func(d *Draft) { d.Pickup = "   " }, ErrMissingPickup},
		{"empty dropoff", func(d *Draft) { d.Dropoff = "" }, ErrMissingDropoff},
		{"zero passengers", func(d *Draft) { d.Passengers = 0 }, ErrInvalidPassengers},
		{"too many passengers", func(d *Draft) { d.Passengers = 7 }, ErrInvalidPassengers},
		{"unknown vehicle", func(d *Draft) { d.VehicleType = "rocket" }, ErrUnknownVehicle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			err := ValidateDraft(draft)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEstimateFare(t *testing.T) {
	draft := validDraft()
	fare, err := EstimateFare(draft)
	require.NoError(t, err)
	assert.Equal(t, 6.50, fare) // 5.00 base + 1.50 for the extra passenger

	draft.VehicleType = "premium"
	draft.Passengers = 1
	fare, err = EstimateFare(draft)
	require.NoError(t, err)
	assert.Equal(t, 12.00, fare)

	draft.Pickup = ""
	_, err = EstimateFare(draft)
	assert.ErrorIs(t, err, ErrMissingPickup)
}

func TestDraftPersistence(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	// first visit: a fresh form
	draft, err := svc.LoadDraft(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, 1, draft.Passengers)
	assert.Equal(t, "standard", draft.VehicleType)

	typed := validDraft()
	require.NoError(t, svc.SaveDraft(ctx, "rider-1", typed))

	reloaded, err := svc.LoadDraft(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, typed, reloaded)
}

func TestConfirmRejectsInvalidDraft(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	draft := validDraft()
	draft.Pickup = ""
	_, err := svc.Confirm(ctx, "rider-1", draft)
	assert.ErrorIs(t, err, ErrMissingPickup)
	assert.Empty(t, store.bookings)
}

func TestConfirmCreatesBookingAndClearsDraft(t *testing.T) {
	svc, store, rewarder, _ := newTestService(t)
	ctx := context.Background()

	draft := validDraft()
	require.NoError(t, svc.SaveDraft(ctx, "rider-1", draft))

	booking, err := svc.Confirm(ctx, "rider-1", draft)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.RideNumber)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, 6.50, booking.Fare)
	require.Len(t, store.bookings, 1)

	// the stale draft does not survive into the next booking
	reloaded, err := svc.LoadDraft(ctx, "rider-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Pickup)
	assert.Empty(t, reloaded.Dropoff)

	// ride points credited
	st, err := rewarder.Load(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, 250+ridePoints, st.Points)
}

func TestHistoryTotals(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	first := validDraft()
	_, err := svc.Confirm(ctx, "rider-1", first)
	require.NoError(t, err)

	second := validDraft()
	second.VehicleType = "premium"
	second.Passengers = 1
	_, err = svc.Confirm(ctx, "rider-1", second)
	require.NoError(t, err)

	// another rider's booking stays out of this history
	_, err = svc.Confirm(ctx, "rider-2", validDraft())
	require.NoError(t, err)

	history, err := svc.History(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, 2, history.TotalRides)
	assert.Equal(t, 18.50, history.TotalSpent)
	require.Len(t, history.Rides, 2)
}
