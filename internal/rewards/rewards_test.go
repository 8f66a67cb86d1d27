package rewards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MastoRide/internal/state"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(state.NewMemStore(), zap.NewNop())
}

func TestLoadSeedsStarterState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	st, err := svc.Load(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, starterPoints, st.Points)
	assert.Len(t, st.AvailableBadges, 4)
	assert.Empty(t, st.UsedBadges)

	labels := make([]string, 0, len(st.AvailableBadges))
	for _, b := range st.AvailableBadges {
		labels = append(labels, b.Label)
	}
	assert.Contains(t, labels, "10 Rides Completed")

	// a second load returns the persisted split, not a fresh seed
	st2, err := svc.Load(ctx, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, st, st2)
}

func TestUseBadgeMovesOneWay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.Load(ctx, "rider-1")
	require.NoError(t, err)
	total := len(before.AvailableBadges) + len(before.UsedBadges)

	st, err := svc.UseBadge(ctx, "rider-1", "ten-rides")
	require.NoError(t, err)
	require.Len(t, st.UsedBadges, 1)
	assert.Equal(t, "ten-rides", st.UsedBadges[0].ID)
	assert.NotNil(t, st.UsedBadges[0].UsedAt)

	// no badge disappears
	assert.Equal(t, total, len(st.AvailableBadges)+len(st.UsedBadges))

	// second use fails and duplicates nothing
	_, err = svc.UseBadge(ctx, "rider-1", "ten-rides")
	assert.ErrorIs(t, err, ErrBadgeNotAvailable)

	st, err = svc.Load(ctx, "rider-1")
	require.NoError(t, err)
	occurrences := 0
	for _, b := range st.UsedBadges {
		if b.ID == "ten-rides" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func TestUseBadgeUnknown(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UseBadge(context.Background(), "rider-1", "no-such-badge")
	assert.ErrorIs(t, err, ErrBadgeNotAvailable)
}

func TestUsedBadgesPrepend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UseBadge(ctx, "rider-1", "first-ride")
	require.NoError(t, err)
	st, err := svc.UseBadge(ctx, "rider-1", "eco-rider")
	require.NoError(t, err)

	require.Len(t, st.UsedBadges, 2)
	assert.Equal(t, "eco-rider", st.UsedBadges[0].ID)
	assert.Equal(t, "first-ride", st.UsedBadges[1].ID)
}

func TestRedeem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	st, err := svc.Redeem(ctx, "rider-1", 100)
	require.NoError(t, err)
	assert.Equal(t, starterPoints-100, st.Points)

	_, err = svc.Redeem(ctx, "rider-1", 10_000)
	assert.ErrorIs(t, err, ErrNotEnoughPoints)

	_, err = svc.Redeem(ctx, "rider-1", 0)
	assert.ErrorIs(t, err, ErrNotEnoughPoints)
}

func TestAddPoints(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	st, err := svc.AddPoints(ctx, "rider-1", 25)
	require.NoError(t, err)
	assert.Equal(t, starterPoints+25, st.Points)
}
