package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
	"MastoRide/internal/state"
)

type fakeUpdater struct {
	mu        sync.Mutex
	calls     int
	name      string
	phone     string
	studentID string
}

func (f *fakeUpdater) UpdateDisplayFields(ctx context.Context, id primitive.ObjectID, name, phone, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.name, f.phone, f.studentID = name, phone, studentID
	return nil
}

func newTestReconciler(t *testing.T) (*Reconciler, *fakeUpdater) {
	t.Helper()
	updater := &fakeUpdater{}
	return NewReconcilerWithUpdater(state.NewMemStore(), updater, zap.NewNop()), updater
}

func userIdentity() *auth.Identity {
	return &auth.Identity{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "New Rider",
		Email: "new123@pfw.edu",
		Role:  auth.RoleUser,
	}
}

func strptr(s string) *string { return &s }

func TestResolveOrder(t *testing.T) {
	assert.Equal(t, "cached", resolve("cached", "session", "default"))
	assert.Equal(t, "session", resolve("", "session", "default"))
	assert.Equal(t, "default", resolve("", "", "default"))
	assert.Equal(t, "", resolve("", "", ""))
}

func TestLoadProfileFirstVisitFallsThroughToDefaults(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	rec, err := r.LoadProfile(ctx, userIdentity())
	require.NoError(t, err)
	// session-known values win over the placeholder
	assert.Equal(t, "New Rider", rec.Name)
	assert.Equal(t, "new123@pfw.edu", rec.Email)

	// a bare identity still produces a populated record
	bare := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: auth.RoleUser}
	rec, err = r.LoadProfile(ctx, bare)
	require.NoError(t, err)
	assert.Equal(t, "Mastodon Rider", rec.Name)
}

func TestLoadProfileAdminDefaults(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	admin := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: auth.RoleAdmin}
	rec, err := r.LoadProfile(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", rec.Name)
	assert.Equal(t, "admin@mastoride.edu", rec.Email)
	assert.Equal(t, "Administration", rec.Department)
	assert.Equal(t, "System Admin", rec.Title)
}

func TestSaveProfileCommitsAndPropagates(t *testing.T) {
	r, updater := newTestReconciler(t)
	ctx := context.Background()
	id := userIdentity()

	rec, err := r.SaveProfile(ctx, id, ProfilePatch{
		Name:      strptr("Renamed Rider"),
		Phone:     strptr("260-555-0100"),
		StudentID: strptr("900123456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Rider", rec.Name)
	// untouched fields keep their resolved values
	assert.Equal(t, "new123@pfw.edu", rec.Email)

	// cached edit wins on the next load
	loaded, err := r.LoadProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Rider", loaded.Name)
	assert.Equal(t, "900123456", loaded.StudentID)

	assert.Equal(t, 1, updater.calls)
	assert.Equal(t, "Renamed Rider", updater.name)
	assert.Equal(t, "260-555-0100", updater.phone)
}

func TestSaveProfileRejectsBadEmail(t *testing.T) {
	r, updater := newTestReconciler(t)
	ctx := context.Background()
	id := userIdentity()

	_, err := r.SaveProfile(ctx, id, ProfilePatch{Email: strptr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Zero(t, updater.calls)

	// nothing was committed
	loaded, err := r.LoadProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new123@pfw.edu", loaded.Email)
}

func TestSettingsDefaults(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	settings, err := r.LoadSettings(ctx, userIdentity())
	require.NoError(t, err)
	assert.True(t, settings["emailNotifications"])
	assert.True(t, settings["rideAlerts"])
	assert.False(t, settings["shareHistory"])

	admin := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: auth.RoleAdmin}
	settings, err = r.LoadSettings(ctx, admin)
	require.NoError(t, err)
	assert.True(t, settings["systemAlerts"])
	assert.False(t, settings["maintenanceMode"])
}

func TestSaveSettingsMergesOntoDefaults(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()
	id := userIdentity()

	saved, err := r.SaveSettings(ctx, id, SettingsRecord{"rideAlerts": false})
	require.NoError(t, err)
	assert.False(t, saved["rideAlerts"])
	// untouched toggles keep their defaults
	assert.True(t, saved["emailNotifications"])

	loaded, err := r.LoadSettings(ctx, id)
	require.NoError(t, err)
	assert.False(t, loaded["rideAlerts"])
	assert.True(t, loaded["emailNotifications"])
}

func TestUIStatePersistence(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()
	id := userIdentity()

	ui, err := r.LoadUIState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "profile", ui.ActiveTab)
	assert.True(t, ui.SidebarOpen)

	require.NoError(t, r.SaveUIState(ctx, id, UIState{ActiveTab: "rewards", SidebarOpen: false}))

	ui, err = r.LoadUIState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "rewards", ui.ActiveTab)
	assert.False(t, ui.SidebarOpen)

	admin := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: auth.RoleAdmin}
	ui, err = r.LoadUIState(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "feedback", ui.ActiveTab)
}
