package profile

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
	"MastoRide/internal/state"
)

var ErrInvalidEmail = errors.New("please enter a valid email")

// basic syntactic check only; the institutional allow-list applies at
// signup, not on display-field edits
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserUpdater is the upstream write path for display fields that also live
// on the durable identity.
type UserUpdater interface {
	UpdateDisplayFields(ctx context.Context, id primitive.ObjectID, name, phone, studentID string) error
}

// Reconciler merges cached edits, session-known values and role defaults
// into one canonical record per identity, and commits edits back.
type Reconciler struct {
	store  state.Store
	users  UserUpdater
	logger *zap.Logger
}

func NewReconciler(store state.Store, repo *auth.UserRepository, logger *zap.Logger) *Reconciler {
	return NewReconcilerWithUpdater(store, repo, logger)
}

func NewReconcilerWithUpdater(store state.Store, users UserUpdater, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, users: users, logger: logger.Named("profile")}
}

// resolve picks the first value present, in priority order: cached local
// edit, value the session already knows, fixed default. Total: the result
// is always one of the three.
func resolve(cached, sessionKnown, fallback string) string {
	if cached != "" {
		return cached
	}
	if sessionKnown != "" {
		return sessionKnown
	}
	return fallback
}

func defaultProfile(role string) ProfileRecord {
	if role == auth.RoleAdmin {
		return ProfileRecord{
			Name:       "Administrator",
			Email:      "admin@mastoride.edu",
			Department: "Administration",
			Title:      "System Admin",
		}
	}
	return ProfileRecord{
		Name: "Mastodon Rider",
	}
}

// LoadProfile produces the canonical profile for an identity. A first-ever
// visit falls through entirely to the session values and role defaults.
func (r *Reconciler) LoadProfile(ctx context.Context, id *auth.Identity) (ProfileRecord, error) {
	var cached ProfileRecord
	if _, err := state.GetJSON(ctx, r.store, id.ID, state.NSProfile, &cached); err != nil {
		return ProfileRecord{}, err
	}

	def := defaultProfile(id.Role)
	return ProfileRecord{
		Name:           resolve(cached.Name, id.Name, def.Name),
		Email:          resolve(cached.Email, id.Email, def.Email),
		Phone:          resolve(cached.Phone, id.Phone, def.Phone),
		StudentID:      resolve(cached.StudentID, id.StudentID, def.StudentID),
		Department:     resolve(cached.Department, "", def.Department),
		Title:          resolve(cached.Title, "", def.Title),
		EmployeeID:     resolve(cached.EmployeeID, "", def.EmployeeID),
		OfficeLocation: resolve(cached.OfficeLocation, "", def.OfficeLocation),
		Supervisor:     resolve(cached.Supervisor, "", def.Supervisor),
		Address:        resolve(cached.Address, "", def.Address),
		Bio:            resolve(cached.Bio, "", def.Bio),
	}, nil
}

func applyPatch(rec *ProfileRecord, patch ProfilePatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&rec.Name, patch.Name)
	set(&rec.Email, patch.Email)
	set(&rec.Phone, patch.Phone)
	set(&rec.StudentID, patch.StudentID)
	set(&rec.Department, patch.Department)
	set(&rec.Title, patch.Title)
	set(&rec.EmployeeID, patch.EmployeeID)
	set(&rec.OfficeLocation, patch.OfficeLocation)
	set(&rec.Supervisor, patch.Supervisor)
	set(&rec.Address, patch.Address)
	set(&rec.Bio, patch.Bio)
}

// SaveProfile commits an edit: validates, merges onto the current record,
// persists the merged record to the cache, and pushes display fields to the
// durable identity when one exists. Last write wins; concurrent edits from
// two tabs are not coordinated.
func (r *Reconciler) SaveProfile(ctx context.Context, id *auth.Identity, patch ProfilePatch) (ProfileRecord, error) {
	if patch.Email != nil && !emailPattern.MatchString(*patch.Email) {
		return ProfileRecord{}, ErrInvalidEmail
	}

	rec, err := r.LoadProfile(ctx, id)
	if err != nil {
		return ProfileRecord{}, err
	}
	applyPatch(&rec, patch)

	if err := state.PutJSON(ctx, r.store, id.ID, state.NSProfile, rec); err != nil {
		return ProfileRecord{}, err
	}

	if oid, err := primitive.ObjectIDFromHex(id.ID); err == nil {
		if err := r.users.UpdateDisplayFields(ctx, oid, rec.Name, rec.Phone, rec.StudentID); err != nil {
			// cache is already committed; the durable copy catches up on the
			// next save
			r.logger.Warn("failed to propagate display fields", zap.Error(err))
		}
	}
	return rec, nil
}

func defaultSettings(role string) SettingsRecord {
	if role == auth.RoleAdmin {
		return SettingsRecord{
			"emailNotifications": true,
			"smsAlerts":          false,
			"systemAlerts":       true,
			"maintenanceMode":    false,
		}
	}
	return SettingsRecord{
		"emailNotifications": true,
		"rideAlerts":         true,
		"shareHistory":       false,
		"darkMode":           false,
	}
}

// LoadSettings resolves toggles the same way as profile fields: cached
// value if previously saved, fixed default otherwise.
func (r *Reconciler) LoadSettings(ctx context.Context, id *auth.Identity) (SettingsRecord, error) {
	settings := defaultSettings(id.Role)
	var cached SettingsRecord
	ok, err := state.GetJSON(ctx, r.store, id.ID, state.NSSettings, &cached)
	if err != nil {
		return nil, err
	}
	if ok {
		for key, value := range cached {
			settings[key] = value
		}
	}
	return settings, nil
}

// SaveSettings merges the toggled keys onto the current record and persists
// the result. Toggles flipped in the UI stay in-memory drafts until this
// commit.
func (r *Reconciler) SaveSettings(ctx context.Context, id *auth.Identity, patch SettingsRecord) (SettingsRecord, error) {
	settings, err := r.LoadSettings(ctx, id)
	if err != nil {
		return nil, err
	}
	for key, value := range patch {
		settings[key] = value
	}
	if err := state.PutJSON(ctx, r.store, id.ID, state.NSSettings, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func defaultUIState(role string) UIState {
	tab := "profile"
	if role == auth.RoleAdmin {
		tab = "feedback"
	}
	return UIState{ActiveTab: tab, SidebarOpen: true}
}

func (r *Reconciler) LoadUIState(ctx context.Context, id *auth.Identity) (UIState, error) {
	ui := defaultUIState(id.Role)
	if _, err := state.GetJSON(ctx, r.store, id.ID, state.NSUIState, &ui); err != nil {
		return UIState{}, err
	}
	return ui, nil
}

func (r *Reconciler) SaveUIState(ctx context.Context, id *auth.Identity, ui UIState) error {
	if ui.ActiveTab == "" {
		ui.ActiveTab = defaultUIState(id.Role).ActiveTab
	}
	return state.PutJSON(ctx, r.store, id.ID, state.NSUIState, ui)
}
