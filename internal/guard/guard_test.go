package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MastoRide/internal/auth"
)

func TestCanAccessRoleSemantics(t *testing.T) {
	user := &auth.Identity{ID: "u1", Role: auth.RoleUser}
	admin := &auth.Identity{ID: "a1", Role: auth.RoleAdmin}

	// no requirement always passes
	assert.True(t, CanAccess(RoleNone, nil))
	assert.True(t, CanAccess(RoleNone, user))

	// the user gate wants some authenticated identity, any role
	assert.False(t, CanAccess(RoleUser, nil))
	assert.True(t, CanAccess(RoleUser, user))
	assert.True(t, CanAccess(RoleUser, admin))

	// the admin gate matches the role string exactly
	assert.False(t, CanAccess(RoleAdmin, nil))
	assert.False(t, CanAccess(RoleAdmin, user))
	assert.True(t, CanAccess(RoleAdmin, admin))
}

func TestCanAccessUnknownRole(t *testing.T) {
	admin := &auth.Identity{ID: "a1", Role: auth.RoleAdmin}
	assert.False(t, CanAccess(Role("superuser"), admin))
}

func TestRedirectTarget(t *testing.T) {
	assert.Equal(t, "/login", RedirectTarget(RoleUser))
	assert.Equal(t, "/admin/login", RedirectTarget(RoleAdmin))
	assert.Equal(t, "/login", RedirectTarget(RoleNone))
}
