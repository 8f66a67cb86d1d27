// Package guard is the single role predicate gating protected views. Every
// route-level check goes through CanAccess rather than re-deriving role
// logic per handler.
package guard

import "MastoRide/internal/auth"

// Role is the access level a view requires.
type Role string

const (
	RoleNone  Role = "none"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CanAccess reports whether an identity may see a view with the given
// requirement. The "user" gate only checks that some authenticated identity
// is present; it does not demand role == "user", so admins can open user
// pages. The "admin" gate matches the role string exactly, with no
// hierarchy in either direction. Pure and side-effect-free; safe to call on
// every request.
func CanAccess(required Role, id *auth.Identity) bool {
	switch required {
	case RoleNone:
		return true
	case RoleUser:
		return id != nil
	case RoleAdmin:
		return id != nil && id.Role == auth.RoleAdmin
	default:
		return false
	}
}

// redirect targets are a static mapping, not derived per request
var loginPaths = map[Role]string{
	RoleUser:  "/login",
	RoleAdmin: "/admin/login",
}

// RedirectTarget is where a denied request should send the client.
func RedirectTarget(required Role) string {
	if path, ok := loginPaths[required]; ok {
		return path
	}
	return "/login"
}
