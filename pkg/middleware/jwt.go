package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"MastoRide/internal/auth"
	"MastoRide/internal/guard"
)

// JWTMiddleware parses the bearer token, when one is present and valid, and
// stashes its claims under the "identity" context key. Denial is left to
// RequireRole, which knows the gate's role and answers with that role's login
// redirect; a request without a usable token simply carries no identity.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if claims, err := auth.ValidateJWT(tokenString); err == nil {
				c.Set("identity", claims)
			}
		}
		return next(c)
	}
}

// RequireRole gates a route group on the access guard. Authorization
// failures answer with the static login redirect for the required role
// instead of partial data.
func RequireRole(required guard.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var identity *auth.Identity
			if claims, ok := c.Get("identity").(*auth.JWTClaims); ok && claims != nil {
				identity = claims.Identity()
			}
			if !guard.CanAccess(required, identity) {
				status := http.StatusForbidden
				message := "Forbidden: insufficient permissions"
				if identity == nil {
					status = http.StatusUnauthorized
					message = "Missing or invalid token"
				}
				return c.JSON(status, map[string]string{
					"error":    message,
					"redirect": guard.RedirectTarget(required),
				})
			}
			return next(c)
		}
	}
}
