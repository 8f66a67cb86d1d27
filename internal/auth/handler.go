package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *UserService
	repo    *UserRepository
	logger  *zap.Logger
}

func NewAuthHandler(service *UserService, repo *UserRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, repo: repo, logger: logger.Named("auth.http")}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	identity, err := h.service.SignUp(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmailDomain), errors.Is(err, ErrWeakPassword), errors.Is(err, ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error during signup"})
		}
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message":    "Account created successfully",
		"identityId": identity.ID,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	session, err := h.service.LogIn(c.Request().Context(), cred)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		h.logger.Error("login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error during login"})
	}
	return c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	// same acknowledgment whether or not the account exists
	return c.JSON(http.StatusOK, map[string]string{"message": GenericResetAck})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.CompletePasswordReset(c.Request().Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken), errors.Is(err, ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Error("password reset failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successful. You can now log in."})
}

// Profile returns the durable record behind the session identity.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := c.Get("identity").(*JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	user, err := h.repo.FindByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user.PublicIdentity()})
}
