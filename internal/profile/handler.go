package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
)

type ProfileHandler struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

func NewProfileHandler(reconciler *Reconciler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{reconciler: reconciler, logger: logger.Named("profile.http")}
}

func identityFrom(c echo.Context) *auth.Identity {
	claims, ok := c.Get("identity").(*auth.JWTClaims)
	if !ok || claims == nil {
		return nil
	}
	return claims.Identity()
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	rec, err := h.reconciler.LoadProfile(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("load profile failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"profile": rec})
}

func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var patch ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	rec, err := h.reconciler.SaveProfile(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("save profile failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Profile saved", "profile": rec})
}

func (h *ProfileHandler) GetSettings(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	settings, err := h.reconciler.LoadSettings(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("load settings failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"settings": settings})
}

func (h *ProfileHandler) SaveSettings(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var patch SettingsRecord
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	settings, err := h.reconciler.SaveSettings(c.Request().Context(), id, patch)
	if err != nil {
		h.logger.Error("save settings failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Settings saved", "settings": settings})
}

func (h *ProfileHandler) GetUIState(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	ui, err := h.reconciler.LoadUIState(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("load ui state failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, ui)
}

func (h *ProfileHandler) SaveUIState(c echo.Context) error {
	id := identityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var ui UIState
	if err := c.Bind(&ui); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.reconciler.SaveUIState(c.Request().Context(), id, ui); err != nil {
		h.logger.Error("save ui state failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "UI state saved"})
}
