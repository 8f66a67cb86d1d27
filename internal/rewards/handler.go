package rewards

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
)

type RewardsHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewRewardsHandler(service *Service, logger *zap.Logger) *RewardsHandler {
	return &RewardsHandler{service: service, logger: logger.Named("rewards.http")}
}

func identityKey(c echo.Context) string {
	claims, ok := c.Get("identity").(*auth.JWTClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}

func (h *RewardsHandler) Get(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	st, err := h.service.Load(c.Request().Context(), key)
	if err != nil {
		h.logger.Error("load rewards failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *RewardsHandler) UseBadge(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	st, err := h.service.UseBadge(c.Request().Context(), key, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrBadgeNotAvailable) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		h.logger.Error("use badge failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, st)
}

type redeemRequest struct {
	Points int `json:"points"`
}

func (h *RewardsHandler) Redeem(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	st, err := h.service.Redeem(c.Request().Context(), key, req.Points)
	if err != nil {
		if errors.Is(err, ErrNotEnoughPoints) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("redeem failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, st)
}
