package booking

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
)

type BookingHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewBookingHandler(service *Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{service: service, logger: logger.Named("booking.http")}
}

func identityKey(c echo.Context) string {
	claims, ok := c.Get("identity").(*auth.JWTClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}

func isDraftError(err error) bool {
	return errors.Is(err, ErrMissingPickup) ||
		errors.Is(err, ErrMissingDropoff) ||
		errors.Is(err, ErrInvalidPassengers) ||
		errors.Is(err, ErrUnknownVehicle)
}

func (h *BookingHandler) GetDraft(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	draft, err := h.service.LoadDraft(c.Request().Context(), key)
	if err != nil {
		h.logger.Error("load draft failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, draft)
}

func (h *BookingHandler) SaveDraft(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var draft Draft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := h.service.SaveDraft(c.Request().Context(), key, draft); err != nil {
		h.logger.Error("save draft failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Draft saved"})
}

func (h *BookingHandler) Estimate(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var draft Draft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	fare, err := EstimateFare(draft)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]float64{"fare": fare})
}

func (h *BookingHandler) Confirm(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var draft Draft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	booking, err := h.service.Confirm(c.Request().Context(), key, draft)
	if err != nil {
		if isDraftError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("confirm booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "Ride booked", "booking": booking})
}

func (h *BookingHandler) History(c echo.Context) error {
	key := identityKey(c)
	if key == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	history, err := h.service.History(c.Request().Context(), key)
	if err != nil {
		h.logger.Error("load history failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, history)
}
