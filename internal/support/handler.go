package support

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
)

type SupportHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewSupportHandler(service *Service, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{service: service, logger: logger.Named("support.http")}
}

func (h *SupportHandler) Submit(c echo.Context) error {
	claims, ok := c.Get("identity").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}
	var req SubmitTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	ticket, err := h.service.Submit(c.Request().Context(), claims.UserID, claims.Email, req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("submit ticket failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "Ticket submitted. We'll email you an update.", "ticket": ticket})
}

func (h *SupportHandler) List(c echo.Context) error {
	tickets, err := h.service.List(c.Request().Context())
	if err != nil {
		h.logger.Error("list tickets failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tickets": tickets})
}

func (h *SupportHandler) UpdateStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": ErrNotFound.Error()})
	}
	var req UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	ticket, err := h.service.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			h.logger.Error("update ticket failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Ticket updated", "ticket": ticket})
}
