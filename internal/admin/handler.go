package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
)

type AdminHandler struct {
	service *Service
	users   *auth.UserRepository
	logger  *zap.Logger
}

func NewAdminHandler(service *Service, users *auth.UserRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, users: users, logger: logger.Named("admin.http")}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	deleted, err := h.users.DeleteUser(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("delete user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *AdminHandler) Stats(c echo.Context) error {
	s, err := h.service.Stats(c.Request().Context())
	if err != nil {
		h.logger.Error("stats failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch statistics"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) Bookings(c echo.Context) error {
	bookings, err := h.service.RecentBookings(c.Request().Context())
	if err != nil {
		h.logger.Error("list bookings failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": bookings})
}
