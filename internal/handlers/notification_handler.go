package handlers

import (
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	notifier               *delivery.Notifier
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, notifier *delivery.Notifier) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		notifier:               notifier,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.GET("/unread-count", h.GetUnreadCount)
	g.PUT("/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadCount returns how many notifications the caller has not viewed
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAllAsRead flips every unviewed notification and pushes the live signal
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.notifier.MarkAllRead(userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
