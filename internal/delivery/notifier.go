package delivery

import (
	"encoding/json"
	"fmt"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/realtime"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"gorm.io/datatypes"
)

// Notifier is the single dual-write point for notifications: every
// notification is a durable row first, then a best-effort live event on the
// recipient's presence channel.
type Notifier struct {
	notifications repositories.NotificationRepository
	hub           *realtime.Hub
}

func NewNotifier(notifications repositories.NotificationRepository, hub *realtime.Hub) *Notifier {
	return &Notifier{notifications: notifications, hub: hub}
}

// Notify persists a notification of the given type for userID and publishes
// it live. The payload must be JSON-marshalable. Publish failures are not
// surfaced; the row is the source of truth.
func (n *Notifier) Notify(userID uint, notificationType string, payload interface{}) (*models.Notification, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}
	notification := &models.Notification{
		UserID: userID,
		Type:   notificationType,
		Data:   datatypes.JSON(raw),
	}
	if err := n.notifications.CreateNotification(notification); err != nil {
		return nil, err
	}
	n.hub.Publish(userID, realtime.Event{
		Name: realtime.EventNotification,
		Data: realtime.NotificationPayload{
			ID:        notification.ID,
			Type:      notification.Type,
			Data:      raw,
			CreatedAt: notification.CreatedAt,
		},
	})
	return notification, nil
}

// MarkAllRead flips every unviewed notification for the user and tells their
// live connections to clear the badge.
func (n *Notifier) MarkAllRead(userID uint) error {
	if err := n.notifications.MarkAllViewed(userID); err != nil {
		return err
	}
	n.hub.Publish(userID, realtime.Event{Name: realtime.EventMarkAllRead})
	return nil
}
