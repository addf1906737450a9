package repositories

import (
	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Rows are only ever created through delivery.Notifier and only ever mutated
// by flipping the viewed flag.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByUserID(userID uint) ([]models.Notification, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkAllViewed(userID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// GetByUserID returns all notifications for the user, newest first.
func (r *postgresNotificationRepository) GetByUserID(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, storeError(err)
	}
	return notifications, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND viewed = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

// MarkAllViewed flips viewed on every unread row in one statement. Idempotent.
func (r *postgresNotificationRepository) MarkAllViewed(userID uint) error {
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND viewed = ?", userID, false).
		Update("viewed", true).Error
	if err != nil {
		return storeError(err)
	}
	return nil
}
