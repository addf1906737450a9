package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types
const (
	NotificationFriendRequest         = "friend_request"
	NotificationFriendRequestAccepted = "friend_request_accepted"
	NotificationFriendRequestRejected = "friend_request_rejected"
	NotificationMessage               = "message"
	NotificationComment               = "comment"
	NotificationLike                  = "like"
)

// Notification is one entry of a user's durable event log. Data is a
// free-form JSON payload; for friendship events it carries the sender's id
// and username, which is also how the pending friend-request notification is
// located during accept/reject (there is no foreign key to the edge).
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Type      string         `json:"type" gorm:"size:50;index;not null"`
	Data      datatypes.JSON `json:"data"`
	Viewed    bool           `json:"viewed" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
