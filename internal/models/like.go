package models

import "time"

// Like marks that a user liked a media item. One row per (media, user).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MediaID   string    `json:"media_id" gorm:"size:24;index;uniqueIndex:idx_media_liker;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_media_liker;not null"`
	CreatedAt time.Time `json:"created_at"`
}
