package models

import "time"

// Comment is a comment on a media item. MediaID is the MongoDB ObjectID in
// hex, the relational side of the two-store layout.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MediaID   string    `json:"media_id" gorm:"size:24;index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
