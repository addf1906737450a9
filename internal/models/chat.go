package models

import "time"

// ChatRoom is a conversation container, either 1:1 or group.
// LastMessage and LastMessageAt are a denormalized cache for room listings;
// unread counts are always computed against chat_messages, never this cache.
type ChatRoom struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"size:100"` // required for group rooms
	IsGroup       bool       `json:"is_group"`
	LastMessage   string     `json:"last_message" gorm:"type:text"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ChatMembership associates a user with a room and carries the read
// watermark. LastReadAt == nil means the user has never read the room; unread
// counting then falls back to the room's creation time. Exactly one row per
// (user, room).
type ChatMembership struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"index;uniqueIndex:idx_room_member;not null"`
	RoomID     uint       `json:"room_id" gorm:"index;uniqueIndex:idx_room_member;not null"`
	LastReadAt *time.Time `json:"last_read_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ChatMessage is immutable once created. Ordering within a room is
// (created_at, id); the autoincrement id breaks ties between messages
// committed in the same clock tick.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RoomID    uint      `json:"room_id" gorm:"index;not null"`
	SenderID  uint      `json:"sender_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"timestamp" gorm:"index"`
}

// RoomSummary is one entry of the "my rooms" listing. Timestamp is the
// humanized age of the last message and is filled at the HTTP layer.
type RoomSummary struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	IsGroup       bool       `json:"is_group"`
	LastMessage   string     `json:"lastMessage"`
	LastMessageAt *time.Time `json:"-"`
	Timestamp     string     `json:"timestamp"`
	UnreadCount   int64      `json:"unread_count"`
}

// CreateRoomRequest defines the request body for creating a chat room.
// UserIDs never includes the caller; the server adds the authenticated
// identity itself.
type CreateRoomRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	IsGroup bool   `json:"is_group"`
	UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,min=1"`
}

// SendMessageRequest defines the request body for sending a chat message
type SendMessageRequest struct {
	RoomID  uint   `json:"room_id" validate:"required"`
	Content string `json:"content" validate:"required,min=1"`
}

// TypingRequest defines the body of an ephemeral typing signal
type TypingRequest struct {
	RoomID uint `json:"room_id" validate:"required"`
}
