package realtime

import (
	"encoding/json"
	"time"
)

// Server-pushed event names
const (
	EventChatMessage  = "chat_message"
	EventUserTyping   = "user_typing"
	EventNotification = "notification"
	EventMarkAllRead  = "mark_all_read"
)

// Event is the envelope written to live connections and read back from them
// (clients only ever send user_typing).
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data,omitempty"`
}

// ChatMessagePayload accompanies chat_message events
type ChatMessagePayload struct {
	MessageID      uint      `json:"message_id"`
	RoomID         uint      `json:"room_id"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// TypingPayload accompanies user_typing events. Ephemeral: never persisted,
// never retried.
type TypingPayload struct {
	RoomID   uint   `json:"room_id"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// NotificationPayload accompanies notification events and mirrors the
// persisted row.
type NotificationPayload struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}
