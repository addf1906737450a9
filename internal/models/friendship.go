package models

import "time"

// Friendship statuses. Rejection is represented by row deletion, not a status.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a directed edge from the requester (UserID) to the target
// (FriendID). While pending exactly one edge exists; acceptance creates the
// reciprocal accepted edge so an accepted friendship is always two rows, one
// per direction.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_edge_direction;not null"`
	FriendID  uint      `json:"friend_id" gorm:"index;uniqueIndex:idx_edge_direction;not null"`
	Status    string    `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
}

// SendFriendRequestRequest defines the request body for sending a friend request
type SendFriendRequestRequest struct {
	Username string `json:"username" validate:"required"`
}

// FriendRequestActionRequest defines the request body for accept/reject
type FriendRequestActionRequest struct {
	RequestID uint `json:"request_id" validate:"required"`
}

// FriendEntry is one row of the friends listing
type FriendEntry struct {
	UserID    uint      `json:"user_id"`
	FriendID  uint      `json:"friend_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingRequestEntry is one row of the pending-requests listing
type PendingRequestEntry struct {
	RequestID uint        `json:"request_id"`
	FromUser  UserCompact `json:"from_user"`
	CreatedAt time.Time   `json:"created_at"`
}
