package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/gorm"
)

// ChatRepository owns rooms, memberships and the per-room message log.
//
// GetMessages-side read acknowledgement is NOT done here; callers that fetch
// history on behalf of a member are expected to call MarkRead afterwards.
type ChatRepository interface {
	CreateRoom(creatorID uint, memberIDs []uint, name string, isGroup bool) (*models.ChatRoom, error)
	GetRoomByID(roomID uint) (*models.ChatRoom, error)
	RoomsByUserID(userID uint) ([]models.RoomSummary, error)
	Participants(roomID uint) ([]models.User, error)
	IsMember(userID, roomID uint) (bool, error)
	AppendMessage(roomID, senderID uint, content string) (*models.ChatMessage, error)
	MessagesByRoomID(roomID uint) ([]models.ChatMessage, error)
	MarkRead(userID, roomID uint) error
	UnreadCount(userID, roomID uint) (int64, error)
}

// PostgresChatRepository implements ChatRepository for PostgreSQL
type PostgresChatRepository struct {
	db *gorm.DB
}

// NewPostgresChatRepository creates a new PostgresChatRepository
func NewPostgresChatRepository(db *gorm.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

// CreateRoom persists the room and one membership row per member atomically.
// The creator is always folded into the member set. A non-group room must end
// up with exactly two distinct members, a group room with at least two.
func (r *PostgresChatRepository) CreateRoom(creatorID uint, memberIDs []uint, name string, isGroup bool) (*models.ChatRoom, error) {
	seen := map[uint]struct{}{creatorID: {}}
	members := []uint{creatorID}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	if !isGroup && len(members) != 2 {
		return nil, ErrInvalidMembership
	}
	if isGroup && len(members) < 2 {
		return nil, ErrInvalidMembership
	}
	if isGroup && strings.TrimSpace(name) == "" {
		return nil, ErrRoomNameRequired
	}

	room := &models.ChatRoom{Name: name, IsGroup: isGroup}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for _, id := range members {
			membership := &models.ChatMembership{UserID: id, RoomID: room.ID}
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return room, nil
}

func (r *PostgresChatRepository) GetRoomByID(roomID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, storeError(err)
	}
	return &room, nil
}

// RoomsByUserID lists the user's rooms ordered by last message, newest first;
// rooms without messages sort last by creation time. Each summary resolves a
// human-facing name (group name, or the other member's username for 1:1
// rooms) and an unread count computed against the message log.
func (r *PostgresChatRepository) RoomsByUserID(userID uint) ([]models.RoomSummary, error) {
	var rooms []models.ChatRoom
	err := r.db.
		Joins("JOIN chat_memberships ON chat_memberships.room_id = chat_rooms.id").
		Where("chat_memberships.user_id = ?", userID).
		Order("CASE WHEN chat_rooms.last_message_at IS NULL THEN 1 ELSE 0 END").
		Order("chat_rooms.last_message_at DESC").
		Order("chat_rooms.created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, storeError(err)
	}

	summaries := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		name := room.Name
		if !room.IsGroup {
			var other models.User
			err := r.db.
				Joins("JOIN chat_memberships ON chat_memberships.user_id = users.id").
				Where("chat_memberships.room_id = ? AND users.id <> ?", room.ID, userID).
				First(&other).Error
			if err == nil {
				name = other.Username
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, storeError(err)
			}
		}

		unread, err := r.UnreadCount(userID, room.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, models.RoomSummary{
			ID:            room.ID,
			Name:          name,
			IsGroup:       room.IsGroup,
			LastMessage:   room.LastMessage,
			LastMessageAt: room.LastMessageAt,
			UnreadCount:   unread,
		})
	}
	return summaries, nil
}

func (r *PostgresChatRepository) Participants(roomID uint) ([]models.User, error) {
	if _, err := r.GetRoomByID(roomID); err != nil {
		return nil, err
	}
	var users []models.User
	err := r.db.
		Joins("JOIN chat_memberships ON chat_memberships.user_id = users.id").
		Where("chat_memberships.room_id = ?", roomID).
		Find(&users).Error
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (r *PostgresChatRepository) IsMember(userID, roomID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChatMembership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	if err != nil {
		return false, storeError(err)
	}
	return count > 0, nil
}

// AppendMessage inserts the message, advances the sender's read watermark and
// refreshes the room's last-message cache in one transaction. A sender always
// considers their own message read.
func (r *PostgresChatRepository) AppendMessage(roomID, senderID uint, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	msg := &models.ChatMessage{
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var room models.ChatRoom
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		var membership models.ChatMembership
		err := tx.Where("user_id = ? AND room_id = ?", senderID, roomID).First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotMember
			}
			return err
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.ChatMembership{}).
			Where("id = ?", membership.ID).
			Update("last_read_at", msg.CreatedAt).Error; err != nil {
			return err
		}

		return tx.Model(&models.ChatRoom{}).
			Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"last_message":    msg.Content,
				"last_message_at": msg.CreatedAt,
			}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrNotMember) {
			return nil, err
		}
		return nil, storeError(err)
	}
	return msg, nil
}

// MessagesByRoomID returns the full room history in ascending order.
func (r *PostgresChatRepository) MessagesByRoomID(roomID uint) ([]models.ChatMessage, error) {
	if _, err := r.GetRoomByID(roomID); err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	err := r.db.Where("room_id = ?", roomID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}

// MarkRead advances the user's read watermark to now. Idempotent.
func (r *PostgresChatRepository) MarkRead(userID, roomID uint) error {
	res := r.db.Model(&models.ChatMembership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Update("last_read_at", time.Now())
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// UnreadCount counts messages newer than the user's watermark, falling back
// to the room's creation time when the user has never read the room. Always
// computed against chat_messages, never the denormalized room cache.
func (r *PostgresChatRepository) UnreadCount(userID, roomID uint) (int64, error) {
	var membership models.ChatMembership
	err := r.db.Where("user_id = ? AND room_id = ?", userID, roomID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotMember
		}
		return 0, storeError(err)
	}

	threshold := membership.LastReadAt
	if threshold == nil {
		room, err := r.GetRoomByID(roomID)
		if err != nil {
			return 0, err
		}
		threshold = &room.CreatedAt
	}

	var count int64
	err = r.db.Model(&models.ChatMessage{}).
		Where("room_id = ? AND created_at > ?", roomID, *threshold).
		Count(&count).Error
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}
