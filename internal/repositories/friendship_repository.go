package repositories

import (
	"errors"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FriendshipRepository owns the directed friendship edge set.
//
// Accept and Reject also clear the pending friend-request notification inside
// the same transaction, so the relationship graph and the notification stream
// can never disagree about an in-flight request. The notification is located
// by the sender id inside its payload; there is no foreign key to the edge.
type FriendshipRepository interface {
	CreateRequest(requesterID, targetID uint) (*models.Friendship, error)
	GetRequestByID(id uint) (*models.Friendship, error)
	AcceptRequest(id, actorID uint) (*models.Friendship, error)
	RejectRequest(id, actorID uint) (*models.Friendship, error)
	Friends(userID uint) ([]models.FriendEntry, error)
	PendingRequests(userID uint) ([]models.PendingRequestEntry, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateRequest inserts a single pending edge requester->target. Self-edges
// and duplicate edges in the same direction (pending or accepted) are
// rejected before any write.
func (r *PostgresFriendshipRepository) CreateRequest(requesterID, targetID uint) (*models.Friendship, error) {
	if requesterID == targetID {
		return nil, ErrSelfFriend
	}

	var existing models.Friendship
	err := r.db.Where("user_id = ? AND friend_id = ?", requesterID, targetID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	edge := &models.Friendship{
		UserID:   requesterID,
		FriendID: targetID,
		Status:   models.FriendshipPending,
	}
	if err := r.db.Create(edge).Error; err != nil {
		return nil, storeError(err)
	}
	return edge, nil
}

func (r *PostgresFriendshipRepository) GetRequestByID(id uint) (*models.Friendship, error) {
	var edge models.Friendship
	if err := r.db.First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, storeError(err)
	}
	return &edge, nil
}

// AcceptRequest transitions the pending edge to accepted, creates the
// reciprocal accepted edge and removes the actor's pending friend-request
// notification, all in one transaction. The guarded status-flip update makes
// a concurrent double-accept lose: the second transaction matches zero rows
// and no second reciprocal edge is created.
func (r *PostgresFriendshipRepository) AcceptRequest(id, actorID uint) (*models.Friendship, error) {
	var edge models.Friendship
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&edge, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if edge.FriendID != actorID {
			return ErrNotRequestRecipient
		}
		if edge.Status != models.FriendshipPending {
			return ErrAlreadyAccepted
		}

		res := tx.Model(&models.Friendship{}).
			Where("id = ? AND status = ?", id, models.FriendshipPending).
			Update("status", models.FriendshipAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAccepted
		}

		reciprocal := &models.Friendship{
			UserID:   edge.FriendID,
			FriendID: edge.UserID,
			Status:   models.FriendshipAccepted,
		}
		if err := tx.Create(reciprocal).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND type = ?", actorID, models.NotificationFriendRequest).
			Where(datatypes.JSONQuery("data").Equals(edge.UserID, "sender_id")).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrNotRequestRecipient) || errors.Is(err, ErrAlreadyAccepted) {
			return nil, err
		}
		return nil, storeError(err)
	}
	edge.Status = models.FriendshipAccepted
	return &edge, nil
}

// RejectRequest deletes the pending edge and its friend-request notification.
// No reciprocal edge is ever created on this path.
func (r *PostgresFriendshipRepository) RejectRequest(id, actorID uint) (*models.Friendship, error) {
	var edge models.Friendship
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&edge, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if edge.FriendID != actorID {
			return ErrNotRequestRecipient
		}

		if err := tx.Delete(&models.Friendship{}, id).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND type = ?", actorID, models.NotificationFriendRequest).
			Where(datatypes.JSONQuery("data").Equals(edge.UserID, "sender_id")).
			Delete(&models.Notification{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrNotRequestRecipient) {
			return nil, err
		}
		return nil, storeError(err)
	}
	return &edge, nil
}

// Friends returns accepted edges where the user is the requester side; since
// accepted friendships are stored as a row per direction, this covers every
// friend exactly once.
func (r *PostgresFriendshipRepository) Friends(userID uint) ([]models.FriendEntry, error) {
	var entries []models.FriendEntry
	err := r.db.Table("friendships").
		Select("friendships.user_id, friendships.friend_id, users.username, friendships.created_at").
		Joins("JOIN users ON users.id = friendships.friend_id").
		Where("friendships.user_id = ? AND friendships.status = ?", userID, models.FriendshipAccepted).
		Order("friendships.created_at ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}

// PendingRequests returns pending edges where the user is the target.
func (r *PostgresFriendshipRepository) PendingRequests(userID uint) ([]models.PendingRequestEntry, error) {
	var edges []models.Friendship
	err := r.db.Where("friend_id = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at ASC").
		Find(&edges).Error
	if err != nil {
		return nil, storeError(err)
	}

	entries := make([]models.PendingRequestEntry, 0, len(edges))
	for _, edge := range edges {
		var requester models.User
		if err := r.db.First(&requester, edge.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, storeError(err)
		}
		entries = append(entries, models.PendingRequestEntry{
			RequestID: edge.ID,
			FromUser:  requester.ToCompact(),
			CreatedAt: edge.CreatedAt,
		})
	}
	return entries, nil
}
