package repositories

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func pendingNotification(t *testing.T, db *gorm.DB, ownerID, senderID uint) *models.Notification {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"sender_id":       senderID,
		"sender_username": fmt.Sprintf("user%d", senderID),
	})
	require.NoError(t, err)
	n := &models.Notification{
		UserID: ownerID,
		Type:   models.NotificationFriendRequest,
		Data:   datatypes.JSON(payload),
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestCreateRequestGuards(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrSelfFriend)

	edge, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, models.FriendshipPending, edge.Status)

	_, err = repo.CreateRequest(alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestDuplicateEdgeRejectedByStore(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// even bypassing the pre-check, the (user_id, friend_id) unique index
	// refuses a second edge in the same direction
	dup := &models.Friendship{
		UserID:   alice.ID,
		FriendID: bob.ID,
		Status:   models.FriendshipPending,
	}
	require.Error(t, db.Create(dup).Error)

	// the reverse direction stays open for bob's own request
	_, err = repo.CreateRequest(bob.ID, alice.ID)
	require.NoError(t, err)
}

func TestAcceptCreatesReciprocalEdge(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	edge, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	accepted, err := repo.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, models.FriendshipAccepted, accepted.Status)

	var edges []models.Friendship
	require.NoError(t, db.Order("id ASC").Find(&edges).Error)
	require.Len(t, edges, 2)
	require.Equal(t, alice.ID, edges[0].UserID)
	require.Equal(t, bob.ID, edges[0].FriendID)
	require.Equal(t, bob.ID, edges[1].UserID)
	require.Equal(t, alice.ID, edges[1].FriendID)
	require.Equal(t, models.FriendshipAccepted, edges[1].Status)

	// both sides now list each other
	aliceFriends, err := repo.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	require.Equal(t, "bob", aliceFriends[0].Username)

	bobFriends, err := repo.Friends(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	require.Equal(t, "alice", bobFriends[0].Username)
}

func TestAcceptGuards(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mallory := createUser(t, db, "mallory")

	edge, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = repo.AcceptRequest(edge.ID+999, bob.ID)
	require.ErrorIs(t, err, ErrRequestNotFound)

	_, err = repo.AcceptRequest(edge.ID, mallory.ID)
	require.ErrorIs(t, err, ErrNotRequestRecipient)

	_, err = repo.AcceptRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	// second accept finds no pending edge
	_, err = repo.AcceptRequest(edge.ID, bob.ID)
	require.ErrorIs(t, err, ErrAlreadyAccepted)

	var edges []models.Friendship
	require.NoError(t, db.Find(&edges).Error)
	require.Len(t, edges, 2)
}

func TestRejectDeletesEdgeWithoutReciprocal(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	edge, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	rejected, err := repo.RejectRequest(edge.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, alice.ID, rejected.UserID)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	require.Zero(t, count)

	// a fresh request is allowed after rejection
	_, err = repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
}

func TestAcceptRemovesOnlyMatchingRequestNotification(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	fromAlice, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.CreateRequest(carol.ID, bob.ID)
	require.NoError(t, err)

	pendingNotification(t, db, bob.ID, alice.ID)
	kept := pendingNotification(t, db, bob.ID, carol.ID)

	_, err = repo.AcceptRequest(fromAlice.ID, bob.ID)
	require.NoError(t, err)

	var remaining []models.Notification
	require.NoError(t, db.Where("user_id = ?", bob.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, kept.ID, remaining[0].ID)
}

func TestRejectRemovesRequestNotification(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	edge, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	pendingNotification(t, db, bob.ID, alice.ID)

	_, err = repo.RejectRequest(edge.ID, bob.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", bob.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestPendingRequestsListsRequesters(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	first, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.CreateRequest(carol.ID, bob.ID)
	require.NoError(t, err)

	pending, err := repo.PendingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, first.ID, pending[0].RequestID)
	require.Equal(t, "alice", pending[0].FromUser.Username)

	// the requester side sees nothing pending on them
	pending, err = repo.PendingRequests(alice.ID)
	require.NoError(t, err)
	require.Empty(t, pending)
}
