package repositories

import (
	"testing"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/stretchr/testify/require"
)

func TestNotificationsNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createUser(t, db, "alice")

	for _, typ := range []string{models.NotificationFriendRequest, models.NotificationMessage, models.NotificationLike} {
		require.NoError(t, repo.CreateNotification(&models.Notification{
			UserID: alice.ID,
			Type:   typ,
			Data:   []byte(`{}`),
		}))
	}

	notifications, err := repo.GetByUserID(alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	require.Equal(t, models.NotificationLike, notifications[0].Type)
	require.Equal(t, models.NotificationFriendRequest, notifications[2].Type)
}

func TestMarkAllViewedIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(&models.Notification{
			UserID: alice.ID,
			Type:   models.NotificationMessage,
			Data:   []byte(`{}`),
		}))
	}
	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID: bob.ID,
		Type:   models.NotificationMessage,
		Data:   []byte(`{}`),
	}))

	count, err := repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	require.NoError(t, repo.MarkAllViewed(alice.ID))
	require.NoError(t, repo.MarkAllViewed(alice.ID))

	count, err = repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// other users are untouched
	count, err = repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
