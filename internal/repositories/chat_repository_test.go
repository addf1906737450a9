package repositories

import (
	"testing"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomDirectPair(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)
	require.NotZero(t, room.ID)

	members, err := repo.Participants(room.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

func TestCreateRoomDirectRejectsWrongSize(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	// only the creator
	_, err := repo.CreateRoom(alice.ID, nil, "", false)
	require.ErrorIs(t, err, ErrInvalidMembership)

	// three members
	_, err = repo.CreateRoom(alice.ID, []uint{bob.ID, carol.ID}, "", false)
	require.ErrorIs(t, err, ErrInvalidMembership)

	// creator duplicated in the list still counts once
	_, err = repo.CreateRoom(alice.ID, []uint{alice.ID}, "", false)
	require.ErrorIs(t, err, ErrInvalidMembership)
}

func TestCreateGroupRoomRequiresName(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "   ", true)
	require.ErrorIs(t, err, ErrRoomNameRequired)

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "raid night", true)
	require.NoError(t, err)
	require.Equal(t, "raid night", room.Name)
}

func TestAppendMessageRejectsOutsiders(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mallory := createUser(t, db, "mallory")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = repo.AppendMessage(room.ID, mallory.ID, "hi")
	require.ErrorIs(t, err, ErrNotMember)

	_, err = repo.AppendMessage(room.ID+999, alice.ID, "hi")
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, err = repo.AppendMessage(room.ID, alice.ID, "  ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := repo.AppendMessage(room.ID, alice.ID, content)
		require.NoError(t, err)
	}

	messages, err := repo.MessagesByRoomID(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "one", messages[0].Content)
	require.Equal(t, "three", messages[2].Content)
	require.Less(t, messages[0].ID, messages[1].ID)
}

func TestUnreadCountTracksWatermark(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = repo.AppendMessage(room.ID, alice.ID, "first")
	require.NoError(t, err)
	_, err = repo.AppendMessage(room.ID, alice.ID, "second")
	require.NoError(t, err)

	// sending advances the sender's own watermark
	count, err := repo.UnreadCount(alice.ID, room.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = repo.UnreadCount(bob.ID, room.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.NoError(t, repo.MarkRead(bob.ID, room.ID))
	count, err = repo.UnreadCount(bob.ID, room.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMarkReadRejectsOutsiders(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	mallory := createUser(t, db, "mallory")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	require.ErrorIs(t, repo.MarkRead(mallory.ID, room.ID), ErrNotMember)
}

func TestRoomsByUserIDSummaries(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	direct, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)
	group, err := repo.CreateRoom(alice.ID, []uint{bob.ID, carol.ID}, "squad", true)
	require.NoError(t, err)

	// activity in the direct room puts it first
	_, err = repo.AppendMessage(direct.ID, bob.ID, "yo")
	require.NoError(t, err)

	rooms, err := repo.RoomsByUserID(alice.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	require.Equal(t, direct.ID, rooms[0].ID)
	require.Equal(t, "bob", rooms[0].Name)
	require.Equal(t, "yo", rooms[0].LastMessage)
	require.EqualValues(t, 1, rooms[0].UnreadCount)

	require.Equal(t, group.ID, rooms[1].ID)
	require.Equal(t, "squad", rooms[1].Name)
	require.Zero(t, rooms[1].UnreadCount)
}

func TestAppendMessageUpdatesRoomCache(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresChatRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	room, err := repo.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	msg, err := repo.AppendMessage(room.ID, alice.ID, "latest")
	require.NoError(t, err)

	var reloaded models.ChatRoom
	require.NoError(t, db.First(&reloaded, room.ID).Error)
	require.Equal(t, "latest", reloaded.LastMessage)
	require.NotNil(t, reloaded.LastMessageAt)
	require.WithinDuration(t, msg.CreatedAt, *reloaded.LastMessageAt, 0)
}
