package delivery

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/realtime"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db          *gorm.DB
	hub         *realtime.Hub
	notifier    *Notifier
	coordinator *Coordinator
	friendships *FriendshipService
	chats       repositories.ChatRepository
}

func bootstrap(t *testing.T, notifyOnReject bool) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ChatRoom{},
		&models.ChatMembership{},
		&models.ChatMessage{},
		&models.Friendship{},
		&models.Notification{},
	))

	hub := realtime.NewHub()
	users := repositories.NewPostgresUserRepository(db)
	chats := repositories.NewPostgresChatRepository(db)
	friendships := repositories.NewPostgresFriendshipRepository(db)
	notifications := repositories.NewPostgresNotificationRepository(db)
	notifier := NewNotifier(notifications, hub)

	return &fixture{
		db:          db,
		hub:         hub,
		notifier:    notifier,
		coordinator: NewCoordinator(chats, users, hub, notifier),
		friendships: NewFriendshipService(friendships, users, notifier, notifyOnReject),
		chats:       chats,
	}
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@playhaven.gg",
		Username: username,
		Password: "hashed",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

// sink collects events published to one user
type sink struct {
	events []realtime.Event
}

func (s *sink) Send(ev realtime.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func (f *fixture) listen(userID uint) *sink {
	s := &sink{}
	f.hub.Subscribe(userID, fmt.Sprintf("test-conn-%d", userID), s)
	return s
}

func TestSendMessageFansOutToAllMembers(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	room, err := f.chats.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)
	bobSink := f.listen(bob.ID)

	payload, err := f.coordinator.SendMessage(alice.ID, room.ID, "gg wp")
	require.NoError(t, err)
	require.Equal(t, "alice", payload.SenderUsername)

	require.Len(t, aliceSink.events, 1)
	require.Len(t, bobSink.events, 1)
	require.Equal(t, realtime.EventChatMessage, bobSink.events[0].Name)

	got, ok := bobSink.events[0].Data.(realtime.ChatMessagePayload)
	require.True(t, ok)
	require.Equal(t, "gg wp", got.Content)
	require.Equal(t, alice.ID, got.SenderID)

	// the message survives regardless of who was listening
	messages, err := f.chats.MessagesByRoomID(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestSendMessagePersistsWithNoSubscribers(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	room, err := f.chats.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = f.coordinator.SendMessage(alice.ID, room.ID, "anyone here?")
	require.NoError(t, err)

	messages, err := f.chats.MessagesByRoomID(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	unread, err := f.chats.UnreadCount(bob.ID, room.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, unread)
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	mallory := f.createUser(t, "mallory")
	room, err := f.chats.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	bobSink := f.listen(bob.ID)

	_, err = f.coordinator.SendMessage(mallory.ID, room.ID, "let me in")
	require.ErrorIs(t, err, repositories.ErrNotMember)
	require.Empty(t, bobSink.events)
}

func TestTypingReachesOnlyOtherMembers(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	room, err := f.chats.CreateRoom(alice.ID, []uint{bob.ID, carol.ID}, "squad", true)
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)
	bobSink := f.listen(bob.ID)
	carolSink := f.listen(carol.ID)

	require.NoError(t, f.coordinator.Typing(alice.ID, room.ID))

	require.Empty(t, aliceSink.events)
	require.Len(t, bobSink.events, 1)
	require.Len(t, carolSink.events, 1)
	require.Equal(t, realtime.EventUserTyping, bobSink.events[0].Name)

	payload, ok := bobSink.events[0].Data.(realtime.TypingPayload)
	require.True(t, ok)
	require.Equal(t, "alice", payload.Username)

	// nothing persisted for typing
	var count int64
	require.NoError(t, f.db.Model(&models.ChatMessage{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestTypingRejectsOutsider(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	mallory := f.createUser(t, "mallory")
	room, err := f.chats.CreateRoom(alice.ID, []uint{bob.ID}, "", false)
	require.NoError(t, err)

	require.ErrorIs(t, f.coordinator.Typing(mallory.ID, room.ID), repositories.ErrNotMember)
}

func TestFriendRequestNotifiesTarget(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	bobSink := f.listen(bob.ID)

	edge, err := f.friendships.Request(alice.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, bob.ID, edge.FriendID)

	require.Len(t, bobSink.events, 1)
	require.Equal(t, realtime.EventNotification, bobSink.events[0].Name)

	var rows []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", bob.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, models.NotificationFriendRequest, rows[0].Type)

	var payload friendEventPayload
	require.NoError(t, json.Unmarshal(rows[0].Data, &payload))
	require.Equal(t, alice.ID, payload.SenderID)
	require.Equal(t, "alice", payload.SenderUsername)
}

func TestFriendRequestUnknownUsername(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")

	_, err := f.friendships.Request(alice.ID, "nobody")
	require.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestAcceptNotifiesBothSidesAndClearsPending(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendships.Request(alice.ID, "bob")
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)
	bobSink := f.listen(bob.ID)

	_, err = f.friendships.Accept(bob.ID, edge.ID)
	require.NoError(t, err)

	require.Len(t, aliceSink.events, 1)
	require.Len(t, bobSink.events, 1)

	// the pending friend_request row is gone; each side holds one accepted
	// notification
	var bobRows []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", bob.ID).Find(&bobRows).Error)
	require.Len(t, bobRows, 1)
	require.Equal(t, models.NotificationFriendRequestAccepted, bobRows[0].Type)

	var aliceRows []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", alice.ID).Find(&aliceRows).Error)
	require.Len(t, aliceRows, 1)
	require.Equal(t, models.NotificationFriendRequestAccepted, aliceRows[0].Type)
}

func TestRejectIsSilentByDefault(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendships.Request(alice.ID, "bob")
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)

	require.NoError(t, f.friendships.Reject(bob.ID, edge.ID))
	require.Empty(t, aliceSink.events)

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestRejectNotifiesWhenEnabled(t *testing.T) {
	f := bootstrap(t, true)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendships.Request(alice.ID, "bob")
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)

	require.NoError(t, f.friendships.Reject(bob.ID, edge.ID))
	require.Len(t, aliceSink.events, 1)

	var rows []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", alice.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, models.NotificationFriendRequestRejected, rows[0].Type)
}

func TestNotifierMarkAllReadEmitsSignal(t *testing.T) {
	f := bootstrap(t, false)
	alice := f.createUser(t, "alice")

	_, err := f.notifier.Notify(alice.ID, models.NotificationMessage, map[string]string{"room": "1"})
	require.NoError(t, err)

	aliceSink := f.listen(alice.ID)
	require.NoError(t, f.notifier.MarkAllRead(alice.ID))

	require.Len(t, aliceSink.events, 1)
	require.Equal(t, realtime.EventMarkAllRead, aliceSink.events[0].Name)

	var unviewed int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND viewed = ?", alice.ID, false).
		Count(&unviewed).Error)
	require.Zero(t, unviewed)
}
