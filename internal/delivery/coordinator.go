package delivery

import (
	"log"

	"github.com/PlayHaven/PlayHaven/internal/realtime"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
)

// Coordinator orchestrates chat delivery: it is the only layer that touches
// both the chat store and the presence hub. Persistence always happens
// before any fan-out, so a crash between the two loses pushes, never data.
type Coordinator struct {
	chats    repositories.ChatRepository
	users    repositories.UserRepository
	hub      *realtime.Hub
	notifier *Notifier
}

func NewCoordinator(chats repositories.ChatRepository, users repositories.UserRepository, hub *realtime.Hub, notifier *Notifier) *Coordinator {
	return &Coordinator{chats: chats, users: users, hub: hub, notifier: notifier}
}

// SendMessage appends the message to the room's log and fans it out to every
// member, sender included. The append is transactional; fan-out failures
// after commit are logged and dropped because the history endpoint will
// deliver the message on next fetch.
func (c *Coordinator) SendMessage(senderID, roomID uint, content string) (*realtime.ChatMessagePayload, error) {
	message, err := c.chats.AppendMessage(roomID, senderID, content)
	if err != nil {
		return nil, err
	}

	sender, err := c.users.GetUserByID(senderID)
	if err != nil {
		log.Printf("delivery: message %d persisted but sender %d lookup failed: %v", message.ID, senderID, err)
		return &realtime.ChatMessagePayload{
			MessageID: message.ID,
			RoomID:    message.RoomID,
			SenderID:  message.SenderID,
			Content:   message.Content,
			Timestamp: message.CreatedAt,
		}, nil
	}

	payload := realtime.ChatMessagePayload{
		MessageID:      message.ID,
		RoomID:         message.RoomID,
		SenderID:       message.SenderID,
		SenderUsername: sender.Username,
		Content:        message.Content,
		Timestamp:      message.CreatedAt,
	}

	members, err := c.chats.Participants(roomID)
	if err != nil {
		log.Printf("delivery: message %d persisted but fan-out skipped: %v", message.ID, err)
		return &payload, nil
	}
	ev := realtime.Event{Name: realtime.EventChatMessage, Data: payload}
	for _, member := range members {
		c.hub.Publish(member.ID, ev)
	}
	return &payload, nil
}

// Typing relays a typing signal to the other members of the room. Nothing is
// stored; an offline member simply never hears about it.
func (c *Coordinator) Typing(userID, roomID uint) error {
	member, err := c.chats.IsMember(userID, roomID)
	if err != nil {
		return err
	}
	if !member {
		return repositories.ErrNotMember
	}

	user, err := c.users.GetUserByID(userID)
	if err != nil {
		return err
	}

	members, err := c.chats.Participants(roomID)
	if err != nil {
		return err
	}
	ev := realtime.Event{Name: realtime.EventUserTyping, Data: realtime.TypingPayload{
		RoomID:   roomID,
		UserID:   userID,
		Username: user.Username,
	}}
	for _, m := range members {
		if m.ID == userID {
			continue
		}
		c.hub.Publish(m.ID, ev)
	}
	return nil
}
