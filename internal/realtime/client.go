package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// InboundFunc handles client-originated events (only user_typing today)
type InboundFunc func(userID uint, ev Event)

// Client binds one websocket connection to a user's presence channel. It is
// registered with the hub on Run and unregistered when either pump exits.
type Client struct {
	ID      string
	UserID  uint
	hub     *Hub
	conn    *websocket.Conn
	send    chan Event
	inbound InboundFunc
}

// NewClient wraps an upgraded connection. inbound may be nil for
// receive-only subscribers.
func NewClient(hub *Hub, conn *websocket.Conn, userID uint, inbound InboundFunc) *Client {
	return &Client{
		ID:      uuid.NewString(),
		UserID:  userID,
		hub:     hub,
		conn:    conn,
		send:    make(chan Event, sendBufferSize),
		inbound: inbound,
	}
}

// Send queues an event for the write pump. Never blocks: a full buffer means
// the reader is too slow and the event is dropped.
func (c *Client) Send(ev Event) error {
	select {
	case c.send <- ev:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Run subscribes the client and blocks pumping until the connection dies
func (c *Client) Run() {
	c.hub.Subscribe(c.UserID, c.ID, c)
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.UserID, c.ID)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: connection %s read error: %v", c.ID, err)
			}
			return
		}
		if c.inbound == nil {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("realtime: connection %s sent malformed event: %v", c.ID, err)
			continue
		}
		c.inbound(c.UserID, ev)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
