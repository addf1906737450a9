package realtime

import (
	"errors"
	"log"
	"sync"
)

// ErrSlowConsumer is returned by a Subscriber whose send buffer is full. The
// hub drops the event for that subscriber; the persisted log is the fallback.
var ErrSlowConsumer = errors.New("subscriber send buffer full")

// Subscriber is one live delivery handle for a user. Send must not block.
type Subscriber interface {
	Send(ev Event) error
}

// Bridge forwards published events to other delivery nodes via an external
// broker. The single-node deployment runs without one; the interface is the
// seam for horizontal fan-out.
type Bridge interface {
	Forward(userID uint, ev Event) error
}

// Hub is the presence channel registry: user id -> the set of currently-open
// delivery handles, keyed by connection id so one user's tabs are independent
// subscribers. Publish is best-effort; when a user has no subscribers the
// event is simply dropped.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint]map[string]Subscriber
	bridge      Bridge
}

// NewHub creates an empty registry
func NewHub() *Hub {
	return &Hub{subscribers: make(map[uint]map[string]Subscriber)}
}

// SetBridge installs a cross-node forwarder. Optional.
func (h *Hub) SetBridge(b Bridge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge = b
}

// Subscribe registers a delivery handle under the user's channel
func (h *Hub) Subscribe(userID uint, connID string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.subscribers[userID]
	if !ok {
		conns = make(map[string]Subscriber)
		h.subscribers[userID] = conns
	}
	conns[connID] = s
}

// Unsubscribe removes a delivery handle; the user's entry is dropped when the
// last connection goes away.
func (h *Hub) Unsubscribe(userID uint, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.subscribers[userID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(h.subscribers, userID)
	}
}

// Publish delivers an event to every open connection of the user. Failures
// (no subscriber, full buffer) are logged and swallowed; the durable write
// has already happened by the time anything is published.
func (h *Hub) Publish(userID uint, ev Event) {
	h.mu.RLock()
	bridge := h.bridge
	conns := make([]Subscriber, 0, len(h.subscribers[userID]))
	for _, s := range h.subscribers[userID] {
		conns = append(conns, s)
	}
	h.mu.RUnlock()

	for _, s := range conns {
		if err := s.Send(ev); err != nil {
			log.Printf("realtime: dropping %s event for user %d: %v", ev.Name, userID, err)
		}
	}

	if bridge != nil {
		if err := bridge.Forward(userID, ev); err != nil {
			log.Printf("realtime: bridge forward of %s for user %d failed: %v", ev.Name, userID, err)
		}
	}
}

// SubscriberCount reports how many connections a user currently has open
func (h *Hub) SubscriberCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
