package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub tracks which connections belong to which session room and fans events
// out to them. Delivery is best-effort and at-most-once per connected member;
// a member that disconnects mid-send is dropped silently. Membership changes
// arrive from any connection's goroutine, so the tables carry their own lock
// independent of any session's serialization.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
	byID  map[string]*Client
	log   *logrus.Entry
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
		byID:  make(map[string]*Client),
		log:   logrus.WithField("component", "hub"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.Room] == nil {
		h.rooms[c.Room] = make(map[*Client]bool)
	}
	h.rooms[c.Room][c] = true
	h.byID[c.ID] = c
	h.log.WithFields(logrus.Fields{
		"room":    c.Room,
		"conn":    c.ID,
		"members": len(h.rooms[c.Room]),
	}).Info("connection joined room")
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if conns, ok := h.rooms[c.Room]; ok && conns[c] {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, c.Room)
		}
		delete(h.byID, c.ID)
		c.close()
		h.log.WithFields(logrus.Fields{"room": c.Room, "conn": c.ID}).Info("connection left room")
	}
}

// Broadcast sends one event to every connection in the room. Unknown event
// names are refused; every payload type is declared in events.go.
func (h *Hub) Broadcast(room, event string, payload interface{}) {
	if !knownEvents[event] {
		h.log.WithField("event", event).Warn("refusing to broadcast unknown event")
		return
	}
	data, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Error("marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			// Slow consumer; drop the connection rather than the room.
			h.removeLocked(c)
		}
	}
}

// EmitTo sends one event to a single connection.
func (h *Hub) EmitTo(connID, event string, payload interface{}) {
	if !knownEvents[event] {
		h.log.WithField("event", event).Warn("refusing to emit unknown event")
		return
	}
	data, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Error("marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.byID[connID]
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		h.removeLocked(c)
	}
}

// Members reports how many connections are in a room.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Shutdown closes every connection and empties the membership tables.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, conns := range h.rooms {
		for c := range conns {
			delete(h.byID, c.ID)
			c.close()
		}
		delete(h.rooms, room)
	}
}
