package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks which clients belong to which room and fans out events.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// JoinRoom moves a client into a room, leaving its previous one first.
// A client belongs to at most one room at a time.
func (h *Hub) JoinRoom(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c)
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*Client]bool)
	}
	h.rooms[code][c] = true
	c.setRoom(code)
}

// LeaveRoom removes a client from its current room, if any.
func (h *Hub) LeaveRoom(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
}

// leaveLocked removes the client from its room set. Caller holds the lock.
func (h *Hub) leaveLocked(c *Client) {
	code := c.Room()
	if code == "" {
		return
	}
	if clients, ok := h.rooms[code]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, code)
		}
	}
	c.setRoom("")
}

// RoomSize returns the number of connected clients in a room.
func (h *Hub) RoomSize(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

// BroadcastToRoom sends an event to every client in the room, including the
// sender.
func (h *Hub) BroadcastToRoom(code, event string, data interface{}) {
	h.broadcast(code, nil, event, data)
}

// BroadcastToRoomExcept sends an event to every client in the room except
// one, typically the sender of the action being relayed.
func (h *Hub) BroadcastToRoomExcept(code string, except *Client, event string, data interface{}) {
	h.broadcast(code, except, event, data)
}

func (h *Hub) broadcast(code string, except *Client, event string, data interface{}) {
	frame, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("Failed to marshal %s broadcast: %v", event, err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[code]))
	for c := range h.rooms[code] {
		if c != except {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(frame)
	}
}

// marshalEnvelope encodes one outbound frame.
func marshalEnvelope(event string, data interface{}) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
