package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Movement frames carry full
	// segment lists, so this is far above a chat-sized limit.
	maxMessageSize = 64 * 1024
)

// Client is one connected player: a WebSocket connection plus the room and
// name state the router tracks for it.
type Client struct {
	hub    *Hub
	router *Router
	conn   *websocket.Conn
	send   chan []byte
	id     string

	mu   sync.Mutex
	room string
	name string
}

// ID returns the opaque connection-scoped player ID.
func (c *Client) ID() string {
	return c.id
}

// Room returns the code of the room the client is currently in, or "".
func (c *Client) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Client) setRoom(code string) {
	c.mu.Lock()
	c.room = code
	c.mu.Unlock()
}

// Name returns the display name reported at join time.
func (c *Client) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Client) setName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// Send queues one event for delivery to this client.
func (c *Client) Send(event string, data interface{}) {
	frame, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("Failed to marshal %s for client %s: %v", event, c.id, err)
		return
	}
	c.enqueue(frame)
}

// enqueue drops the frame when the client's send buffer is full; a stalled
// reader must not block the room.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

// readPump pumps inbound frames from the connection to the router. It runs
// in its own goroutine per client and triggers disconnect handling on exit.
func (c *Client) readPump() {
	defer func() {
		c.router.handleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error from %s: %v", c.id, err)
			}
			break
		}
		c.router.dispatch(c, env)
	}
}

// writePump pumps outbound frames from the send channel to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
