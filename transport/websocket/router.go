package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mohamedskoko5454-creator/snake/game/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The browser client is served from arbitrary origins in
		// development and behind tunnels.
		return true
	},
}

// Router resolves inbound client events to game service operations and fans
// the results out through the hub.
type Router struct {
	service service.GameService
	hub     *Hub
}

// NewRouter creates a router over the given service and hub.
func NewRouter(svc service.GameService, hub *Hub) *Router {
	return &Router{service: svc, hub: hub}
}

// Hub exposes the router's connection hub.
func (r *Router) Hub() *Hub {
	return r.hub
}

// ServeWS upgrades an HTTP request and starts the client's pumps. Each
// connection gets a fresh opaque player ID.
func (r *Router) ServeWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    r.hub,
		router: r,
		conn:   conn,
		send:   make(chan []byte, 256),
		id:     uuid.NewString(),
		name:   "Player",
	}

	log.Printf("Player connected: %s", client.id)

	go client.writePump()
	go client.readPump()
}

// dispatch routes one inbound envelope. Unknown players, stale indices, and
// events sent outside a room are dropped without feedback; only room lookup
// failures on joinRoom produce an error event.
func (r *Router) dispatch(c *Client, env Envelope) {
	ctx := context.Background()

	switch env.Event {
	case EventGetRooms:
		c.Send(EventRoomList, r.service.ListRooms(ctx))

	case EventJoinRandom:
		var req JoinRequest
		decode(env.Data, &req)
		res, err := r.service.JoinRandom(ctx, c.ID(), req.Name, req.Skin)
		if err != nil {
			c.Send(EventError, ErrorMessage{Message: err.Error()})
			return
		}
		r.enterRoom(c, res, EventRoomJoined, true)

	case EventCreateRoom:
		var req JoinRequest
		decode(env.Data, &req)
		res, err := r.service.CreateRoom(ctx, c.ID(), req.Name, req.Skin)
		if err != nil {
			c.Send(EventError, ErrorMessage{Message: err.Error()})
			return
		}
		// A fresh room has no peers to notify.
		r.enterRoom(c, res, EventRoomCreated, false)

	case EventJoinRoom:
		var req JoinRequest
		decode(env.Data, &req)
		res, err := r.service.JoinRoom(ctx, c.ID(), req.RoomCode, req.Name, req.Skin)
		if err != nil {
			c.Send(EventError, ErrorMessage{Message: joinErrorText(err)})
			return
		}
		r.enterRoom(c, res, EventRoomJoined, true)

	case EventPlayerUpdate:
		room := c.Room()
		if room == "" {
			return
		}
		var upd PlayerMoved
		decode(env.Data, &upd.PlayerUpdate)
		upd.ID = c.ID()
		// Pure relay: the stored record update may be dropped for a
		// racing disconnect, the echo to peers happens regardless.
		r.service.UpdatePlayer(ctx, room, c.ID(), upd.PlayerUpdate)
		r.hub.BroadcastToRoomExcept(room, c, EventPlayerMoved, upd)

	case EventEatFood:
		room := c.Room()
		if room == "" {
			return
		}
		var req EatRequest
		decode(env.Data, &req)
		res, ok := r.service.EatFood(ctx, room, c.ID(), req.FoodIndex)
		if !ok {
			return
		}
		r.hub.BroadcastToRoom(room, EventFoodEaten, FoodEaten{
			PlayerID:  c.ID(),
			FoodIndex: req.FoodIndex,
			NewFood:   res.NewFood,
			Score:     res.Score,
		})

	case EventPlayerDied:
		room := c.Room()
		if room == "" {
			return
		}
		var report DeathReport
		decode(env.Data, &report)
		r.service.PlayerDied(ctx, room, c.ID())
		r.hub.BroadcastToRoom(room, EventPlayerDeath, PlayerDeath{
			ID:       c.ID(),
			KilledBy: report.KilledBy,
		})

	case EventRespawn:
		room := c.Room()
		if room == "" {
			return
		}
		player, ok := r.service.Respawn(ctx, room, c.ID())
		if !ok {
			return
		}
		r.hub.BroadcastToRoom(room, EventPlayerRespawned, PlayerRespawned{
			ID:     c.ID(),
			Player: player,
		})

	case EventChatMessage:
		room := c.Room()
		if room == "" {
			return
		}
		var message string
		decode(env.Data, &message)
		r.hub.BroadcastToRoom(room, EventChatMessage, ChatMessage{
			ID:      c.ID(),
			Name:    c.Name(),
			Message: truncate(message, maxChatLength),
		})

	case EventPing:
		c.Send(EventPong, nil)

	default:
		log.Printf("Unknown event %q from %s", env.Event, c.ID())
	}
}

// enterRoom completes a successful join: moves the client into the hub room,
// sends the full-state sync, and optionally announces the joiner to peers.
func (r *Router) enterRoom(c *Client, res *service.JoinResult, replyEvent string, announce bool) {
	c.setName(res.Self.Name)
	r.hub.JoinRoom(c, res.RoomCode)

	c.Send(replyEvent, res)

	if announce {
		r.hub.BroadcastToRoomExcept(res.RoomCode, c, EventPlayerJoined, PlayerJoined{
			ID:     c.ID(),
			Player: res.Self,
		})
	}
}

// handleDisconnect tears down a closed connection: the player is removed
// from its room, peers learn via playerLeft, and an emptied room is deleted.
// There is no grace period and no resume.
func (r *Router) handleDisconnect(c *Client) {
	room := c.Room()
	r.hub.LeaveRoom(c)

	if room != "" {
		lr := r.service.Leave(context.Background(), room, c.ID())
		if lr.Removed {
			r.hub.BroadcastToRoom(room, EventPlayerLeft, PlayerLeft{ID: c.ID()})
		}
	}

	log.Printf("Player disconnected: %s", c.ID())
}

// joinErrorText maps service errors to the messages the client shows.
func joinErrorText(err error) string {
	switch err {
	case service.ErrRoomNotFound:
		return "Room not found!"
	case service.ErrRoomFull:
		return "Room is full!"
	}
	return err.Error()
}

// decode unmarshals an event payload; malformed or absent fields keep their
// zero values and fall back to safe defaults downstream.
func decode(data json.RawMessage, v interface{}) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Malformed event payload: %v", err)
	}
}

// truncate limits a chat message to max characters.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
