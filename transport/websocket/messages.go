package websocket

import (
	"encoding/json"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
)

// Inbound event names.
const (
	EventGetRooms     = "getRooms"
	EventJoinRandom   = "joinRandom"
	EventCreateRoom   = "createRoom"
	EventJoinRoom     = "joinRoom"
	EventPlayerUpdate = "playerUpdate"
	EventEatFood      = "eatFood"
	EventPlayerDied   = "playerDied"
	EventRespawn      = "respawn"
	EventChatMessage  = "chatMessage"
	EventPing         = "ping"
)

// Outbound event names.
const (
	EventRoomList        = "roomList"
	EventRoomJoined      = "roomJoined"
	EventRoomCreated     = "roomCreated"
	EventPlayerJoined    = "playerJoined"
	EventPlayerMoved     = "playerMoved"
	EventFoodEaten       = "foodEaten"
	EventPlayerDeath     = "playerDeath"
	EventPlayerRespawned = "playerRespawned"
	EventPlayerLeft      = "playerLeft"
	EventPong            = "pong"
	EventError           = "error"
)

// Chat messages are truncated to this many characters before broadcast.
const maxChatLength = 100

// Envelope is the JSON frame exchanged with clients.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinRequest is the payload of joinRandom, createRoom, and joinRoom.
// RoomCode is only meaningful for joinRoom.
type JoinRequest struct {
	Name     string      `json:"name"`
	Skin     engine.Skin `json:"skin"`
	RoomCode string      `json:"roomCode"`
}

// EatRequest is the payload of eatFood.
type EatRequest struct {
	FoodIndex int `json:"foodIndex"`
}

// DeathReport is the payload of playerDied.
type DeathReport struct {
	KilledBy string `json:"killedBy"`
}

// PlayerJoined announces a new room member to its peers.
type PlayerJoined struct {
	ID string `json:"id"`
	engine.Player
}

// PlayerMoved relays a movement frame to room peers.
type PlayerMoved struct {
	ID string `json:"id"`
	engine.PlayerUpdate
}

// FoodEaten announces a successful food consumption to the whole room.
type FoodEaten struct {
	PlayerID  string             `json:"playerId"`
	FoodIndex int                `json:"foodIndex"`
	NewFood   engine.IndexedFood `json:"newFood"`
	Score     int                `json:"score"`
}

// PlayerDeath announces a death to the whole room.
type PlayerDeath struct {
	ID       string `json:"id"`
	KilledBy string `json:"killedBy"`
}

// PlayerRespawned announces a respawn with the player's fresh state.
type PlayerRespawned struct {
	ID string `json:"id"`
	engine.Player
}

// PlayerLeft announces a departure to the remaining peers.
type PlayerLeft struct {
	ID string `json:"id"`
}

// ChatMessage is the broadcast form of a chat line.
type ChatMessage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ErrorMessage is sent to a single client for visible rejections.
type ErrorMessage struct {
	Message string `json:"message"`
}
