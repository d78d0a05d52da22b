package service

import (
	"context"
	"errors"
	"time"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
	"github.com/mohamedskoko5454-creator/snake/game/session"
)

// Client-visible rejections. Everything else the service absorbs as a
// silent no-op.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// GameService defines every operation the transports invoke on behalf of a
// connected client.
type GameService interface {
	// Room discovery and membership
	ListRooms(ctx context.Context) []session.RoomInfo
	JoinRandom(ctx context.Context, playerID, name string, skin engine.Skin) (*JoinResult, error)
	CreateRoom(ctx context.Context, playerID, name string, skin engine.Skin) (*JoinResult, error)
	JoinRoom(ctx context.Context, playerID, roomCode, name string, skin engine.Skin) (*JoinResult, error)
	Leave(ctx context.Context, roomCode, playerID string) LeaveResult

	// In-room actions
	UpdatePlayer(ctx context.Context, roomCode, playerID string, upd engine.PlayerUpdate) bool
	EatFood(ctx context.Context, roomCode, playerID string, foodIndex int) (*engine.EatResult, bool)
	PlayerDied(ctx context.Context, roomCode, playerID string) bool
	Respawn(ctx context.Context, roomCode, playerID string) (engine.Player, bool)

	// Process status
	Status(ctx context.Context) Status
	RoomState(ctx context.Context, roomCode string) (*RoomState, error)
}

// JoinResult is the full-state sync payload sent to a client that entered a
// room, plus the joiner's own record for the peer broadcast.
type JoinResult struct {
	RoomCode string                   `json:"roomCode"`
	PlayerID string                   `json:"playerId"`
	Players  map[string]engine.Player `json:"players"`
	Food     []engine.Food            `json:"food"`

	// Self is the joining player's record, used for the playerJoined
	// broadcast to peers. Not part of the roomJoined payload.
	Self engine.Player `json:"-"`
}

// LeaveResult reports what a departure changed.
type LeaveResult struct {
	Removed     bool
	RoomDeleted bool
}

// Status is the process-level health probe payload.
type Status struct {
	Status           string `json:"status"`
	RoomCount        int    `json:"roomCount"`
	TotalPlayerCount int    `json:"totalPlayerCount"`
}

// RoomState is a read-only inspection snapshot of one room.
type RoomState struct {
	Code        string                   `json:"code"`
	CreatedAt   time.Time                `json:"createdAt"`
	PlayerCount int                      `json:"playerCount"`
	FoodCount   int                      `json:"foodCount"`
	Players     map[string]engine.Player `json:"players"`
}
