package service

import (
	"context"
	"log"
	"strings"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
	"github.com/mohamedskoko5454-creator/snake/game/session"
)

// gameServiceImpl implements the GameService interface on top of the room
// registry.
type gameServiceImpl struct {
	registry *session.Manager
}

// NewGameService creates a new game service instance.
func NewGameService(registry *session.Manager) GameService {
	return &gameServiceImpl{registry: registry}
}

// ListRooms returns every room a client could join.
func (s *gameServiceImpl) ListRooms(ctx context.Context) []session.RoomInfo {
	return s.registry.ListJoinable()
}

// JoinRandom puts the player into the first room with free capacity, creating
// one when none qualifies.
func (s *gameServiceImpl) JoinRandom(ctx context.Context, playerID, name string, skin engine.Skin) (*JoinResult, error) {
	room := s.registry.FindOrCreateForRandomJoin()
	res, ok := s.enter(room, playerID, name, skin)
	if !ok {
		// Lost the race for the last free slot; fall back to a fresh room.
		room = s.registry.Create()
		res, _ = s.enter(room, playerID, name, skin)
	}
	log.Printf("%s joined random room: %s", res.Self.Name, room.Code)
	return res, nil
}

// CreateRoom always creates a fresh room and puts the player into it.
func (s *gameServiceImpl) CreateRoom(ctx context.Context, playerID, name string, skin engine.Skin) (*JoinResult, error) {
	room := s.registry.Create()
	res, _ := s.enter(room, playerID, name, skin)
	log.Printf("Room created: %s by %s", room.Code, res.Self.Name)
	return res, nil
}

// JoinRoom joins a specific room by code. The code is uppercased before the
// lookup. Missing rooms and full rooms are the only client-visible errors.
func (s *gameServiceImpl) JoinRoom(ctx context.Context, playerID, roomCode, name string, skin engine.Skin) (*JoinResult, error) {
	code := strings.ToUpper(roomCode)

	room, ok := s.registry.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	res, ok := s.enter(room, playerID, name, skin)
	if !ok {
		return nil, ErrRoomFull
	}
	log.Printf("%s joined room: %s", res.Self.Name, code)
	return res, nil
}

// Leave removes the player and reaps the room when it became empty. Unknown
// rooms and players are no-ops.
func (s *gameServiceImpl) Leave(ctx context.Context, roomCode, playerID string) LeaveResult {
	room, ok := s.registry.Get(roomCode)
	if !ok {
		return LeaveResult{}
	}

	_, removed := room.Game.Player(playerID)
	room.Game.RemovePlayer(playerID)

	deleted := s.registry.ReapIfEmpty(roomCode)
	if deleted {
		log.Printf("Room %s deleted (empty)", roomCode)
	}
	return LeaveResult{Removed: removed, RoomDeleted: deleted}
}

// UpdatePlayer applies a client movement frame; false means the player is
// not in that room (benign race, dropped).
func (s *gameServiceImpl) UpdatePlayer(ctx context.Context, roomCode, playerID string, upd engine.PlayerUpdate) bool {
	room, ok := s.registry.Get(roomCode)
	if !ok {
		return false
	}
	return room.Game.UpdatePlayer(playerID, upd)
}

// EatFood applies a food consumption claim. The second return is false when
// the room, player, or food index is unknown.
func (s *gameServiceImpl) EatFood(ctx context.Context, roomCode, playerID string, foodIndex int) (*engine.EatResult, bool) {
	room, ok := s.registry.Get(roomCode)
	if !ok {
		return nil, false
	}
	res := room.Game.EatFood(playerID, foodIndex)
	if res == nil {
		return nil, false
	}
	return res, true
}

// PlayerDied marks the player dead and drops body food.
func (s *gameServiceImpl) PlayerDied(ctx context.Context, roomCode, playerID string) bool {
	room, ok := s.registry.Get(roomCode)
	if !ok {
		return false
	}
	return room.Game.PlayerDied(playerID)
}

// Respawn resets a dead player and returns its fresh state for broadcast.
func (s *gameServiceImpl) Respawn(ctx context.Context, roomCode, playerID string) (engine.Player, bool) {
	room, ok := s.registry.Get(roomCode)
	if !ok {
		return engine.Player{}, false
	}
	return room.Game.Respawn(playerID)
}

// Status returns the process-level probe payload.
func (s *gameServiceImpl) Status(ctx context.Context) Status {
	return Status{
		Status:           "ok",
		RoomCount:        s.registry.Count(),
		TotalPlayerCount: s.registry.TotalPlayers(),
	}
}

// RoomState returns an inspection snapshot of one room.
func (s *gameServiceImpl) RoomState(ctx context.Context, roomCode string) (*RoomState, error) {
	room, ok := s.registry.Get(strings.ToUpper(roomCode))
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &RoomState{
		Code:        room.Game.RoomCode(),
		CreatedAt:   room.Game.CreatedAt(),
		PlayerCount: room.Game.PlayerCount(),
		FoodCount:   room.Game.FoodLen(),
		Players:     room.Game.PlayersSnapshot(),
	}, nil
}

// enter admits the player to the room's game and assembles the full-state
// sync payload. The admission is atomic against the registry capacity, so two
// clients racing for one free slot cannot both get in; false means the room
// filled up first.
func (s *gameServiceImpl) enter(room *session.Room, playerID, name string, skin engine.Skin) (*JoinResult, bool) {
	if !room.Game.TryAddPlayer(playerID, name, skin, s.registry.Capacity()) {
		return nil, false
	}
	self, _ := room.Game.Player(playerID)

	return &JoinResult{
		RoomCode: room.Code,
		PlayerID: playerID,
		Players:  room.Game.PlayersSnapshot(),
		Food:     room.Game.FoodSnapshot(),
		Self:     self,
	}, true
}
