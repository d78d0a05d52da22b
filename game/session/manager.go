package session

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
)

// DefaultCapacity is the player limit per room.
const DefaultCapacity = 20

const (
	codeLength   = 6
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Room pairs a shareable code with its game state.
type Room struct {
	Code      string
	Game      *engine.Game
	CreatedAt time.Time
}

// RoomInfo is the joinable-room listing sent to clients.
type RoomInfo struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
	Max   int    `json:"max"`
}

// Manager is the room registry: it owns every room and maps codes to games.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	cfg      *engine.Config
	capacity int
}

// NewManager creates an empty registry. A nil or invalid config uses the
// default arena tuning; a non-positive capacity uses DefaultCapacity.
func NewManager(cfg *engine.Config, capacity int) *Manager {
	if engine.ValidateConfig(cfg) != nil {
		cfg = engine.DefaultConfig()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		rooms:    make(map[string]*Room),
		cfg:      cfg,
		capacity: capacity,
	}
}

// Create makes a new room under a freshly generated code and registers it.
// Codes are not checked against existing rooms; a collision replaces the
// previous entry.
func (m *Manager) Create() *Room {
	code := generateRoomCode()
	game := engine.NewGame(code, m.cfg)
	room := &Room{
		Code:      code,
		Game:      game,
		CreatedAt: game.CreatedAt(),
	}

	m.mu.Lock()
	m.rooms[code] = room
	m.mu.Unlock()

	return room
}

// Get retrieves a room by code.
func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[code]
	return room, ok
}

// Delete removes a room from the registry; no-op if the code is unknown.
func (m *Manager) Delete(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// FindOrCreateForRandomJoin returns a room with free capacity, creating a
// fresh one when every existing room is full.
func (m *Manager) FindOrCreateForRandomJoin() *Room {
	m.mu.RLock()
	for _, room := range m.rooms {
		if room.Game.PlayerCount() < m.capacity {
			m.mu.RUnlock()
			return room
		}
	}
	m.mu.RUnlock()

	return m.Create()
}

// ListJoinable returns every room with fewer players than the capacity.
func (m *Manager) ListJoinable() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]RoomInfo, 0, len(m.rooms))
	for code, room := range m.rooms {
		count := room.Game.PlayerCount()
		if count < m.capacity {
			list = append(list, RoomInfo{Code: code, Count: count, Max: m.capacity})
		}
	}
	return list
}

// Capacity returns the per-room player limit.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Count returns the number of registered rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// TotalPlayers returns the player count summed over all rooms.
func (m *Manager) TotalPlayers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, room := range m.rooms {
		total += room.Game.PlayerCount()
	}
	return total
}

// ReapIfEmpty deletes the room when its player count has reached zero.
// It reports whether the room was deleted.
func (m *Manager) ReapIfEmpty(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok || room.Game.PlayerCount() > 0 {
		return false
	}
	delete(m.rooms, code)
	return true
}

// generateRoomCode returns a random 6-character uppercase base-36 code.
func generateRoomCode() string {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}
