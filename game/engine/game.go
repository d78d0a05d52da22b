package engine

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Death drops are capped at this many gold items regardless of body length.
const maxDeathDrops = 20

// Game is one room's authoritative state: players keyed by connection ID and
// the room's food list. All transitions go through its methods, which are
// safe for concurrent use.
type Game struct {
	mu        sync.Mutex
	roomCode  string
	players   map[string]*Player
	food      []Food
	gen       *Generator
	rng       *rand.Rand
	mapSize   float64
	createdAt time.Time
}

// NewGame creates a room with a freshly generated food list. A nil config
// uses the default arena tuning.
func NewGame(roomCode string, cfg *Config) *Game {
	return NewGameWithRand(roomCode, cfg, nil)
}

// NewGameWithRand creates a room using the provided random source. A nil rng
// gets a time-seeded source; tests pass a fixed seed for reproducibility.
func NewGameWithRand(roomCode string, cfg *Config, rng *rand.Rand) *Game {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		roomCode:  roomCode,
		players:   make(map[string]*Player),
		gen:       NewGenerator(cfg.MapSize, rng),
		rng:       rng,
		mapSize:   cfg.MapSize,
		createdAt: time.Now(),
	}
	g.food = g.gen.Generate(cfg.FoodCount)
	return g
}

// RoomCode returns the room's shareable code.
func (g *Game) RoomCode() string {
	return g.roomCode
}

// CreatedAt returns when the room was created.
func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// AddPlayer inserts a new player at a random spawn with no capacity limit.
// An empty name falls back to "Player" and an empty skin to the default.
// Adding an ID that is already present overwrites the existing record (last
// write wins).
func (g *Game) AddPlayer(id, name string, skin Skin) {
	g.TryAddPlayer(id, name, skin, 0)
}

// TryAddPlayer inserts a new player unless the room already holds capacity
// players. The check and the insert happen under one lock, so concurrent
// joins cannot push the room past the limit. A capacity of zero or less means
// unlimited. Re-adding an ID that is already present overwrites the existing
// record and never counts against capacity.
func (g *Game) TryAddPlayer(id, name string, skin Skin, capacity int) bool {
	if name == "" {
		name = "Player"
	}
	if len(skin.Colors) == 0 {
		skin = DefaultSkin()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if capacity > 0 && len(g.players) >= capacity {
		if _, ok := g.players[id]; !ok {
			return false
		}
	}

	g.players[id] = &Player{
		Name:     name,
		Skin:     skin,
		X:        g.spawnCoord(),
		Y:        g.spawnCoord(),
		Angle:    g.rng.Float64() * 2 * math.Pi,
		Segments: []Vec{},
		Score:    0,
		Kills:    0,
		State:    Alive,
	}
	return true
}

// RemovePlayer deletes a player; no-op if the ID is unknown.
func (g *Game) RemovePlayer(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.players, id)
}

// UpdatePlayer overwrites a player's reported position, angle, segments, and
// boost flag. The stored score is replaced only when the incoming score is
// non-zero; a zero score is treated as an unset field and preserved.
// Unknown IDs are silently dropped (a disconnect racing an in-flight frame).
func (g *Game) UpdatePlayer(id string, upd PlayerUpdate) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok {
		return false
	}

	p.X = upd.X
	p.Y = upd.Y
	p.Angle = upd.Angle
	if upd.Segments == nil {
		p.Segments = []Vec{}
	} else {
		p.Segments = upd.Segments
	}
	if upd.Score != 0 {
		p.Score = upd.Score
	}
	p.IsBoosting = upd.IsBoosting
	return true
}

// EatFood credits the food's value to the player and replaces the slot with a
// freshly generated item, keeping the list length unchanged. It returns nil
// for an out-of-range index or unknown player. There is no check that the
// player is anywhere near the food.
func (g *Game) EatFood(playerID string, foodIndex int) *EatResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if foodIndex < 0 || foodIndex >= len(g.food) {
		return nil
	}
	p, ok := g.players[playerID]
	if !ok {
		return nil
	}

	p.Score += g.food[foodIndex].Value

	fresh := g.gen.Create()
	g.food[foodIndex] = fresh

	return &EatResult{
		NewFood: IndexedFood{Index: foodIndex, Food: fresh},
		Score:   p.Score,
	}
}

// PlayerDied marks the player dead and drops gold food along its body: one
// item per four segments, capped at 20, at the coordinates of segments
// 0, 4, 8, and so on. The drops append to the food list. It returns false
// without side effects for an unknown or already dead player.
func (g *Game) PlayerDied(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok || p.State == Dead {
		return false
	}
	p.State = Dead

	drops := len(p.Segments) / 4
	if drops > maxDeathDrops {
		drops = maxDeathDrops
	}
	for i := 0; i < drops; i++ {
		seg := p.Segments[i*4]
		g.food = append(g.food, Food{
			X:     seg.X,
			Y:     seg.Y,
			Value: 10,
			Size:  12,
			Color: "#ffd700",
			Kind:  FoodGold,
		})
	}
	return true
}

// Respawn resets a dead player to a fresh spawn with an empty body and zero
// score, and marks it alive. It returns the respawned player's state. The
// call is a no-op for an unknown or still-alive player.
func (g *Game) Respawn(id string) (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok || p.State == Alive {
		return Player{}, false
	}

	p.X = g.spawnCoord()
	p.Y = g.spawnCoord()
	p.Angle = g.rng.Float64() * 2 * math.Pi
	p.Segments = []Vec{}
	p.Score = 0
	p.State = Alive
	return *p, true
}

// Player returns a copy of the player record for the given ID.
func (g *Game) Player(id string) (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// PlayersSnapshot returns a copy of every player record keyed by connection
// ID, used for full-state sync when a client joins.
func (g *Game) PlayersSnapshot() map[string]Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := make(map[string]Player, len(g.players))
	for id, p := range g.players {
		snapshot[id] = *p
	}
	return snapshot
}

// FoodSnapshot returns a copy of the room's current food list.
func (g *Game) FoodSnapshot() []Food {
	g.mu.Lock()
	defer g.mu.Unlock()

	food := make([]Food, len(g.food))
	copy(food, g.food)
	return food
}

// PlayerCount returns the number of players currently in the room.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// FoodLen returns the current length of the food list. It starts at the
// configured food count and grows with death drops.
func (g *Game) FoodLen() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.food)
}

// spawnCoord draws one spawn axis value, uniform over the inner half of the
// arena. Caller holds the lock.
func (g *Game) spawnCoord() float64 {
	return (g.rng.Float64() - 0.5) * g.mapSize
}
