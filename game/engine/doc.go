// Package engine provides the core game logic for the snake arena server.
//
// The engine package implements:
//   - Weighted random food generation over the arena
//   - Per-room game state: players, food, and score
//   - State transitions for join, movement, eating, death, and respawn
//
// Core Types:
//
// Game holds one room's authoritative state and applies every transition.
// Generator produces food items from a weighted category table. Player is
// the per-connection record broadcast to room peers.
//
// Authority Model:
//
// The server trusts client-reported positions, angles, and body segments and
// relays them to peers without validation. There is no collision detection
// and no proximity check when food is eaten. This mirrors the game's
// client-authoritative design and is intentional.
//
// Usage:
//
//	game := engine.NewGame("ABC123", nil)
//	game.AddPlayer(id, "Player", engine.DefaultSkin())
//
//	if res := game.EatFood(id, 42); res != nil {
//		// broadcast res.NewFood and res.Score to the room
//	}
//
// Concurrency:
//
// Every Game guards its state with an internal mutex, so each operation is
// applied to completion before the next one on the same room. Games share no
// state with each other.
package engine
