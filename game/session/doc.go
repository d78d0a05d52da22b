// Package session provides the room registry for the snake arena server.
//
// The session package implements:
//   - Thread-safe room storage keyed by shareable room code
//   - Random 6-character base-36 code generation
//   - Join selection: first room under capacity, or a fresh room
//   - Immediate garbage collection of empty rooms
//
// Room Codes:
//
// Codes are 6 uppercase base-36 characters generated from cryptographic
// randomness. Collisions are not checked: a newly generated code that matches
// an existing room replaces that room's registry entry. This mirrors the
// original system's behavior and is kept as a known defect rather than
// silently adding retry logic.
//
// Lifecycle:
//
// Rooms are created lazily on first join or explicitly via Create, and are
// deleted the moment their player count reaches zero after a removal.
// Nothing is persisted; the registry starts empty at process start.
package session
