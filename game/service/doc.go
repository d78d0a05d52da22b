// Package service provides the orchestration layer for the snake arena
// server.
//
// The service package sits between the transports (WebSocket, HTTP, MCP) and
// the room registry, resolving room codes to games and applying the game's
// state transitions. It owns the client-visible error taxonomy: only
// room-not-found and room-full surface as errors to the requester; unknown
// players, stale food indices, and missing room context are benign races and
// become silent no-ops.
//
// Usage:
//
//	registry := session.NewManager(nil, 0)
//	svc := service.NewGameService(registry)
//
//	res, err := svc.JoinRoom(ctx, clientID, "AB12CD", "alice", skin)
//	if errors.Is(err, service.ErrRoomFull) {
//		// tell only this client
//	}
//
// The service never validates client-reported positions or scores; clients
// are the source of truth for their own movement.
package service
