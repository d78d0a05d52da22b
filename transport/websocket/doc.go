// Package websocket provides the WebSocket transport for the snake arena
// server.
//
// The package uses a hub-and-spoke model: a central Hub tracks which clients
// belong to which room, and each connection gets dedicated read and write
// goroutines. The Router dispatches inbound events to the game service and
// fans the results out to room members.
//
// Message Protocol:
//
// Every frame is a JSON envelope:
//
//	{"event": "eatFood", "data": {"foodIndex": 42}}
//
// Inbound events: getRooms, joinRandom, createRoom, joinRoom, playerUpdate,
// eatFood, playerDied, respawn, chatMessage, ping.
//
// Outbound events: roomList, roomJoined, roomCreated, playerJoined,
// playerMoved, foodEaten, playerDeath, playerRespawned, playerLeft,
// chatMessage, pong, error.
//
// Routing Semantics:
//
// playerMoved goes to room peers excluding the sender; foodEaten,
// playerDeath, playerRespawned, and chatMessage go to the whole room
// including the sender; roomJoined, roomCreated, roomList, pong, and error
// go to the sender only.
//
// Connection Lifecycle:
//
// A client is assigned a fresh connection ID on upgrade and joins at most
// one room at a time. Disconnect removes the player from its room,
// broadcasts playerLeft to the remaining peers, and deletes the room if it
// became empty. There is no reconnect window; a returning client is
// brand-new.
package websocket
