// Package api provides the HTTP surface of the relay server.
//
// The api package implements:
//   - REST endpoints for server status and room discovery
//   - WebSocket upgrade handling (delegated to transport/websocket)
//   - Static file serving for the browser client
//
// Endpoints:
//
//	GET /status     - Server health plus room and player counts
//	GET /api/rooms  - Joinable rooms (code, count, max)
//	GET /ws         - WebSocket upgrade, all game traffic
//	GET /           - Static client files
//
// All REST endpoints return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
