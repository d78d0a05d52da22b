// Package mcp provides a Model Context Protocol server for the relay.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Read-only tool definitions for server inspection
//   - HTTP transport via the /mcp endpoint
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - server_status: Room and player counts for the whole process
//   - list_rooms: Joinable rooms with their occupancy
//   - room_state: Player and food snapshot of one room
//
// The tool surface is intentionally read-only. Rooms are created and
// played exclusively through the WebSocket protocol; the MCP interface
// exists for monitoring and debugging, not for driving a snake.
package mcp
