package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
	"github.com/mohamedskoko5454-creator/snake/game/service"
)

// Server exposes read-only inspection tools over MCP, backed directly by the
// game service.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server over the given game service.
func NewServer(gameService service.GameService, version string) *Server {
	s := &Server{
		service: gameService,
	}

	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		"Snake Arena Relay Server",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake Arena Relay Server - MCP Interface

Read-only inspection of a running multiplayer snake relay.

AVAILABLE TOOLS:
- server_status: Room and player counts for the whole process
- list_rooms: Joinable rooms with their occupancy
- room_state: Player and food snapshot of one room

Gameplay itself happens over WebSocket; these tools only observe it.`),
	)

	// Register all tools
	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "server_status",
		Description: "Get room and player counts for the whole server",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleServerStatus)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List joinable rooms with their occupancy",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRooms)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "room_state",
		Description: "Get the player and food snapshot of one room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_code": map[string]interface{}{
					"type":        "string",
					"description": "Six-character room code",
				},
			},
			Required: []string{"room_code"},
		},
	}, s.handleRoomState)
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tool handlers

func (s *Server) handleServerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.service.Status(ctx)

	result := fmt.Sprintf("Status: %s\nRooms: %d\nPlayers: %d\n",
		st.Status, st.RoomCount, st.TotalPlayerCount)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms := s.service.ListRooms(ctx)

	if len(rooms) == 0 {
		return mcp.NewToolResultText("No joinable rooms."), nil
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Code < rooms[j].Code })

	result := fmt.Sprintf("Joinable Rooms (%d):\n\n", len(rooms))
	for _, r := range rooms {
		result += fmt.Sprintf("- %s (%d/%d players)\n", r.Code, r.Count, r.Max)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomCode, _ := args["room_code"].(string)

	state, err := s.service.RoomState(ctx, roomCode)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomState(state)), nil
}

// formatRoomState renders one room for the tool output, players sorted by
// score descending.
func formatRoomState(state *service.RoomState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Room: %s\nAge: %s\nPlayers: %d\nFood: %d\n",
		state.Code, time.Since(state.CreatedAt).Round(time.Second),
		state.PlayerCount, state.FoodCount))

	type entry struct {
		id    string
		name  string
		score int
		kills int
		dead  bool
	}
	entries := make([]entry, 0, len(state.Players))
	for id, p := range state.Players {
		entries = append(entries, entry{
			id:    id,
			name:  p.Name,
			score: p.Score,
			kills: p.Kills,
			dead:  p.State == engine.Dead,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].id < entries[j].id
	})

	if len(entries) > 0 {
		b.WriteString("\nLeaderboard:\n")
		for i, e := range entries {
			status := ""
			if e.dead {
				status = " (dead)"
			}
			b.WriteString(fmt.Sprintf("%d. %s: score %d, kills %d%s\n",
				i+1, e.name, e.score, e.kills, status))
		}
	}

	return b.String()
}
