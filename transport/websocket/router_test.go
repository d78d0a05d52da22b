package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
	"github.com/mohamedskoko5454-creator/snake/game/service"
	"github.com/mohamedskoko5454-creator/snake/game/session"
)

// newTestStack starts a real service, router, and HTTP server for
// end-to-end event tests.
func newTestStack(t *testing.T) (*Router, service.GameService, *httptest.Server) {
	t.Helper()

	cfg := &engine.Config{MapSize: engine.DefaultMapSize, FoodCount: 25}
	svc := service.NewGameService(session.NewManager(cfg, 0))
	router := NewRouter(svc, NewHub())

	server := httptest.NewServer(http.HandlerFunc(router.ServeWS))
	t.Cleanup(server.Close)
	return router, svc, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data interface{}) {
	t.Helper()

	frame, err := marshalEnvelope(event, data)
	if err != nil {
		t.Fatalf("Failed to marshal %s: %v", event, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("Failed to send %s: %v", event, err)
	}
}

// recv reads the next envelope and fails unless it carries the wanted event.
func recv(t *testing.T, conn *websocket.Conn, wantEvent string) json.RawMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("Failed to read %s: %v", wantEvent, err)
	}
	if env.Event != wantEvent {
		t.Fatalf("Expected event %s, got %s", wantEvent, env.Event)
	}
	return env.Data
}

func TestCreateAndJoinFlow(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})

	var created service.JoinResult
	if err := json.Unmarshal(recv(t, creator, EventRoomCreated), &created); err != nil {
		t.Fatalf("Failed to decode roomCreated: %v", err)
	}
	if len(created.RoomCode) != 6 {
		t.Fatalf("Expected 6-character room code, got %q", created.RoomCode)
	}
	if len(created.Players) != 1 {
		t.Errorf("Expected creator in sync payload, got %d players", len(created.Players))
	}
	if len(created.Food) != 25 {
		t.Errorf("Expected 25 food items in sync payload, got %d", len(created.Food))
	}

	joiner := dial(t, server)
	send(t, joiner, EventJoinRoom, JoinRequest{Name: "bob", RoomCode: created.RoomCode})

	var joined service.JoinResult
	if err := json.Unmarshal(recv(t, joiner, EventRoomJoined), &joined); err != nil {
		t.Fatalf("Failed to decode roomJoined: %v", err)
	}
	if len(joined.Players) != 2 {
		t.Errorf("Expected 2 players in sync payload, got %d", len(joined.Players))
	}

	// The creator hears about the joiner.
	var announced PlayerJoined
	if err := json.Unmarshal(recv(t, creator, EventPlayerJoined), &announced); err != nil {
		t.Fatalf("Failed to decode playerJoined: %v", err)
	}
	if announced.ID != joined.PlayerID {
		t.Errorf("playerJoined carries id %s, want %s", announced.ID, joined.PlayerID)
	}
	if announced.Name != "bob" {
		t.Errorf("playerJoined carries name %q, want bob", announced.Name)
	}

	// The joiner must not get its own join echoed back: the next frame it
	// sees has to be the creator's movement relay, which is enqueued after
	// any (wrongly) echoed playerJoined would have been.
	send(t, creator, EventPlayerUpdate, engine.PlayerUpdate{X: 11, Y: 22})

	var moved PlayerMoved
	if err := json.Unmarshal(recv(t, joiner, EventPlayerMoved), &moved); err != nil {
		t.Fatalf("Failed to decode playerMoved: %v", err)
	}
	if moved.ID != created.PlayerID {
		t.Errorf("playerMoved carries id %s, want creator %s", moved.ID, created.PlayerID)
	}
	if moved.X != 11 || moved.Y != 22 {
		t.Errorf("playerMoved carries (%v,%v), want (11,22)", moved.X, moved.Y)
	}
}

func TestPlayerUpdateNotEchoedToSender(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	recv(t, creator, EventRoomCreated)

	send(t, creator, EventPlayerUpdate, engine.PlayerUpdate{X: 1})

	// A ping round-trip proves the relay was not echoed: pong must be the
	// next frame the sender sees.
	send(t, creator, EventPing, nil)
	recv(t, creator, EventPong)
}

func TestEatFoodBroadcast(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	var created service.JoinResult
	json.Unmarshal(recv(t, creator, EventRoomCreated), &created)

	joiner := dial(t, server)
	send(t, joiner, EventJoinRoom, JoinRequest{Name: "bob", RoomCode: created.RoomCode})
	recv(t, joiner, EventRoomJoined)
	recv(t, creator, EventPlayerJoined)

	originalValue := created.Food[3].Value
	send(t, creator, EventEatFood, EatRequest{FoodIndex: 3})

	// Both room members get the foodEaten broadcast, sender included.
	for _, conn := range []*websocket.Conn{creator, joiner} {
		var eaten FoodEaten
		if err := json.Unmarshal(recv(t, conn, EventFoodEaten), &eaten); err != nil {
			t.Fatalf("Failed to decode foodEaten: %v", err)
		}
		if eaten.PlayerID != created.PlayerID {
			t.Errorf("foodEaten carries player %s, want %s", eaten.PlayerID, created.PlayerID)
		}
		if eaten.FoodIndex != 3 || eaten.NewFood.Index != 3 {
			t.Errorf("foodEaten carries index %d/%d, want 3", eaten.FoodIndex, eaten.NewFood.Index)
		}
		if eaten.Score != originalValue {
			t.Errorf("foodEaten carries score %d, want %d", eaten.Score, originalValue)
		}
	}

	// An out-of-range index produces no broadcast at all.
	send(t, creator, EventEatFood, EatRequest{FoodIndex: 9999})
	send(t, creator, EventPing, nil)
	recv(t, creator, EventPong)
}

func TestDeathAndRespawnBroadcasts(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	var created service.JoinResult
	json.Unmarshal(recv(t, creator, EventRoomCreated), &created)

	send(t, creator, EventPlayerDied, DeathReport{KilledBy: "bob"})

	var death PlayerDeath
	if err := json.Unmarshal(recv(t, creator, EventPlayerDeath), &death); err != nil {
		t.Fatalf("Failed to decode playerDeath: %v", err)
	}
	if death.ID != created.PlayerID || death.KilledBy != "bob" {
		t.Errorf("Unexpected playerDeath payload: %+v", death)
	}

	send(t, creator, EventRespawn, nil)

	var respawned PlayerRespawned
	if err := json.Unmarshal(recv(t, creator, EventPlayerRespawned), &respawned); err != nil {
		t.Fatalf("Failed to decode playerRespawned: %v", err)
	}
	if respawned.ID != created.PlayerID {
		t.Errorf("playerRespawned carries id %s, want %s", respawned.ID, created.PlayerID)
	}
	if respawned.Score != 0 || respawned.State != engine.Alive {
		t.Errorf("Respawned player should be alive with zero score: %+v", respawned.Player)
	}

	// A second respawn while alive is silently dropped.
	send(t, creator, EventRespawn, nil)
	send(t, creator, EventPing, nil)
	recv(t, creator, EventPong)
}

func TestChatMessageTruncation(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	recv(t, creator, EventRoomCreated)

	long := strings.Repeat("x", 250)
	send(t, creator, EventChatMessage, long)

	var chat ChatMessage
	if err := json.Unmarshal(recv(t, creator, EventChatMessage), &chat); err != nil {
		t.Fatalf("Failed to decode chatMessage: %v", err)
	}
	if len(chat.Message) != maxChatLength {
		t.Errorf("Expected %d-character message, got %d", maxChatLength, len(chat.Message))
	}
	if chat.Name != "alice" {
		t.Errorf("Chat should carry the join name, got %q", chat.Name)
	}
}

func TestJoinRoomErrors(t *testing.T) {
	_, _, server := newTestStack(t)

	conn := dial(t, server)
	send(t, conn, EventJoinRoom, JoinRequest{Name: "eve", RoomCode: "NOPE99"})

	var errMsg ErrorMessage
	if err := json.Unmarshal(recv(t, conn, EventError), &errMsg); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if errMsg.Message != "Room not found!" {
		t.Errorf("Expected 'Room not found!', got %q", errMsg.Message)
	}
}

func TestGetRooms(t *testing.T) {
	_, _, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	var created service.JoinResult
	json.Unmarshal(recv(t, creator, EventRoomCreated), &created)

	browser := dial(t, server)
	send(t, browser, EventGetRooms, nil)

	var list []session.RoomInfo
	if err := json.Unmarshal(recv(t, browser, EventRoomList), &list); err != nil {
		t.Fatalf("Failed to decode roomList: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 joinable room, got %d", len(list))
	}
	if list[0].Code != created.RoomCode || list[0].Count != 1 || list[0].Max != session.DefaultCapacity {
		t.Errorf("Unexpected room info: %+v", list[0])
	}
}

func TestDisconnectCleanup(t *testing.T) {
	router, svc, server := newTestStack(t)

	creator := dial(t, server)
	send(t, creator, EventCreateRoom, JoinRequest{Name: "alice"})
	var created service.JoinResult
	json.Unmarshal(recv(t, creator, EventRoomCreated), &created)

	joiner := dial(t, server)
	send(t, joiner, EventJoinRoom, JoinRequest{Name: "bob", RoomCode: created.RoomCode})
	var joined service.JoinResult
	json.Unmarshal(recv(t, joiner, EventRoomJoined), &joined)
	recv(t, creator, EventPlayerJoined)

	// Joiner drops; creator hears playerLeft and the room survives.
	joiner.Close()

	var left PlayerLeft
	if err := json.Unmarshal(recv(t, creator, EventPlayerLeft), &left); err != nil {
		t.Fatalf("Failed to decode playerLeft: %v", err)
	}
	if left.ID != joined.PlayerID {
		t.Errorf("playerLeft carries id %s, want %s", left.ID, joined.PlayerID)
	}

	st := svc.Status(context.Background())
	if st.RoomCount != 1 || st.TotalPlayerCount != 1 {
		t.Errorf("Expected surviving room with 1 player, got %+v", st)
	}
	if n := router.Hub().RoomSize(created.RoomCode); n != 1 {
		t.Errorf("Expected 1 hub connection after joiner left, got %d", n)
	}

	// Creator drops; the emptied room is deleted.
	creator.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := svc.Status(context.Background())
		if st.RoomCount == 0 && router.Hub().RoomSize(created.RoomCode) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Room should be deleted after the last player disconnects, got %+v",
		svc.Status(context.Background()))
}
