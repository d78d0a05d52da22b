package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mohamedskoko5454-creator/snake/game/service"
	"github.com/mohamedskoko5454-creator/snake/transport/websocket"
)

// Server represents the HTTP server: REST endpoints, the WebSocket
// upgrade path, and the static browser client.
type Server struct {
	service   service.GameService
	wsRouter  *websocket.Router
	router    *mux.Router
	staticDir string
}

// NewServer creates a new HTTP server over the given game service.
// staticDir is the directory the browser client is served from.
func NewServer(gameService service.GameService, wsRouter *websocket.Router, staticDir string) *Server {
	s := &Server{
		service:   gameService,
		wsRouter:  wsRouter,
		router:    mux.NewRouter(),
		staticDir: staticDir,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/status", s.handleStatus).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.wsRouter.ServeWS)

	// Static files
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Status(r.Context()))
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListRooms(r.Context()))
}
