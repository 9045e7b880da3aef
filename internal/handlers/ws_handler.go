package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"lesson-deck/internal/services"
)

// WebSocketHandler upgrades session connections and attaches them to rooms
type WebSocketHandler struct {
	sessions *services.SessionService
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(sessions *services.SessionService) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleSession joins a live presentation room
// GET /ws/{roomCode}?role=presenter|viewer
func (wh *WebSocketHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomCode := vars["roomCode"]

	role := r.URL.Query().Get("role")
	if role == "" {
		role = services.RoleViewer
	}

	// Viewers joining a room nobody presents in fail before the upgrade.
	if role == services.RoleViewer && wh.sessions.GetRoom(roomCode) == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	conn, err := wh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client, err := wh.sessions.Join(roomCode, role, conn)
	if err != nil {
		log.Printf("Session join failed: room=%s, role=%s, err=%v", roomCode, role, err)
		conn.Close()
		return
	}

	go wh.sessions.WritePump(client)
	wh.sessions.ReadPump(client)
}
