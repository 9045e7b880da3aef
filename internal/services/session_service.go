package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"lesson-deck/internal/deck"
)

// RolePresenter drives navigation; RoleViewer follows it
const (
	RolePresenter = "presenter"
	RoleViewer    = "viewer"
)

// SessionMessage is the wire format exchanged over a session socket
type SessionMessage struct {
	Type     string `json:"type"` // "navigate" (presenter → server), "slide" (server → clients)
	RoomCode string `json:"roomCode,omitempty"`
	Index    int    `json:"index"`
	Counter  string `json:"counter,omitempty"`
}

// Client is one connected session participant
type Client struct {
	conn *websocket.Conn
	send chan []byte
	room string
	role string
}

// Room tracks the live state of one presentation session
type Room struct {
	Code         string
	Mu           sync.RWMutex
	Presenter    *Client
	Viewers      map[*Client]bool
	CurrentSlide int
	SlideCount   int
}

type outbound struct {
	roomCode string
	payload  []byte
}

// SessionService keeps presenters and viewers of a deck in sync: the
// presenter's navigation is broadcast to every viewer in the room. A single
// hub goroutine owns all registration and fan-out.
type SessionService struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
}

// NewSessionService creates a new session service
func NewSessionService() *SessionService {
	return &SessionService{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 16),
	}
}

// Run processes registrations and broadcasts. Call once in a goroutine.
func (ss *SessionService) Run() {
	for {
		select {
		case client := <-ss.register:
			ss.addClient(client)
		case client := <-ss.unregister:
			ss.removeClient(client)
		case message := <-ss.broadcast:
			ss.fanOut(message)
		}
	}
}

// GetRoom returns the room for a code, or nil if it doesn't exist
func (ss *SessionService) GetRoom(code string) *Room {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.rooms[code]
}

// Join attaches a connection to a room in the given role. Rooms are created
// by their first presenter; viewers can only join an existing room.
func (ss *SessionService) Join(roomCode, role string, conn *websocket.Conn) (*Client, error) {
	if roomCode == "" {
		return nil, fmt.Errorf("roomCode is required")
	}
	if role != RolePresenter && role != RoleViewer {
		return nil, fmt.Errorf("unknown session role: %q", role)
	}
	if role == RoleViewer && ss.GetRoom(roomCode) == nil {
		return nil, fmt.Errorf("room not found: %s", roomCode)
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 8),
		room: roomCode,
		role: role,
	}
	ss.register <- client
	return client, nil
}

// Leave detaches a client from its room
func (ss *SessionService) Leave(client *Client) {
	ss.unregister <- client
}

// HandleNavigate applies a presenter's navigation to the room and broadcasts
// the new slide position to every participant. Out-of-range indexes wrap
// around the deck, the same as presentation-mode navigation.
func (ss *SessionService) HandleNavigate(roomCode string, index int) error {
	room := ss.GetRoom(roomCode)
	if room == nil {
		return fmt.Errorf("room not found: %s", roomCode)
	}

	room.Mu.Lock()
	if room.SlideCount > 0 {
		index = deck.Wrap.Normalize(index, room.SlideCount)
	}
	room.CurrentSlide = index
	counter := ""
	if room.SlideCount > 0 {
		counter = fmt.Sprintf("%d / %d", index+1, room.SlideCount)
	}
	room.Mu.Unlock()

	payload, err := json.Marshal(SessionMessage{
		Type:    "slide",
		Index:   index,
		Counter: counter,
	})
	if err != nil {
		return fmt.Errorf("failed to encode slide message: %w", err)
	}

	ss.broadcast <- outbound{roomCode: roomCode, payload: payload}
	return nil
}

// SetSlideCount records the deck length for a room's counter display
func (ss *SessionService) SetSlideCount(roomCode string, count int) {
	room := ss.GetRoom(roomCode)
	if room == nil {
		return
	}
	room.Mu.Lock()
	room.SlideCount = count
	room.Mu.Unlock()
}

// ReadPump consumes messages from a client socket until it closes. Presenter
// navigate messages drive the room; everything else is ignored.
func (ss *SessionService) ReadPump(client *Client) {
	defer func() {
		ss.Leave(client)
		client.conn.Close()
	}()

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Session socket closed unexpectedly: room=%s, role=%s, err=%v", client.room, client.role, err)
			}
			return
		}

		var message SessionMessage
		if err := json.Unmarshal(data, &message); err != nil {
			log.Printf("Ignoring malformed session message: room=%s, err=%v", client.room, err)
			continue
		}

		if message.Type == "navigate" && client.role == RolePresenter {
			if err := ss.HandleNavigate(client.room, message.Index); err != nil {
				log.Printf("Navigate failed: room=%s, err=%v", client.room, err)
			}
		}
	}
}

// WritePump forwards queued broadcasts to the client socket
func (ss *SessionService) WritePump(client *Client) {
	defer client.conn.Close()
	for payload := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (ss *SessionService) addClient(client *Client) {
	ss.mu.Lock()
	room, exists := ss.rooms[client.room]
	if !exists {
		room = &Room{
			Code:    client.room,
			Viewers: make(map[*Client]bool),
		}
		ss.rooms[client.room] = room
	}
	ss.mu.Unlock()

	room.Mu.Lock()
	if client.role == RolePresenter {
		room.Presenter = client
	} else {
		room.Viewers[client] = true
	}
	room.Mu.Unlock()

	log.Printf("Session joined: room=%s, role=%s", client.room, client.role)
}

func (ss *SessionService) removeClient(client *Client) {
	room := ss.GetRoom(client.room)
	if room == nil {
		return
	}

	room.Mu.Lock()
	if room.Presenter == client {
		room.Presenter = nil
	}
	delete(room.Viewers, client)
	empty := room.Presenter == nil && len(room.Viewers) == 0
	room.Mu.Unlock()

	close(client.send)

	if empty {
		ss.mu.Lock()
		delete(ss.rooms, client.room)
		ss.mu.Unlock()
		log.Printf("Session room closed: room=%s", client.room)
	}
}

func (ss *SessionService) fanOut(message outbound) {
	room := ss.GetRoom(message.roomCode)
	if room == nil {
		return
	}

	room.Mu.RLock()
	defer room.Mu.RUnlock()

	deliver := func(client *Client) {
		select {
		case client.send <- message.payload:
		default:
			// Slow consumer; drop rather than block the hub.
			log.Printf("Dropping session message: room=%s, role=%s", client.room, client.role)
		}
	}

	if room.Presenter != nil {
		deliver(room.Presenter)
	}
	for viewer := range room.Viewers {
		deliver(viewer)
	}
}
