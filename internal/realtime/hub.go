// Package realtime pushes job and catalog change events to connected
// dashboards over websockets, replacing page polling for the job board.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"jrs-backend/internal/timeutil"
)

// Event is one change notification on the wire.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The board is read-only and JWT-gated at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected clients and fans events out to them. A slow client
// is dropped rather than allowed to block the rest.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan []byte)}
}

// Publish sends an event to every connected client.
func (h *Hub) Publish(event string, payload interface{}) {
	raw, err := json.Marshal(Event{Type: event, Payload: payload, Timestamp: timeutil.Now()})
	if err != nil {
		log.Printf("[Realtime] marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- raw:
		default:
			// Client can't keep up; disconnect it.
			close(send)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ServeWS upgrades the connection and streams events until the client
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] upgrade failed: %v", err)
		return
	}

	send := make(chan []byte, 64)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go func() {
		for msg := range send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	// Drain reads to detect disconnect; the board never sends messages.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if send, ok := h.clients[conn]; ok {
		close(send)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}
