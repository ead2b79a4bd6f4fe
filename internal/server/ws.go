package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// reportMessage is the wire form of a published report.
type reportMessage struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ReportHub pushes each published classification report to connected
// WebSocket clients. It implements the pipeline's Publisher interface:
// publication is last-write-wins, so the hub keeps only the most recent
// report and sends it to clients as they connect.
type ReportHub struct {
	clients map[*websocket.Conn]bool
	latest  *reportMessage
	mu      sync.RWMutex
}

// NewReportHub creates a new ReportHub.
func NewReportHub() *ReportHub {
	return &ReportHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Publish broadcasts a report to all connected clients.
func (h *ReportHub) Publish(text string) {
	msg := &reportMessage{
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = msg
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Latest returns the text of the most recently published report, or the
// empty string if nothing has been published yet.
func (h *ReportHub) Latest() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.latest == nil {
		return ""
	}
	return h.latest.Text
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ReportHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	// Late joiners immediately see the current state.
	if h.latest != nil {
		if payload, err := json.Marshal(h.latest); err == nil {
			conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
