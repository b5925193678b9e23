package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// SaveEvent is broadcast to builder sessions when any session saves a
// template, so other open editors for the same app can refresh.
type SaveEvent struct {
	Type       string `json:"type"`
	AppKey     string `json:"appKey"`
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
}

// NotifyHub fans save events out to connected builder WebSockets.
type NotifyHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewNotifyHub creates an empty hub.
func NewNotifyHub() *NotifyHub {
	return &NotifyHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The builder UI runs on its own origin.
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and holds it until the
// builder session disconnects.
func (h *NotifyHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// NotifySaved broadcasts a template-saved event to every session.
func (h *NotifyHub) NotifySaved(appKey, templateID, name string) {
	h.broadcast(SaveEvent{
		Type:       "template-saved",
		AppKey:     appKey,
		TemplateID: templateID,
		Name:       name,
	})
}

func (h *NotifyHub) broadcast(event SaveEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected builder sessions.
func (h *NotifyHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every connection.
func (h *NotifyHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
