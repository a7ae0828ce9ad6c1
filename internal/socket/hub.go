package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks every connected dashboard client. Alert handlers push
// events through Broadcast; clients only listen.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection under its connection id.
func (h *Hub) Register(connID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[connID] = conn
	log.Printf("WebSocket client registered: %s", connID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[connID]; ok {
		delete(h.clients, connID)
		log.Printf("WebSocket client unregistered: %s", connID)
	}
}

// Broadcast sends a message to every connected client. A failed write
// means the client is gone; it is not treated as an error here, the
// read loop will clean the connection up.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write to %s failed: %v", connID, err)
		}
	}
}
