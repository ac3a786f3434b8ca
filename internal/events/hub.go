package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event tells connected clients that an entity changed and its collection
// should be re-read. There is no incremental payload: the client re-fetches.
type Event struct {
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

// Unregister drops the connection only if it is still the one registered
// for the user. A handler whose connection was replaced on reconnect must
// not tear down the replacement.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	current, exists := h.connections[userID]
	if !exists || current != conn {
		return
	}
	if current != nil {
		_ = current.Close()
	}
	delete(h.connections, userID)
}

// Broadcast pushes the event to every connected client. Delivery is
// best-effort: a failed write drops that connection and never fails the
// mutation that produced the event.
func (h *Hub) Broadcast(entityType string, entityID int64, action string) {
	ev := Event{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Timestamp:  time.Now(),
	}

	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for userID, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			h.Unregister(userID, conn)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
