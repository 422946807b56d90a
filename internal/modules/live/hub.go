package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type FeedEvent struct {
	DonorName   string    `json:"donorName"`
	Amount      int64     `json:"amount"`
	Note        string    `json:"note,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// Hub fans completed donations out to every connected viewer.
type Hub struct {
	connections map[*websocket.Conn]struct{}
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// BroadcastDonation satisfies the donation feed interface. Dead connections
// are dropped on write failure.
func (h *Hub) BroadcastDonation(donorName string, amount int64, note string, completedAt time.Time) {
	event := FeedEvent{
		DonorName:   donorName,
		Amount:      amount,
		Note:        note,
		CompletedAt: completedAt,
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) ViewerCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}
