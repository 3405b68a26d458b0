package feed

import (
	"context"
	"sync"

	"cospace/internal/events"

	"github.com/gorilla/websocket"
)

// AvailabilityUpdate is the message pushed to connected dashboards whenever
// a reservation takes spots from the ledger.
type AvailabilityUpdate struct {
	AreaID         int64  `json:"area_id"`
	Date           string `json:"date"`
	AvailableSpots int    `json:"available_spots"`
}

// Hub fans availability updates out to every connected websocket client.
type Hub struct {
	connections map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Broadcast sends the update to every client, dropping clients whose
// connection has gone bad.
func (h *Hub) Broadcast(update AvailabilityUpdate) {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(update); err != nil {
			h.Unregister(conn)
		}
	}
}

// Run translates bus events into broadcasts until the channel closes or ctx
// is cancelled.
func (h *Hub) Run(ctx context.Context, in <-chan events.ReservationCreated) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			h.Broadcast(AvailabilityUpdate{
				AreaID:         ev.AreaID,
				Date:           ev.Date.Format("2006-01-02"),
				AvailableSpots: ev.SpotsAfter,
			})
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
	}
	h.connections = make(map[*websocket.Conn]bool)
}
