package ws

import (
	"sync"
)

type Conn interface {
	ID() string
	Send(msg Message) error
	Close() error
}

// Hub routes events to the connections currently joined to a room. A
// connection belongs to at most one room at a time; Join displaces any prior
// membership. Broadcasts run under the write lock so that sequential
// broadcasts to one room reach every subscriber in the same order.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[Conn]struct{} // roomID -> set of connections
	byConn map[Conn]string              // reverse index
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[Conn]struct{}),
		byConn: make(map[Conn]string),
	}
}

func (h *Hub) Join(roomID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.byConn[c]; ok {
		h.drop(prev, c)
	}

	rs, ok := h.rooms[roomID]
	if !ok {
		rs = make(map[Conn]struct{})
		h.rooms[roomID] = rs
	}
	rs[c] = struct{}{}
	h.byConn[c] = roomID
}

// Leave is idempotent; unknown connections are a no-op.
func (h *Hub) Leave(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if roomID, ok := h.byConn[c]; ok {
		h.drop(roomID, c)
	}
}

func (h *Hub) drop(roomID string, c Conn) {
	delete(h.byConn, c)
	if rs, ok := h.rooms[roomID]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) Broadcast(roomID string, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[roomID]; ok {
		for c := range rs {
			_ = c.Send(msg) // best-effort: a closed connection is skipped
		}
	}
}

func (h *Hub) BroadcastExcept(roomID string, except Conn, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[roomID]; ok {
		for c := range rs {
			if c == except {
				continue
			}
			_ = c.Send(msg)
		}
	}
}

// RoomOf reports which room the connection is joined to, if any.
func (h *Hub) RoomOf(c Conn) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomID, ok := h.byConn[c]
	return roomID, ok
}
