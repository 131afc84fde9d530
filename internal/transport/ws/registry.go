package ws

import (
	"sync"

	"github.com/geonote/chat-service/internal/domain"
)

// Entry is the per-connection record. UserID stays zero until the connection
// authenticates; RoomID stays empty until a join succeeds.
type Entry struct {
	ConnID   string
	UserID   int64
	Username string
	RoomID   string
}

func (e Entry) Authenticated() bool { return e.UserID != 0 }

// Registry is the process-wide connection table. Each connection's read loop
// is its own goroutine, so the table is mutex-protected. Lifecycle is process
// start to process stop; nothing here survives a restart.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add creates the entry on connection-open, before any identity is known.
func (r *Registry) Add(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[connID]; !ok {
		r.entries[connID] = &Entry{ConnID: connID}
	}
}

// Register binds an identity to a live connection. Re-authentication is
// rejected, never silently overwritten.
func (r *Registry) Register(connID string, userID int64, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[connID]
	if !ok {
		e = &Entry{ConnID: connID}
		r.entries[connID] = e
	}
	if e.Authenticated() {
		return domain.ErrAlreadyAuthenticated
	}
	e.UserID = userID
	e.Username = username
	return nil
}

// SetRoom records the connection's current room; empty clears it.
// Unknown connections are a no-op.
func (r *Registry) SetRoom(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[connID]; ok {
		e.RoomID = roomID
	}
}

func (r *Registry) Lookup(connID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[connID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Remove is idempotent.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, connID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
