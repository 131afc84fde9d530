package ws

import (
	"errors"
	"sync"
	"testing"
)

type fakeConn struct {
	id string

	mu     sync.Mutex
	sent   []Message
	closed bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}

func TestHub_JoinDisplacesPreviousRoom(t *testing.T) {
	h := NewHub()
	c := newFakeConn("c1")

	h.Join("a", c)
	h.Join("b", c)

	if room, ok := h.RoomOf(c); !ok || room != "b" {
		t.Fatalf("expected room b, got %q (ok=%v)", room, ok)
	}

	h.Broadcast("a", Message{Type: TypeChat})
	if n := len(c.messages()); n != 0 {
		t.Fatalf("connection still receives from the old room: %d messages", n)
	}

	h.Broadcast("b", Message{Type: TypeChat})
	if n := len(c.messages()); n != 1 {
		t.Fatalf("expected 1 message from room b, got %d", n)
	}
}

func TestHub_BroadcastOrderPerRoom(t *testing.T) {
	h := NewHub()
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")
	h.Join("r", c1)
	h.Join("r", c2)

	for i := 0; i < 5; i++ {
		h.Broadcast("r", Message{Type: TypeChat, Payload: i})
	}

	m1 := c1.messages()
	m2 := c2.messages()
	if len(m1) != 5 || len(m2) != 5 {
		t.Fatalf("expected 5 messages each, got %d and %d", len(m1), len(m2))
	}
	for i := range m1 {
		if m1[i].Payload != i || m2[i].Payload != i {
			t.Fatalf("order diverged at %d: %v vs %v", i, m1[i].Payload, m2[i].Payload)
		}
	}
}

func TestHub_BroadcastExcept(t *testing.T) {
	h := NewHub()
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")
	h.Join("r", c1)
	h.Join("r", c2)

	h.BroadcastExcept("r", c1, Message{Type: TypeRead})

	if n := len(c1.messages()); n != 0 {
		t.Fatalf("excluded connection received %d messages", n)
	}
	if n := len(c2.messages()); n != 1 {
		t.Fatalf("expected 1 message on the other connection, got %d", n)
	}
}

func TestHub_ClosedConnectionIsSkipped(t *testing.T) {
	h := NewHub()
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")
	h.Join("r", c1)
	h.Join("r", c2)

	_ = c1.Close()
	h.Broadcast("r", Message{Type: TypeChat})

	if n := len(c2.messages()); n != 1 {
		t.Fatalf("live connection should still receive, got %d", n)
	}
}

func TestHub_LeaveIdempotent(t *testing.T) {
	h := NewHub()
	c := newFakeConn("c1")
	h.Join("r", c)

	h.Leave(c)
	h.Leave(c) // second leave must be a no-op

	if _, ok := h.RoomOf(c); ok {
		t.Fatal("connection still tracked after leave")
	}
	if len(h.rooms) != 0 {
		t.Fatalf("empty room set not cleaned up: %d rooms", len(h.rooms))
	}
}
