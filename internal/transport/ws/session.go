package ws

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/geonote/chat-service/internal/domain"
)

// Service surfaces the session depends on. Satisfied by internal/service.
type IdentitySvc interface {
	Verify(ctx context.Context, credential string) (*domain.User, error)
}

type AccessSvc interface {
	Authorize(ctx context.Context, roomID string, userID int64) error
}

type ChatSvc interface {
	Send(ctx context.Context, roomID string, senderID int64, body string) (*domain.Message, error)
}

type ReceiptSvc interface {
	MarkRead(ctx context.Context, roomID string, readerID int64) (int64, error)
}

type sessionState int

const (
	stateConnected sessionState = iota
	stateAuthenticated
	stateInRoom
	stateClosed
)

// session is the per-connection state machine. All events of one connection
// are handled by that connection's read loop, one at a time, so the state
// fields need no lock. Invalid input answers with an error event and leaves
// the state unchanged; only the real disconnect closes the session.
type session struct {
	conn     Conn
	hub      *Hub
	registry *Registry

	identity IdentitySvc
	access   AccessSvc
	chat     ChatSvc
	receipts ReceiptSvc

	state  sessionState
	user   domain.User
	roomID string
}

func newSession(conn Conn, hub *Hub, registry *Registry, identity IdentitySvc, access AccessSvc, chat ChatSvc, receipts ReceiptSvc) *session {
	return &session{
		conn:     conn,
		hub:      hub,
		registry: registry,
		identity: identity,
		access:   access,
		chat:     chat,
		receipts: receipts,
		state:    stateConnected,
	}
}

func (s *session) handle(ctx context.Context, msg Message) {
	switch msg.Type {
	case TypeAuth:
		var p AuthPayload
		if decode(msg.Payload, &p) == nil {
			s.handleAuth(ctx, p)
		}
	case TypeJoin:
		var p JoinPayload
		if decode(msg.Payload, &p) == nil {
			s.handleJoin(ctx, p)
		}
	case TypeChat:
		var p ChatPayload
		if decode(msg.Payload, &p) == nil {
			s.handleChat(ctx, p)
		}
	case TypeMarkRead:
		var p MarkReadPayload
		if decode(msg.Payload, &p) == nil {
			s.handleMarkRead(ctx, p)
		}
	default:
		// ignore
	}
}

func (s *session) handleAuth(ctx context.Context, p AuthPayload) {
	if s.state != stateConnected {
		s.sendError(domain.ErrAlreadyAuthenticated)
		return
	}

	u, err := s.identity.Verify(ctx, strings.TrimSpace(p.Token))
	if err != nil {
		// stays Connected; the peer may retry
		s.sendError(err)
		return
	}
	if err := s.registry.Register(s.conn.ID(), u.ID, u.Username); err != nil {
		s.sendError(err)
		return
	}

	s.user = *u
	s.state = stateAuthenticated
	_ = s.conn.Send(Message{
		Type: TypeAuthOK,
		Payload: AuthOKPayload{
			UserID:   strconv.FormatInt(u.ID, 10),
			Username: u.Username,
		},
	})
}

func (s *session) handleJoin(ctx context.Context, p JoinPayload) {
	if s.state == stateConnected {
		s.sendError(domain.ErrNotAuthenticated)
		return
	}
	roomID := strings.TrimSpace(p.RoomID)
	if roomID == "" {
		s.sendErrorText("missing room_id")
		return
	}

	if err := s.access.Authorize(ctx, roomID, s.user.ID); err != nil {
		s.sendError(err)
		return
	}

	// re-entrant: Join displaces any previous membership
	s.hub.Join(roomID, s.conn)
	s.registry.SetRoom(s.conn.ID(), roomID)
	s.roomID = roomID
	s.state = stateInRoom

	_ = s.conn.Send(Message{Type: TypeJoined, Payload: JoinedPayload{RoomID: roomID}})
}

func (s *session) handleChat(ctx context.Context, p ChatPayload) {
	switch s.state {
	case stateConnected:
		s.sendError(domain.ErrNotAuthenticated)
		return
	case stateAuthenticated:
		s.sendError(domain.ErrNotInRoom)
		return
	}
	// a stale client may still address a room it already left
	if p.RoomID != "" && p.RoomID != s.roomID {
		s.sendError(domain.ErrNotInRoom)
		return
	}

	msg, err := s.chat.Send(ctx, s.roomID, s.user.ID, p.Message)
	if err != nil {
		// persistence failed or validation rejected: the sender alone hears
		// about it, the room sees nothing
		s.sendError(err)
		return
	}

	s.hub.Broadcast(s.roomID, Message{
		Type: TypeChat,
		Payload: ChatPayload{
			MsgID:   msg.ID,
			RoomID:  msg.RoomID,
			UserID:  strconv.FormatInt(msg.SenderID, 10),
			Message: msg.Body,
			TSUnix:  msg.CreatedAt.Unix(),
			IsRead:  msg.IsRead,
		},
	})
}

func (s *session) handleMarkRead(ctx context.Context, p MarkReadPayload) {
	if s.state == stateConnected {
		s.sendError(domain.ErrNotAuthenticated)
		return
	}
	roomID := strings.TrimSpace(p.RoomID)
	if roomID == "" {
		s.sendErrorText("missing room_id")
		return
	}

	n, err := s.receipts.MarkRead(ctx, roomID, s.user.ID)
	if err != nil {
		s.sendError(err)
		return
	}
	if n == 0 {
		// nothing flipped: repeated mark_read must not re-notify the peer
		return
	}

	s.hub.BroadcastExcept(roomID, s.conn, Message{
		Type: TypeRead,
		Payload: ReadPayload{
			RoomID: roomID,
			UserID: strconv.FormatInt(s.user.ID, 10),
		},
	})
}

// shutdown runs the disconnect transition exactly once: registry entry gone,
// no room's subscriber set contains the connection.
func (s *session) shutdown() {
	if s.state == stateClosed {
		return
	}
	s.state = stateClosed
	s.registry.Remove(s.conn.ID())
	s.hub.Leave(s.conn)
}

func (s *session) sendError(err error) {
	s.sendErrorText(userMessage(err))
}

func (s *session) sendErrorText(text string) {
	_ = s.conn.Send(Message{Type: TypeError, Payload: ErrorPayload{Message: text}})
}

// userMessage maps the error taxonomy to what the peer is allowed to see.
// RoomNotFound and NotParticipant share one message so room existence cannot
// be probed.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrNotParticipant):
		return "room not found or access denied"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid credential"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "not authenticated"
	case errors.Is(err, domain.ErrAlreadyAuthenticated):
		return "already authenticated"
	case errors.Is(err, domain.ErrNotInRoom):
		return "no room joined"
	case errors.Is(err, domain.ErrEmptyBody):
		return "empty message"
	case errors.Is(err, domain.ErrMessageTooLong):
		return "message too long"
	default:
		slog.Error("unexpected session error", "err", err)
		return "internal error"
	}
}
