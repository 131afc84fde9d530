package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/geonote/chat-service/internal/domain"
)

const (
	maxMessageLen = 4000
	summaryLen    = 80
)

type MessageStore interface {
	Insert(ctx context.Context, roomID string, senderID int64, body string) (*domain.Message, error)
	MarkRead(ctx context.Context, roomID string, readerID int64) (int64, error)
	History(ctx context.Context, roomID, after string, limit int) ([]domain.Message, string, error)
}

type ChatService struct {
	messages MessageStore
	rooms    RoomStore
	access   *AccessService
}

func NewChatService(messages MessageStore, rooms RoomStore, access *AccessService) *ChatService {
	return &ChatService{messages: messages, rooms: rooms, access: access}
}

// Send validates, persists and summarizes one message. Participancy is
// re-checked on every send, not only at join time. The caller broadcasts the
// returned message; nothing is broadcast unless the insert succeeded.
func (s *ChatService) Send(ctx context.Context, roomID string, senderID int64, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return nil, domain.ErrMessageTooLong
	}

	if err := s.access.Authorize(ctx, roomID, senderID); err != nil {
		return nil, err
	}

	msg, err := s.messages.Insert(ctx, roomID, senderID, body)
	if err != nil {
		return nil, fmt.Errorf("messages.Insert: %w", err)
	}

	// The summary is derived data; the message itself is already durable, so a
	// failed summary update is logged and the send still succeeds.
	if err := s.rooms.UpdateSummary(ctx, roomID, truncateRunes(body, summaryLen), msg.CreatedAt); err != nil {
		slog.Warn("room summary update failed", "room", roomID, "err", err)
	}

	return msg, nil
}

func (s *ChatService) History(ctx context.Context, roomID string, userID int64, after string, limit int) ([]domain.Message, string, error) {
	if err := s.access.Authorize(ctx, roomID, userID); err != nil {
		return nil, "", err
	}
	return s.messages.History(ctx, roomID, after, limit)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
