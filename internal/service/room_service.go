package service

import (
	"context"

	"github.com/geonote/chat-service/internal/domain"
)

// RoomService backs the read-only conversation list.
type RoomService struct {
	rooms RoomStore
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

func (s *RoomService) ListForUser(ctx context.Context, userID int64, limit int, cursor string) ([]domain.Room, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return s.rooms.ListByUser(ctx, userID, limit, cursor)
}
