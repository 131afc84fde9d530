package service

import (
	"context"
	"time"

	"github.com/geonote/chat-service/internal/domain"
)

type RoomStore interface {
	Get(ctx context.Context, id string) (*domain.Room, error)
	UpdateSummary(ctx context.Context, roomID, summary string, at time.Time) error
	ListByUser(ctx context.Context, userID int64, limit int, cursor string) ([]domain.Room, string, error)
}

// AccessService decides whether a user may act inside a room. Participant
// sets are immutable, so the store is hit on every call without caching.
type AccessService struct {
	rooms RoomStore
}

func NewAccessService(rooms RoomStore) *AccessService {
	return &AccessService{rooms: rooms}
}

// Authorize returns ErrRoomNotFound or ErrNotParticipant on denial. Callers
// surface both as one generic message so room existence cannot be probed.
func (s *AccessService) Authorize(ctx context.Context, roomID string, userID int64) error {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasParticipant(userID) {
		return domain.ErrNotParticipant
	}
	return nil
}
