package service

import (
	"context"
	"fmt"
)

// ReceiptService marks the other participant's messages in a room as read.
type ReceiptService struct {
	messages MessageStore
	access   *AccessService
}

func NewReceiptService(messages MessageStore, access *AccessService) *ReceiptService {
	return &ReceiptService{messages: messages, access: access}
}

// MarkRead is bulk and idempotent: it returns how many messages flipped to
// read. A second call with no new messages returns 0, which tells the caller
// to skip the receipt broadcast.
func (s *ReceiptService) MarkRead(ctx context.Context, roomID string, readerID int64) (int64, error) {
	if err := s.access.Authorize(ctx, roomID, readerID); err != nil {
		return 0, err
	}
	n, err := s.messages.MarkRead(ctx, roomID, readerID)
	if err != nil {
		return 0, fmt.Errorf("messages.MarkRead: %w", err)
	}
	return n, nil
}
