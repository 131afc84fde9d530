package postgres

import (
	"context"
	"fmt"

	"github.com/geonote/chat-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, roomID string, senderID int64, body string) (*domain.Message, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO room_messages (room_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, room_id, sender_id, body, is_read, created_at
	`, roomID, senderID, body)

	var m domain.Message
	if err := row.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Body, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead flips is_read for every unread message in the room that the reader
// did not send. The false->true transition is monotonic; a repeated call
// matches zero rows. Returns the number of rows updated.
func (r *MessageRepository) MarkRead(ctx context.Context, roomID string, readerID int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `
		UPDATE room_messages SET is_read = TRUE
		WHERE room_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, roomID, readerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// History returns room messages with keyset pagination (created_at,id DESC).
func (r *MessageRepository) History(ctx context.Context, roomID, after string, limit int) ([]domain.Message, string, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	cur, err := DecodeCursor(after)
	if err != nil {
		return nil, "", fmt.Errorf("decode cursor: %w", err)
	}
	const baseQuery = `
		SELECT id, room_id, sender_id, body, is_read, created_at
		FROM room_messages
		WHERE room_id = $1
		  AND (
		    $2::timestamptz IS NULL
		    OR created_at < $2
		    OR (created_at = $2 AND id < $3)
		  )
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`

	var createdAt any
	var id any
	if cur != nil {
		createdAt = cur.TS
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, baseQuery, roomID, createdAt, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Body, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, "", err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(out) == limit {
		last := out[len(out)-1]
		if c, e := EncodeCursor(Cursor{TS: last.CreatedAt, ID: last.ID}); e == nil {
			next = c
		}
	}
	return out, next, nil
}
