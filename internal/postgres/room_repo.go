package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geonote/chat-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	var rm domain.Room
	query := `
		SELECT id, participant_a, participant_b, last_message, last_message_at, created_at
		FROM rooms WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&rm.ID, &rm.ParticipantA, &rm.ParticipantB, &rm.LastMessage, &rm.LastMessageAt, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

func (r *RoomRepository) IsParticipant(ctx context.Context, roomID string, userID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE id=$1 AND (participant_a=$2 OR participant_b=$2))`,
		roomID, userID).Scan(&ok)
	return ok, err
}

// UpdateSummary stores the room's last-message preview and activity timestamp.
func (r *RoomRepository) UpdateSummary(ctx context.Context, roomID, summary string, at time.Time) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE rooms SET last_message=$2, last_message_at=$3 WHERE id=$1`,
		roomID, summary, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// ListByUser returns the user's rooms with keyset pagination, most recent
// activity first (last_message_at falls back to created_at for empty rooms).
func (r *RoomRepository) ListByUser(ctx context.Context, userID int64, limit int, cursorStr string) ([]domain.Room, string, error) {
	cur, err := DecodeCursor(cursorStr)
	if err != nil {
		return nil, "", err
	}

	query := `
		SELECT id, participant_a, participant_b, last_message, last_message_at, created_at
		FROM rooms
		WHERE (participant_a = $1 OR participant_b = $1)
		  AND (
		    $2::timestamptz IS NULL
		    OR COALESCE(last_message_at, created_at) < $2
		    OR (COALESCE(last_message_at, created_at) = $2 AND id < $3)
		  )
		ORDER BY COALESCE(last_message_at, created_at) DESC, id DESC
		LIMIT $4`

	var ts any
	var id any
	if cur != nil {
		ts = cur.TS
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, query, userID, ts, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.ParticipantA, &rm.ParticipantB, &rm.LastMessage, &rm.LastMessageAt, &rm.CreatedAt); err != nil {
			return nil, "", err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var nextCursor string
	if len(rooms) == limit {
		last := rooms[len(rooms)-1]
		activity := last.CreatedAt
		if last.LastMessageAt != nil {
			activity = *last.LastMessageAt
		}
		nextCursor, _ = EncodeCursor(Cursor{TS: activity, ID: last.ID})
	}

	return rooms, nextCursor, nil
}
