package domain

import "time"

type Message struct {
	ID        string    `db:"id"`
	RoomID    string    `db:"room_id"`
	SenderID  int64     `db:"sender_id"`
	Body      string    `db:"body"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
