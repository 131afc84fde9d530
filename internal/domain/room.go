package domain

import "time"

// Room is a strictly two-party conversation. The participant pair is fixed at
// creation; rooms are created by the REST layer, never by this service.
type Room struct {
	ID            string     `db:"id"`
	ParticipantA  int64      `db:"participant_a"`
	ParticipantB  int64      `db:"participant_b"`
	LastMessage   *string    `db:"last_message"`
	LastMessageAt *time.Time `db:"last_message_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

func (r *Room) HasParticipant(userID int64) bool {
	return userID == r.ParticipantA || userID == r.ParticipantB
}

// Peer returns the other participant of the pair.
func (r *Room) Peer(userID int64) int64 {
	if userID == r.ParticipantA {
		return r.ParticipantB
	}
	return r.ParticipantA
}
