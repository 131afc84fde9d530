package domain

import "errors"

var (
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrRoomNotFound         = errors.New("room not found")
	ErrNotParticipant       = errors.New("user is not a room participant")
	ErrNotInRoom            = errors.New("no room joined")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmptyBody            = errors.New("empty message")
	ErrMessageTooLong       = errors.New("message too long")
)
