package ws

// Event types carried over the socket.
const (
	TypeAuth     = "auth"      // inbound: credential presented in-band
	TypeAuthOK   = "auth_ok"   // outbound: identity accepted
	TypeJoin     = "join"      // inbound: enter a room
	TypeJoined   = "joined"    // outbound: join accepted
	TypeChat     = "chat"      // both directions
	TypeMarkRead = "mark_read" // inbound: reader caught up
	TypeRead     = "read"      // outbound: peer's messages were read
	TypeError    = "error"     // outbound only
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type AuthPayload struct {
	Token string `json:"token"`
}

type AuthOKPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type JoinPayload struct {
	RoomID string `json:"room_id"`
}

type JoinedPayload struct {
	RoomID string `json:"room_id"`
}

type ChatPayload struct {
	RoomID  string `json:"room_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`

	MsgID  string `json:"msg_id,omitempty"`
	TSUnix int64  `json:"ts_unix,omitempty"`
	IsRead bool   `json:"is_read"`
}

type MarkReadPayload struct {
	RoomID string `json:"room_id"`
}

type ReadPayload struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
