package dto

// Client-to-server websocket commands.
const (
	ActionSend    = "send"
	ActionEnter   = "enter"
	ActionLeave   = "leave"
	ActionOnline  = "online"
	ActionOffline = "offline"
)

// Server-to-client frame types.
const (
	FrameMessage  = "message"
	FrameReaction = "reaction"
	FrameError    = "error"
)

type ClientCommand struct {
	Action string `json:"action"`
	RoomId uint64 `json:"room_id"`
	Body   string `json:"body,omitempty"`
}

type ServerFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ErrorFrame struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	RoomId  uint64 `json:"room_id,omitempty"`
}

// ReactionEvent is pushed on the broadcast channel when a reaction is
// added or removed, so live clients can update counters in place.
type ReactionEvent struct {
	RoomId    uint64 `json:"room_id"`
	MessageId uint64 `json:"message_id"`
	UserId    uint64 `json:"user_id"`
	Emoji     string `json:"emoji"`
	Removed   bool   `json:"removed"`
}
