package service

import "errors"

// Chat error taxonomy. Handlers map these with errors.Is; websocket
// command failures answer with the code string and keep the connection
// open, except authentication failures which close it.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAMember           = errors.New("not an active member of this room")
	ErrAlreadyMember        = errors.New("already an active member of this room")
	ErrRoomFull             = errors.New("room is at capacity")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomAlreadyExists    = errors.New("group already has an active room")
	ErrMessageNotFound      = errors.New("message not found")
	ErrDuplicateReaction    = errors.New("reaction already exists")
	ErrReactionNotFound     = errors.New("reaction not found")
	ErrEmptyBody            = errors.New("message body is empty")
	ErrBodyTooLong          = errors.New("message body exceeds the allowed length")
	ErrEmojiTooLong         = errors.New("emoji exceeds the allowed length")

	// ErrTransportUnavailable marks broadcast publish/delivery failures.
	// It is logged at the relay boundary and never surfaced to a sender
	// whose message already persisted.
	ErrTransportUnavailable = errors.New("broadcast transport unavailable")
)

// ErrorCode maps a taxonomy error to its stable wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthenticationFailed):
		return "AuthenticationFailed"
	case errors.Is(err, ErrNotAMember):
		return "NotAMember"
	case errors.Is(err, ErrAlreadyMember):
		return "AlreadyMember"
	case errors.Is(err, ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrRoomAlreadyExists):
		return "RoomAlreadyExists"
	case errors.Is(err, ErrMessageNotFound):
		return "MessageNotFound"
	case errors.Is(err, ErrDuplicateReaction):
		return "DuplicateReaction"
	case errors.Is(err, ErrReactionNotFound):
		return "ReactionNotFound"
	case errors.Is(err, ErrEmptyBody), errors.Is(err, ErrBodyTooLong), errors.Is(err, ErrEmojiTooLong):
		return "InvalidPayload"
	case errors.Is(err, ErrTransportUnavailable):
		return "TransportUnavailable"
	}
	return "Internal"
}
