package entity

import (
	"fmt"
	"time"
)

// MessageKind is the closed set of message variants. Serialization and
// display formatting switch over it exhaustively; there is no inheritance
// hierarchy behind it.
type MessageKind string

const (
	KindEnter  MessageKind = "enter"
	KindTalk   MessageKind = "talk"
	KindLeave  MessageKind = "leave"
	KindNotice MessageKind = "system-notice"
)

// ParseMessageKind validates a wire value against the closed set.
func ParseMessageKind(s string) (MessageKind, error) {
	switch MessageKind(s) {
	case KindEnter, KindTalk, KindLeave, KindNotice:
		return MessageKind(s), nil
	}
	return "", fmt.Errorf("unknown message kind %q", s)
}

// Message is an immutable log entry. Id is assigned by the store and is
// the sole ordering key; rows are never updated, only removed in bulk by
// the retention sweep.
type Message struct {
	Id             uint64
	RoomId         uint64
	UserId         uint64
	AuthorNickname string
	Body           *string
	ImageRef       *string
	Kind           MessageKind
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}

// DisplayBody renders the body shown for non-talk kinds. Enter/leave
// rows carry no client text, only the author they announce.
func (m *Message) DisplayBody() string {
	switch m.Kind {
	case KindEnter:
		return fmt.Sprintf("%s entered", m.AuthorNickname)
	case KindLeave:
		return fmt.Sprintf("%s left", m.AuthorNickname)
	case KindTalk, KindNotice:
		if m.Body != nil {
			return *m.Body
		}
		return ""
	}
	return ""
}

// Page is one backward page of the message log, newest first.
type Page struct {
	Messages []*Message
	// OldestId is the cursor for the next pageBefore call; zero when the
	// page is empty.
	OldestId uint64
	HasMore  bool
}
