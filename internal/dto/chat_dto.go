package dto

import (
	"time"

	"groupchat-be/internal/entity"
)

type CreateRoomRequest struct {
	GroupId         uint64 `json:"group_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"max=2000"`
	MaxParticipants int    `json:"max_participants" validate:"omitempty,min=2,max=1000"`
}

type RoomResponse struct {
	Id              uint64    `json:"id"`
	GroupId         uint64    `json:"group_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	MaxParticipants int       `json:"max_participants"`
	IsActive        bool      `json:"is_active"`
	CreatedBy       uint64    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewRoomResponse(room *entity.Room) *RoomResponse {
	return &RoomResponse{
		Id:              room.Id,
		GroupId:         room.GroupId,
		Name:            room.Name,
		Description:     room.Description,
		MaxParticipants: room.MaxParticipants,
		IsActive:        room.IsActive,
		CreatedBy:       room.CreatedBy,
		CreatedAt:       room.CreatedAt,
	}
}

type MemberResponse struct {
	MembershipId  uint64    `json:"membership_id"`
	UserId        uint64    `json:"user_id"`
	Role          string    `json:"role"`
	LastReadMsgId *uint64   `json:"last_read_msg_id,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
}

func NewMemberResponse(m *entity.Membership) *MemberResponse {
	return &MemberResponse{
		MembershipId:  m.Id,
		UserId:        m.UserId,
		Role:          string(m.Role),
		LastReadMsgId: m.LastReadMsgId,
		JoinedAt:      m.JoinedAt,
	}
}

type MemberListResponse struct {
	Members []*MemberResponse `json:"members"`
	Count   int               `json:"count"`
}

type UpdateLastReadRequest struct {
	MessageId uint64 `json:"message_id" validate:"required"`
}

type UpdateLastReadResponse struct {
	LastReadMsgId uint64 `json:"last_read_msg_id"`
	UnreadCount   int64  `json:"unread_count"`
}

// MessageEnvelope is the wire shape of a message, both for live push
// and history pages.
type MessageEnvelope struct {
	Id             uint64                   `json:"id"`
	RoomId         uint64                   `json:"room_id"`
	AuthorId       uint64                   `json:"author_id"`
	AuthorNickname string                   `json:"author_nickname"`
	Body           *string                  `json:"body,omitempty"`
	ImageRef       *string                  `json:"image_ref,omitempty"`
	Kind           string                   `json:"kind"`
	Metadata       map[string]interface{}   `json:"metadata,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	Reactions      []entity.ReactionSummary `json:"reactions"`
}

func NewMessageEnvelope(msg *entity.Message, reactions []entity.ReactionSummary) *MessageEnvelope {
	if reactions == nil {
		reactions = []entity.ReactionSummary{}
	}
	return &MessageEnvelope{
		Id:             msg.Id,
		RoomId:         msg.RoomId,
		AuthorId:       msg.UserId,
		AuthorNickname: msg.AuthorNickname,
		Body:           msg.Body,
		ImageRef:       msg.ImageRef,
		Kind:           string(msg.Kind),
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
		Reactions:      reactions,
	}
}

type HistoryPageResponse struct {
	Messages []*MessageEnvelope `json:"messages"`
	OldestId uint64             `json:"oldest_id"`
	HasMore  bool               `json:"has_more"`
}

type AddReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=32"`
}

type ReactionResponse struct {
	MessageId uint64                   `json:"message_id"`
	Summaries []entity.ReactionSummary `json:"summaries"`
}

type PresenceResponse struct {
	RoomId  uint64   `json:"room_id"`
	UserIds []uint64 `json:"user_ids"`
}
