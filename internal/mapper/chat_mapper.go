package mapper

import (
	"encoding/json"
	"time"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) RoomToModel(e *entity.Room) *model.Room {
	r := &model.Room{
		Id:              e.Id,
		GroupId:         e.GroupId,
		Name:            e.Name,
		Description:     e.Description,
		MaxParticipants: e.MaxParticipants,
		IsActive:        e.IsActive,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		r.UpdatedAt = *e.UpdatedAt
	}
	return r
}

func (m *ChatMapper) RoomToEntity(r *model.Room) *entity.Room {
	e := &entity.Room{
		Id:              r.Id,
		GroupId:         r.GroupId,
		Name:            r.Name,
		Description:     r.Description,
		MaxParticipants: r.MaxParticipants,
		IsActive:        r.IsActive,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
	}
	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt
		e.UpdatedAt = &updatedAt
	}
	return e
}

func (m *ChatMapper) MembershipToModel(e *entity.Membership) *model.RoomMember {
	return &model.RoomMember{
		Id:            e.Id,
		RoomId:        e.RoomId,
		UserId:        e.UserId,
		Role:          string(e.Role),
		LastReadMsgId: e.LastReadMsgId,
		IsActive:      e.IsActive,
		JoinedAt:      e.JoinedAt,
		LeftAt:        e.LeftAt,
	}
}

func (m *ChatMapper) MembershipToEntity(r *model.RoomMember) *entity.Membership {
	return &entity.Membership{
		Id:            r.Id,
		RoomId:        r.RoomId,
		UserId:        r.UserId,
		Role:          entity.MemberRole(r.Role),
		LastReadMsgId: r.LastReadMsgId,
		IsActive:      r.IsActive,
		JoinedAt:      r.JoinedAt,
		LeftAt:        r.LeftAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.Message) *model.Message {
	msg := &model.Message{
		Id:             e.Id,
		RoomId:         e.RoomId,
		UserId:         e.UserId,
		AuthorNickname: e.AuthorNickname,
		Body:           e.Body,
		ImageRef:       e.ImageRef,
		Kind:           string(e.Kind),
		CreatedAt:      e.CreatedAt,
	}
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			msg.Metadata = datatypes.JSON(raw)
		}
	}
	return msg
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	e := &entity.Message{
		Id:             msg.Id,
		RoomId:         msg.RoomId,
		UserId:         msg.UserId,
		AuthorNickname: msg.AuthorNickname,
		Body:           msg.Body,
		ImageRef:       msg.ImageRef,
		Kind:           entity.MessageKind(msg.Kind),
		CreatedAt:      msg.CreatedAt,
	}
	if len(msg.Metadata) > 0 {
		var meta map[string]interface{}
		if err := json.Unmarshal(msg.Metadata, &meta); err == nil {
			e.Metadata = meta
		}
	}
	return e
}

func (m *ChatMapper) ReactionToModel(e *entity.Reaction) *model.Reaction {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &model.Reaction{
		Id:        e.Id,
		MessageId: e.MessageId,
		UserId:    e.UserId,
		Emoji:     e.Emoji,
		CreatedAt: createdAt,
	}
}

func (m *ChatMapper) ReactionToEntity(r *model.Reaction) *entity.Reaction {
	return &entity.Reaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}
