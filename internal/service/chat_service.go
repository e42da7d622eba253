package service

import (
	"context"
	"time"
	"unicode/utf8"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"
	"groupchat-be/internal/websocket"
)

type IChatService interface {
	// Submit validates, persists and fans out a talk message. Once the
	// append returns, the message is the system of record; a failed live
	// push is logged, never surfaced.
	Submit(ctx context.Context, roomId, authorId uint64, nickname, body string) (*dto.MessageEnvelope, error)
	// EmitPresenceMessage persists and fans out an enter/leave marker.
	EmitPresenceMessage(ctx context.Context, roomId, authorId uint64, nickname string, kind entity.MessageKind) (*dto.MessageEnvelope, error)
	// EmitSystemNotice appends a system-notice row; failures only log.
	EmitSystemNotice(ctx context.Context, roomId uint64, text string, metadata map[string]interface{})
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	relay         *websocket.Relay
	maxBodyLength int
	logger        logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, relay *websocket.Relay, maxBodyLength int, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		relay:         relay,
		maxBodyLength: maxBodyLength,
		logger:        log,
	}
}

func (s *chatService) Submit(ctx context.Context, roomId, authorId uint64, nickname, body string) (*dto.MessageEnvelope, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > s.maxBodyLength {
		return nil, ErrBodyTooLong
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Membership is the authorization precondition; a rejected send
	// is never queued.
	member, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ByUserID{UserID: authorId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}

	// 2. Durability point.
	message := entity.Message{
		RoomId:         roomId,
		UserId:         authorId,
		AuthorNickname: nickname,
		Body:           &body,
		Kind:           entity.KindTalk,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	// 3. The sender has implicitly read their own message. Not worth
	// failing a delivered send over.
	if err := uow.MembershipRepository().UpdateLastRead(ctx, roomId, authorId, message.Id); err != nil {
		s.logger.Warn("ChatService", "Failed to advance sender read pointer", map[string]interface{}{
			"room_id": roomId,
			"user_id": authorId,
			"error":   err.Error(),
		})
	}

	// 4-5. Best-effort live push; the relay logs and drops on failure.
	env := dto.NewMessageEnvelope(&message, nil)
	s.relay.BroadcastMessage(ctx, env)

	return env, nil
}

func (s *chatService) EmitPresenceMessage(ctx context.Context, roomId, authorId uint64, nickname string, kind entity.MessageKind) (*dto.MessageEnvelope, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message := entity.Message{
		RoomId:         roomId,
		UserId:         authorId,
		AuthorNickname: nickname,
		Kind:           kind,
		CreatedAt:      time.Now(),
	}
	displayBody := message.DisplayBody()
	message.Body = &displayBody

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	env := dto.NewMessageEnvelope(&message, nil)
	s.relay.BroadcastMessage(ctx, env)
	return env, nil
}

func (s *chatService) EmitSystemNotice(ctx context.Context, roomId uint64, text string, metadata map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message := entity.Message{
		RoomId:         roomId,
		UserId:         0, // system author
		AuthorNickname: "system",
		Body:           &text,
		Kind:           entity.KindNotice,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		s.logger.Error("ChatService", "Failed to persist system notice", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
		return
	}

	s.relay.BroadcastMessage(ctx, dto.NewMessageEnvelope(&message, nil))
}
