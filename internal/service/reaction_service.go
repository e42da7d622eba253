package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"
	"groupchat-be/internal/websocket"

	"gorm.io/gorm"
)

const maxEmojiLength = 32

type IReactionService interface {
	Add(ctx context.Context, messageId, userId uint64, emoji string) (*dto.ReactionResponse, error)
	Remove(ctx context.Context, messageId, userId uint64, emoji string) (*dto.ReactionResponse, error)
	Summarize(ctx context.Context, messageId, userId uint64) ([]entity.ReactionSummary, error)
	ListByMessages(ctx context.Context, messageIds []uint64) (map[uint64][]*entity.Reaction, error)
}

type reactionService struct {
	uowFactory unitofwork.RepositoryFactory
	relay      *websocket.Relay
}

func NewReactionService(uowFactory unitofwork.RepositoryFactory, relay *websocket.Relay) IReactionService {
	return &reactionService{
		uowFactory: uowFactory,
		relay:      relay,
	}
}

func (s *reactionService) Add(ctx context.Context, messageId, userId uint64, emoji string) (*dto.ReactionResponse, error) {
	if emoji == "" || utf8.RuneCountInString(emoji) > maxEmojiLength {
		return nil, ErrEmojiTooLong
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := s.memberMessage(ctx, uow, messageId, userId)
	if err != nil {
		return nil, err
	}

	// Pre-read gives the common duplicate a friendly path; the unique
	// constraint stays the final guard against the race.
	existing, err := uow.ReactionRepository().FindOne(ctx,
		specification.ByMessageID{MessageID: messageId},
		specification.ByUserID{UserID: userId},
		specification.ByEmoji{Emoji: emoji},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReaction
	}

	reaction := entity.Reaction{
		MessageId: messageId,
		UserId:    userId,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	if err := uow.ReactionRepository().Create(ctx, &reaction); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReaction
		}
		return nil, err
	}

	s.relay.BroadcastReaction(ctx, &dto.ReactionEvent{
		RoomId:    message.RoomId,
		MessageId: messageId,
		UserId:    userId,
		Emoji:     emoji,
	})

	return s.response(ctx, uow, messageId)
}

func (s *reactionService) Remove(ctx context.Context, messageId, userId uint64, emoji string) (*dto.ReactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := s.memberMessage(ctx, uow, messageId, userId)
	if err != nil {
		return nil, err
	}

	deleted, err := uow.ReactionRepository().DeleteWhere(ctx,
		specification.ByMessageID{MessageID: messageId},
		specification.ByUserID{UserID: userId},
		specification.ByEmoji{Emoji: emoji},
	)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrReactionNotFound
	}

	s.relay.BroadcastReaction(ctx, &dto.ReactionEvent{
		RoomId:    message.RoomId,
		MessageId: messageId,
		UserId:    userId,
		Emoji:     emoji,
		Removed:   true,
	})

	return s.response(ctx, uow, messageId)
}

func (s *reactionService) Summarize(ctx context.Context, messageId, userId uint64) ([]entity.ReactionSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Reads carry the same membership precondition as mutations.
	if _, err := s.memberMessage(ctx, uow, messageId, userId); err != nil {
		return nil, err
	}

	reactions, err := uow.ReactionRepository().FindAll(ctx,
		specification.ByMessageID{MessageID: messageId},
	)
	if err != nil {
		return nil, err
	}
	return entity.SummarizeReactions(reactions), nil
}

func (s *reactionService) ListByMessages(ctx context.Context, messageIds []uint64) (map[uint64][]*entity.Reaction, error) {
	result := make(map[uint64][]*entity.Reaction)
	if len(messageIds) == 0 {
		return result, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reactions, err := uow.ReactionRepository().FindAll(ctx,
		specification.ByMessageIDs{MessageIDs: messageIds},
	)
	if err != nil {
		return nil, err
	}
	for _, r := range reactions {
		result[r.MessageId] = append(result[r.MessageId], r)
	}
	return result, nil
}

// memberMessage resolves the message and checks the caller is an active
// member of its room.
func (s *reactionService) memberMessage(ctx context.Context, uow unitofwork.UnitOfWork, messageId, userId uint64) (*entity.Message, error) {
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	member, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: message.RoomId},
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}
	return message, nil
}

func (s *reactionService) response(ctx context.Context, uow unitofwork.UnitOfWork, messageId uint64) (*dto.ReactionResponse, error) {
	reactions, err := uow.ReactionRepository().FindAll(ctx,
		specification.ByMessageID{MessageID: messageId},
	)
	if err != nil {
		return nil, err
	}
	return &dto.ReactionResponse{
		MessageId: messageId,
		Summaries: entity.SummarizeReactions(reactions),
	}, nil
}
