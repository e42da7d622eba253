package service

import (
	"context"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

type IHistoryService interface {
	// GetMessages walks the log backward from beforeId (0 = newest),
	// newest first inside the page, with reaction summaries merged in
	// one batched lookup.
	GetMessages(ctx context.Context, roomId, userId uint64, beforeId uint64, pageSize int) (*dto.HistoryPageResponse, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory) IHistoryService {
	return &historyService{uowFactory: uowFactory}
}

func (s *historyService) GetMessages(ctx context.Context, roomId, userId uint64, beforeId uint64, pageSize int) (*dto.HistoryPageResponse, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}

	specs := []specification.Specification{
		specification.ByRoomID{RoomID: roomId},
		specification.OrderByIdDesc{},
		// One extra row decides has_more without a second count query.
		specification.Limit{N: pageSize + 1},
	}
	if beforeId > 0 {
		specs = append(specs, specification.IdBefore{Id: beforeId})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > pageSize
	if hasMore {
		messages = messages[:pageSize]
	}

	res := &dto.HistoryPageResponse{
		Messages: make([]*dto.MessageEnvelope, 0, len(messages)),
		HasMore:  hasMore,
	}
	if len(messages) == 0 {
		return res, nil
	}

	// One batched reaction query keyed by the page's id set.
	messageIds := make([]uint64, len(messages))
	for i, m := range messages {
		messageIds[i] = m.Id
	}
	reactions, err := uow.ReactionRepository().FindAll(ctx,
		specification.ByMessageIDs{MessageIDs: messageIds},
	)
	if err != nil {
		return nil, err
	}

	byMessage := make(map[uint64][]*entity.Reaction)
	for _, r := range reactions {
		byMessage[r.MessageId] = append(byMessage[r.MessageId], r)
	}

	for _, m := range messages {
		res.Messages = append(res.Messages, dto.NewMessageEnvelope(m, entity.SummarizeReactions(byMessage[m.Id])))
	}
	res.OldestId = messages[len(messages)-1].Id

	return res, nil
}
