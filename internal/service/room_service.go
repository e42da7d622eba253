package service

import (
	"context"
	"errors"
	"time"

	"groupchat-be/internal/dto"
	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"

	"gorm.io/gorm"
)

const defaultMaxParticipants = 100

type IRoomService interface {
	CreateRoom(ctx context.Context, creatorId uint64, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	FindActiveRoomForGroup(ctx context.Context, groupId uint64) (*dto.RoomResponse, error)
	DeactivateRoom(ctx context.Context, actorId, roomId uint64) error
	Join(ctx context.Context, roomId, userId uint64) (*dto.MemberResponse, error)
	Leave(ctx context.Context, roomId, userId uint64) error
	IsActiveMember(ctx context.Context, roomId, userId uint64) (bool, error)
	ListActiveMembers(ctx context.Context, roomId uint64) (*dto.MemberListResponse, error)
	UpdateLastRead(ctx context.Context, roomId, userId, messageId uint64) (*dto.UpdateLastReadResponse, error)
}

type roomService struct {
	uowFactory unitofwork.RepositoryFactory
	notices    ISystemNoticeEmitter
}

// ISystemNoticeEmitter decouples room lifecycle from the message log;
// the chat service implements it.
type ISystemNoticeEmitter interface {
	EmitSystemNotice(ctx context.Context, roomId uint64, text string, metadata map[string]interface{})
}

func NewRoomService(uowFactory unitofwork.RepositoryFactory, notices ISystemNoticeEmitter) IRoomService {
	return &roomService{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, creatorId uint64, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() //nolint:errcheck // no-op after commit

	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = defaultMaxParticipants
	}

	room := entity.Room{
		GroupId:         req.GroupId,
		Name:            req.Name,
		Description:     req.Description,
		MaxParticipants: maxParticipants,
		IsActive:        true,
		CreatedBy:       creatorId,
		CreatedAt:       time.Now(),
	}
	if err := uow.RoomRepository().Create(ctx, &room); err != nil {
		// Partial unique index on (group_id) where is_active.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomAlreadyExists
		}
		return nil, err
	}

	// The creator joins immediately as admin.
	member := entity.Membership{
		RoomId:   room.Id,
		UserId:   creatorId,
		Role:     entity.RoleAdmin,
		IsActive: true,
		JoinedAt: time.Now(),
	}
	if err := uow.MembershipRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewRoomResponse(&room), nil
}

func (s *roomService) FindActiveRoomForGroup(ctx context.Context, groupId uint64) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx,
		specification.ByGroupID{GroupID: groupId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return dto.NewRoomResponse(room), nil
}

func (s *roomService) DeactivateRoom(ctx context.Context, actorId, roomId uint64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback() //nolint:errcheck // no-op after commit

	room, err := s.findActiveRoom(ctx, uow, roomId)
	if err != nil {
		return err
	}

	member, err := s.findActiveMembership(ctx, uow, roomId, actorId)
	if err != nil {
		return err
	}
	if member == nil || member.Role != entity.RoleAdmin {
		return ErrNotAMember
	}

	room.IsActive = false
	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Announce only once the deactivation is durable; a failed update
	// must not leave a closure notice in a live room.
	if s.notices != nil {
		s.notices.EmitSystemNotice(ctx, roomId, "This room has been closed.", map[string]interface{}{
			"event": "room_deactivated",
		})
	}
	return nil
}

func (s *roomService) Join(ctx context.Context, roomId, userId uint64) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() //nolint:errcheck // no-op after commit

	room, err := s.findActiveRoom(ctx, uow, roomId)
	if err != nil {
		return nil, err
	}

	// One row per (room, user), ever. Rejoin reactivates it.
	existing, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsActive {
		return nil, ErrAlreadyMember
	}

	count, err := uow.MembershipRepository().Count(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if count >= int64(room.MaxParticipants) {
		return nil, ErrRoomFull
	}

	if existing != nil {
		existing.IsActive = true
		existing.JoinedAt = time.Now()
		existing.LeftAt = nil
		if err := uow.MembershipRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		return dto.NewMemberResponse(existing), nil
	}

	member := entity.Membership{
		RoomId:   roomId,
		UserId:   userId,
		Role:     entity.RoleMember,
		IsActive: true,
		JoinedAt: time.Now(),
	}
	if err := uow.MembershipRepository().Create(ctx, &member); err != nil {
		// uniq_room_member: a concurrent join from another process won
		// the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewMemberResponse(&member), nil
}

func (s *roomService) Leave(ctx context.Context, roomId, userId uint64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := s.findActiveMembership(ctx, uow, roomId, userId)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotAMember
	}

	now := time.Now()
	member.IsActive = false
	member.LeftAt = &now
	return uow.MembershipRepository().Update(ctx, member)
}

func (s *roomService) IsActiveMember(ctx context.Context, roomId, userId uint64) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := s.findActiveMembership(ctx, uow, roomId, userId)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (s *roomService) ListActiveMembers(ctx context.Context, roomId uint64) (*dto.MemberListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	members, err := uow.MembershipRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.MemberListResponse{
		Members: make([]*dto.MemberResponse, len(members)),
		Count:   len(members),
	}
	for i, m := range members {
		res.Members[i] = dto.NewMemberResponse(m)
	}
	return res, nil
}

func (s *roomService) UpdateLastRead(ctx context.Context, roomId, userId, messageId uint64) (*dto.UpdateLastReadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := s.findActiveMembership(ctx, uow, roomId, userId)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}

	if err := uow.MembershipRepository().UpdateLastRead(ctx, roomId, userId, messageId); err != nil {
		return nil, err
	}

	unread, err := uow.MessageRepository().Count(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.IdAfter{Id: messageId},
	)
	if err != nil {
		return nil, err
	}

	return &dto.UpdateLastReadResponse{
		LastReadMsgId: messageId,
		UnreadCount:   unread,
	}, nil
}

func (s *roomService) findActiveRoom(ctx context.Context, uow unitofwork.UnitOfWork, roomId uint64) (*entity.Room, error) {
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *roomService) findActiveMembership(ctx context.Context, uow unitofwork.UnitOfWork, roomId, userId uint64) (*entity.Membership, error) {
	return uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{},
	)
}
