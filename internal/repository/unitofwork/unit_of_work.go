package unitofwork

import (
	"context"

	"groupchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RoomRepository() contract.RoomRepository
	MembershipRepository() contract.MembershipRepository
	MessageRepository() contract.MessageRepository
	ReactionRepository() contract.ReactionRepository
}
