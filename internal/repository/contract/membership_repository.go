package contract

import (
	"context"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
)

type MembershipRepository interface {
	Create(ctx context.Context, member *entity.Membership) error
	Update(ctx context.Context, member *entity.Membership) error
	// UpdateLastRead moves the read pointer without touching the rest of
	// the row.
	UpdateLastRead(ctx context.Context, roomId, userId, messageId uint64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
