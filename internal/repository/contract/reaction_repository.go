package contract

import (
	"context"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
)

type ReactionRepository interface {
	Create(ctx context.Context, reaction *entity.Reaction) error
	// DeleteWhere hard-deletes matching rows and reports how many went.
	DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
