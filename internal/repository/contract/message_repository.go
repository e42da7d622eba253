package contract

import (
	"context"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
)

type MessageRepository interface {
	// Create appends to the log; the store assigns the id and stamps the
	// creation time. The entity is updated in place with both.
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteWhere is the bulk retention sweep; the only delete path the
	// log exposes.
	DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error)
}
