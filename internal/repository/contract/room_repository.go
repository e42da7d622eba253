package contract

import (
	"context"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/repository/specification"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
