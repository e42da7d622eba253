package implementation

import (
	"context"
	"errors"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/mapper"
	"groupchat-be/internal/model"
	"groupchat-be/internal/repository/contract"
	"groupchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MembershipRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, member *entity.Membership) error {
	m := r.mapper.MembershipToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MembershipToEntity(m)
	return nil
}

func (r *MembershipRepositoryImpl) Update(ctx context.Context, member *entity.Membership) error {
	m := r.mapper.MembershipToModel(member)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MembershipToEntity(m)
	return nil
}

func (r *MembershipRepositoryImpl) UpdateLastRead(ctx context.Context, roomId, userId, messageId uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.RoomMember{}).
		Where("room_id = ? AND user_id = ? AND is_active = ?", roomId, userId, true).
		Update("last_read_msg_id", messageId).Error
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	var m model.RoomMember
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MembershipToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error) {
	var models []*model.RoomMember
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Membership, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MembershipToEntity(m)
	}
	return entities, nil
}

func (r *MembershipRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RoomMember{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
