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

type ReactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewReactionRepository(db *gorm.DB) contract.ReactionRepository {
	return &ReactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ReactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create relies on the uniq_message_user_emoji constraint; callers treat
// gorm.ErrDuplicatedKey as the race-losing branch of the duplicate check.
func (r *ReactionRepositoryImpl) Create(ctx context.Context, reaction *entity.Reaction) error {
	m := r.mapper.ReactionToModel(reaction)
	m.Id = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reaction = *r.mapper.ReactionToEntity(m)
	return nil
}

func (r *ReactionRepositoryImpl) DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.Reaction{})
	return res.RowsAffected, res.Error
}

func (r *ReactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error) {
	var m model.Reaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReactionToEntity(&m), nil
}

func (r *ReactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error) {
	var models []*model.Reaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Reaction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReactionToEntity(m)
	}
	return entities, nil
}

func (r *ReactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Reaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
