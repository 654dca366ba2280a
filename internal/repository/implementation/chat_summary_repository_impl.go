package implementation

import (
	"context"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/mapper"
	"study-stream-be/internal/model"
	"study-stream-be/internal/repository/contract"
	"study-stream-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatSummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSummaryRepository(db *gorm.DB) contract.ChatSummaryRepository {
	return &ChatSummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSummaryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSummaryRepositoryImpl) Create(ctx context.Context, summary *entity.ChatSummary) error {
	m := r.mapper.SummaryToModel(summary)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.SummaryToEntity(m)
	return nil
}

func (r *ChatSummaryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSummary, error) {
	var models []*model.ChatSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatSummary, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SummaryToEntity(m)
	}
	return entities, nil
}

func (r *ChatSummaryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSummary{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
