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

type PaperRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaperMapper
}

func NewPaperRepository(db *gorm.DB) contract.PaperRepository {
	return &PaperRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaperMapper(),
	}
}

func (r *PaperRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaperRepositoryImpl) Create(ctx context.Context, paper *entity.Paper) error {
	m := r.mapper.ToModel(paper)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	uploadedBy := paper.UploadedBy
	*paper = *r.mapper.ToEntity(m)
	paper.UploadedBy = uploadedBy
	return nil
}

func (r *PaperRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Paper, error) {
	var models []*model.Paper
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Paper, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PaperRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Paper{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
