package implementation

import (
	"context"
	"errors"
	"time"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/mapper"
	"study-stream-be/internal/model"
	"study-stream-be/internal/repository/contract"
	"study-stream-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRoomRepository(db *gorm.DB) contract.ChatRoomRepository {
	return &ChatRoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRoomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRoomRepositoryImpl) Create(ctx context.Context, room *entity.ChatRoom) error {
	m := r.mapper.RoomToModel(room)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.RoomToEntity(m)
	return nil
}

func (r *ChatRoomRepositoryImpl) Update(ctx context.Context, room *entity.ChatRoom) error {
	m := r.mapper.RoomToModel(room)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.RoomToEntity(m)
	return nil
}

func (r *ChatRoomRepositoryImpl) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ChatRoom{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ChatRoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoomToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error) {
	var models []*model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatRoom, len(models))
	for i, m := range models {
		entities[i] = r.mapper.RoomToEntity(m)
	}
	return entities, nil
}

func (r *ChatRoomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatRoom{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
