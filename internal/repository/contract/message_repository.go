package contract

import (
	"context"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/repository/specification"
)

// MessageRepository is append-only: messages are never updated or deleted
// through this contract. Create inserts the message and its attachments as one
// atomic operation.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
