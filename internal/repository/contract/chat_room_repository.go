package contract

import (
	"context"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, room *entity.ChatRoom) error
	Update(ctx context.Context, room *entity.ChatRoom) error
	// Deactivate flips the active flag and reports whether this call did the
	// flip, so concurrent closers can tell who won.
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
