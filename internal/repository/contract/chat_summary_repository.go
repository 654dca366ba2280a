package contract

import (
	"context"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/repository/specification"
)

type ChatSummaryRepository interface {
	Create(ctx context.Context, summary *entity.ChatSummary) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
