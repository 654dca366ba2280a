package contract

import (
	"context"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/repository/specification"
)

type PaperRepository interface {
	Create(ctx context.Context, paper *entity.Paper) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Paper, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
