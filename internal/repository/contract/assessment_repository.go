package contract

import (
	"context"

	"ergo-assist-be/internal/entity"
	"ergo-assist-be/internal/repository/specification"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *entity.Assessment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assessment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assessment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
