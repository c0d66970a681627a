package repo_interfaces

import (
	"context"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator domain.Operator) (domain.Operator, error)
	GetPinHashByOperatorID(ctx context.Context, operatorID string) (string, error)
}
