package service_interfaces

import (
	"context"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
)

type OperatorService interface {
	CreateOperator(ctx context.Context, req models.CreateOperatorRequest) (commons.Response[models.CreateOperatorResponse], error)
	VerifyPin(ctx context.Context, operatorID string, pin string) (commons.Response[models.VerifyPinResponse], error)
}
