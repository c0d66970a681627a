package repo_interfaces

import (
	"context"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error)
	ListByAccountID(ctx context.Context, accountID int64) ([]domain.Receipt, error)
}
