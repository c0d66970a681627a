package repo_interfaces

import (
	"context"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
)

type LoanRepository interface {
	NextAccountID(ctx context.Context) (int64, error)
	Create(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error)
	GetByAccountID(ctx context.Context, accountID int64) (domain.LoanAccount, error)
	List(ctx context.Context) ([]domain.LoanAccount, error)
	Update(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error)
}
