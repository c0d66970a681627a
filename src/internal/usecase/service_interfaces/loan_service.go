package service_interfaces

import (
	"context"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
)

type LoanService interface {
	OpenLoan(ctx context.Context, req models.OpenLoanRequest) (commons.Response[models.LoanAccountResponse], error)
	GetLoan(ctx context.Context, accountID string) (commons.Response[models.LoanAccountResponse], error)
	ListLoans(ctx context.Context) (commons.Response[models.ListLoansResponse], error)
	ApplyTransaction(ctx context.Context, req models.LoanTransactionRequest) (commons.Response[models.LoanTransactionResponse], error)
	ListReceipts(ctx context.Context, accountID string) (commons.Response[models.ListReceiptsResponse], error)
}
