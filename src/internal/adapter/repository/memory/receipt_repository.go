package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
)

type ReceiptRepository struct {
	mu       sync.Mutex
	receipts []domain.Receipt
}

func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{}
}

func (r *ReceiptRepository) Create(_ context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt.CreatedAt = time.Now().UTC()
	r.receipts = append(r.receipts, receipt)

	return receipt, nil
}

func (r *ReceiptRepository) ListByAccountID(_ context.Context, accountID int64) ([]domain.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Receipt, 0)
	for _, receipt := range r.receipts {
		if receipt.AccountID == accountID {
			out = append(out, receipt)
		}
	}

	return out, nil
}
