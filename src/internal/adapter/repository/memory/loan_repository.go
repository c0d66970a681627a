package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
)

// LoanRepository is a map-backed store with its own issuing counter. It
// serves the tests and the no-postgres dev mode; the services cannot tell it
// apart from the SQL-backed repository.
type LoanRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]domain.LoanAccount
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{accounts: make(map[int64]domain.LoanAccount)}
}

func (r *LoanRepository) NextAccountID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID, nil
}

func (r *LoanRepository) Create(_ context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.AccountID] = account

	return account, nil
}

func (r *LoanRepository) GetByAccountID(_ context.Context, accountID int64) (domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.LoanAccount{}, commons.ErrRecordNotFound
	}

	return domain.Normalize(account), nil
}

func (r *LoanRepository) List(_ context.Context) ([]domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]domain.LoanAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, domain.Normalize(account))
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountID < accounts[j].AccountID
	})

	return accounts, nil
}

func (r *LoanRepository) Update(_ context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.AccountID]
	if !ok {
		return domain.LoanAccount{}, commons.ErrRecordNotFound
	}

	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = time.Now().UTC()
	r.accounts[account.AccountID] = account

	return account, nil
}
