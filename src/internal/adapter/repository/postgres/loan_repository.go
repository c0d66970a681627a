package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/logger"
	"github.com/shopspring/decimal"
)

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// NextAccountID draws the next id from the dedicated sequence. The issuing
// counter lives in the store, not in the services.
func (r *LoanRepository) NextAccountID(ctx context.Context) (int64, error) {
	const query = `SELECT nextval('loan_account_id_seq')`

	var id int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&id); err != nil {
		logger.Error("loan repository next account id failed", err, nil)
		return 0, fmt.Errorf("next account id: %w", err)
	}

	return id, nil
}

func (r *LoanRepository) Create(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	logger.Info("loan repository create", logger.Fields{
		"accountId":    account.AccountID,
		"customerName": account.CustomerName,
	})

	const query = `
INSERT INTO loan_accounts (
	account_id,
	customer_name,
	item_description,
	principal_amount,
	pawn_date,
	renewed_date,
	maturity_date,
	forfeit_date,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountID,
		account.CustomerName,
		account.ItemDescription,
		account.PrincipalAmount.StringFixed(2),
		account.PawnDate,
		account.RenewedDate,
		account.MaturityDate,
		account.ForfeitDate,
		account.Status,
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("loan repository create failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return domain.LoanAccount{}, fmt.Errorf("create loan account: %w", err)
	}

	logger.Info("loan repository create success", logger.Fields{
		"accountId": account.AccountID,
	})

	return account, nil
}

func (r *LoanRepository) GetByAccountID(ctx context.Context, accountID int64) (domain.LoanAccount, error) {
	logger.Info("loan repository get by account id", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT account_id, customer_name, item_description, principal_amount, pawn_date, renewed_date, maturity_date, forfeit_date, status, created_at, updated_at
FROM loan_accounts
WHERE account_id = $1`

	account, err := scanLoanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("loan repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.LoanAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("loan repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.LoanAccount{}, fmt.Errorf("get loan account by id: %w", err)
	}

	return account, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]domain.LoanAccount, error) {
	logger.Info("loan repository list", nil)

	const query = `
SELECT account_id, customer_name, item_description, principal_amount, pawn_date, renewed_date, maturity_date, forfeit_date, status, created_at, updated_at
FROM loan_accounts
ORDER BY account_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("loan repository list failed", err, nil)
		return nil, fmt.Errorf("list loan accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.LoanAccount, 0)
	for rows.Next() {
		account, err := scanLoanAccount(rows)
		if err != nil {
			logger.Error("loan repository list scan failed", err, nil)
			return nil, fmt.Errorf("scan loan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan accounts: %w", err)
	}

	return accounts, nil
}

func (r *LoanRepository) Update(ctx context.Context, account domain.LoanAccount) (domain.LoanAccount, error) {
	logger.Info("loan repository update", logger.Fields{
		"accountId": account.AccountID,
		"status":    account.Status,
	})

	const query = `
UPDATE loan_accounts
SET renewed_date = $2,
    maturity_date = $3,
    forfeit_date = $4,
    status = $5,
    updated_at = NOW()
WHERE account_id = $1
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountID,
		account.RenewedDate,
		account.MaturityDate,
		account.ForfeitDate,
		account.Status,
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoanAccount{}, commons.ErrRecordNotFound
		}
		logger.Error("loan repository update failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return domain.LoanAccount{}, fmt.Errorf("update loan account: %w", err)
	}

	logger.Info("loan repository update success", logger.Fields{
		"accountId": account.AccountID,
		"status":    account.Status,
	})

	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoanAccount(row rowScanner) (domain.LoanAccount, error) {
	var account domain.LoanAccount
	var principal string
	var status string

	if err := row.Scan(
		&account.AccountID,
		&account.CustomerName,
		&account.ItemDescription,
		&principal,
		&account.PawnDate,
		&account.RenewedDate,
		&account.MaturityDate,
		&account.ForfeitDate,
		&status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.LoanAccount{}, err
	}

	parsedPrincipal, err := decimal.NewFromString(principal)
	if err != nil {
		return domain.LoanAccount{}, fmt.Errorf("parse stored principal %q: %w", principal, err)
	}
	account.PrincipalAmount = parsedPrincipal

	parsedStatus, err := domain.ParseLoanStatus(status)
	if err != nil {
		return domain.LoanAccount{}, err
	}
	account.Status = parsedStatus

	return domain.Normalize(account), nil
}
