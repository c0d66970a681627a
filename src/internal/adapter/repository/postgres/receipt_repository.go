package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/logger"
	"github.com/shopspring/decimal"
)

type ReceiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	logger.Info("receipt repository create", logger.Fields{
		"referenceId": receipt.ReferenceID.String(),
		"accountId":   receipt.AccountID,
		"action":      receipt.Action,
	})

	const query = `
INSERT INTO loan_receipts (
	reference_id,
	account_id,
	action,
	reference_date,
	elapsed_days,
	principal,
	interest,
	service_fee,
	total_due,
	payment,
	change_amount,
	automatic
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		receipt.ReferenceID.String(),
		receipt.AccountID,
		receipt.Action,
		receipt.ReferenceDate,
		receipt.ElapsedDays,
		receipt.Principal.StringFixed(2),
		receipt.Interest.StringFixed(2),
		receipt.ServiceFee.StringFixed(2),
		receipt.TotalDue.StringFixed(2),
		receipt.Payment.StringFixed(2),
		receipt.Change.StringFixed(2),
		receipt.Automatic,
	).Scan(&receipt.CreatedAt); err != nil {
		logger.Error("receipt repository create failed", err, logger.Fields{
			"referenceId": receipt.ReferenceID.String(),
			"accountId":   receipt.AccountID,
		})
		return domain.Receipt{}, fmt.Errorf("create loan receipt: %w", err)
	}

	return receipt, nil
}

func (r *ReceiptRepository) ListByAccountID(ctx context.Context, accountID int64) ([]domain.Receipt, error) {
	logger.Info("receipt repository list by account id", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT reference_id, account_id, action, reference_date, elapsed_days, principal, interest, service_fee, total_due, payment, change_amount, automatic, created_at
FROM loan_receipts
WHERE account_id = $1
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("receipt repository list failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list loan receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]domain.Receipt, 0)
	for rows.Next() {
		var receipt domain.Receipt
		var action string
		amounts := make([]string, 6)

		if err := rows.Scan(
			&receipt.ReferenceID,
			&receipt.AccountID,
			&action,
			&receipt.ReferenceDate,
			&receipt.ElapsedDays,
			&amounts[0],
			&amounts[1],
			&amounts[2],
			&amounts[3],
			&amounts[4],
			&amounts[5],
			&receipt.Automatic,
			&receipt.CreatedAt,
		); err != nil {
			logger.Error("receipt repository list scan failed", err, nil)
			return nil, fmt.Errorf("scan loan receipt: %w", err)
		}

		parsedAction, err := domain.ParseTransactionAction(action)
		if err != nil {
			return nil, err
		}
		receipt.Action = parsedAction

		targets := []*decimal.Decimal{
			&receipt.Principal,
			&receipt.Interest,
			&receipt.ServiceFee,
			&receipt.TotalDue,
			&receipt.Payment,
			&receipt.Change,
		}
		for i, raw := range amounts {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("parse stored receipt amount %q: %w", raw, err)
			}
			*targets[i] = parsed
		}

		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan receipts: %w", err)
	}

	return receipts, nil
}
