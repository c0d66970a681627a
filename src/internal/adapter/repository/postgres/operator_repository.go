package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/logger"
	"github.com/lib/pq"
)

type OperatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(db *sql.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) Create(ctx context.Context, operator domain.Operator) (domain.Operator, error) {
	logger.Info("operator repository create", logger.Fields{
		"operatorId": operator.OperatorID,
		"fullName":   operator.FullName,
	})

	const query = `
INSERT INTO operators (
	operator_id,
	full_name,
	pin_hash
) VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		operator.OperatorID,
		operator.FullName,
		operator.PinHash,
	).Scan(&operator.ID, &operator.CreatedAt, &operator.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.Operator{}, fmt.Errorf("operator id already exists")
		}
		logger.Error("operator repository create failed", err, logger.Fields{
			"operatorId": operator.OperatorID,
		})
		return domain.Operator{}, fmt.Errorf("create operator: %w", err)
	}

	logger.Info("operator repository create success", logger.Fields{
		"id":         operator.ID,
		"operatorId": operator.OperatorID,
	})

	return operator, nil
}

func (r *OperatorRepository) GetPinHashByOperatorID(ctx context.Context, operatorID string) (string, error) {
	logger.Info("operator repository get pin hash", logger.Fields{
		"operatorId": operatorID,
	})

	const query = `
SELECT pin_hash
FROM operators
WHERE operator_id = $1`

	var pinHash string
	if err := r.db.QueryRowContext(ctx, query, operatorID).Scan(&pinHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("operator repository record not found", logger.Fields{
				"operatorId": operatorID,
			})
			return "", commons.ErrRecordNotFound
		}
		logger.Error("operator repository get pin hash failed", err, logger.Fields{
			"operatorId": operatorID,
		})
		return "", fmt.Errorf("get operator pin hash: %w", err)
	}

	return pinHash, nil
}
