package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type OperatorService struct {
	operatorRepo repo_interfaces.OperatorRepository
}

func NewOperatorService(operatorRepo repo_interfaces.OperatorRepository) *OperatorService {
	return &OperatorService{operatorRepo: operatorRepo}
}

func (s *OperatorService) CreateOperator(ctx context.Context, req models.CreateOperatorRequest) (commons.Response[models.CreateOperatorResponse], error) {
	logger.Info("operator service create operator request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("operator service create operator validation failed", err, nil)
		return commons.ErrorResponse[models.CreateOperatorResponse]("validation failed", err.Error()), err
	}

	hashedPin, err := hashOperatorPin(strings.TrimSpace(req.Pin))
	if err != nil {
		logger.Error("operator service create operator hash pin failed", err, nil)
		return commons.ErrorResponse[models.CreateOperatorResponse]("failed to create operator", "failed to hash pin"), err
	}

	operator := domain.Operator{
		OperatorID: generateOperatorID(),
		FullName:   strings.TrimSpace(req.FullName),
		PinHash:    hashedPin,
	}

	created, err := s.operatorRepo.Create(ctx, operator)
	if err != nil {
		logger.Error("operator service create operator repository failed", err, logger.Fields{
			"operatorId": operator.OperatorID,
		})
		return commons.ErrorResponse[models.CreateOperatorResponse]("failed to create operator", "Unable to create operator right now"), err
	}

	response := models.CreateOperatorResponse{
		ID:         created.ID,
		OperatorID: created.OperatorID,
		FullName:   created.FullName,
	}

	logger.Info("operator service create operator success", logger.Fields{
		"id":         response.ID,
		"operatorId": response.OperatorID,
	})

	return commons.SuccessResponse("operator created successfully", response), nil
}

func (s *OperatorService) VerifyPin(ctx context.Context, operatorID string, pin string) (commons.Response[models.VerifyPinResponse], error) {
	logger.Info("operator service verify pin request", logger.Fields{
		"payload": logger.SanitizePayload(map[string]string{
			"operatorId": operatorID,
			"pin":        pin,
		}),
	})

	operatorID = strings.TrimSpace(operatorID)
	pin = strings.TrimSpace(pin)

	if operatorID == "" {
		return commons.ErrorResponse[models.VerifyPinResponse]("validation failed", "operatorId is required"), fmt.Errorf("operatorId is required")
	}
	if pin == "" {
		return commons.ErrorResponse[models.VerifyPinResponse]("validation failed", "pin is required"), fmt.Errorf("pin is required")
	}

	storedPinHash, err := s.operatorRepo.GetPinHashByOperatorID(ctx, operatorID)
	if err != nil {
		logger.Error("operator service verify pin lookup failed", err, logger.Fields{
			"operatorId": operatorID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.VerifyPinResponse]("Operator not found"), err
		}
		return commons.ErrorResponse[models.VerifyPinResponse]("failed to verify pin", "Unable to verify pin right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPinHash), []byte(pin)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			logger.Info("operator service verify pin mismatch", logger.Fields{
				"operatorId": operatorID,
			})
			return commons.ErrorResponse[models.VerifyPinResponse]("invalid pin", "provided pin does not match"), fmt.Errorf("invalid pin")
		}
		wrappedErr := fmt.Errorf("verify operator pin: %w", err)
		logger.Error("operator service verify pin compare failed", wrappedErr, logger.Fields{
			"operatorId": operatorID,
		})
		return commons.ErrorResponse[models.VerifyPinResponse]("failed to verify pin", "Unable to verify pin right now"), wrappedErr
	}

	response := models.VerifyPinResponse{
		OperatorID: operatorID,
		IsValidPin: true,
	}

	logger.Info("operator service verify pin success", logger.Fields{
		"operatorId": operatorID,
		"isValidPin": true,
	})

	return commons.SuccessResponse("pin verified successfully", response), nil
}

func generateOperatorID() string {
	return fmt.Sprintf("%010d", time.Now().UnixNano()%10_000_000_000)
}

func hashOperatorPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash operator pin: %w", err)
	}

	return string(hashed), nil
}
