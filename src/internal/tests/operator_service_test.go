package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

type operatorRepoStub struct {
	createFn     func(ctx context.Context, operator domain.Operator) (domain.Operator, error)
	getPinHashFn func(ctx context.Context, operatorID string) (string, error)
}

func (s operatorRepoStub) Create(ctx context.Context, operator domain.Operator) (domain.Operator, error) {
	if s.createFn != nil {
		return s.createFn(ctx, operator)
	}
	return domain.Operator{}, nil
}

func (s operatorRepoStub) GetPinHashByOperatorID(ctx context.Context, operatorID string) (string, error) {
	if s.getPinHashFn != nil {
		return s.getPinHashFn(ctx, operatorID)
	}
	return "", nil
}

func TestOperatorServiceCreateOperatorSuccess(t *testing.T) {
	svc := services.NewOperatorService(operatorRepoStub{
		createFn: func(_ context.Context, operator domain.Operator) (domain.Operator, error) {
			if operator.PinHash == "" || operator.PinHash == "1234" {
				t.Fatal("expected hashed pin before persistence")
			}
			operator.ID = "op-1"
			operator.CreatedAt = time.Now().UTC()
			operator.UpdatedAt = time.Now().UTC()
			return operator, nil
		},
	})

	resp, err := svc.CreateOperator(context.Background(), models.CreateOperatorRequest{
		FullName: "Rosa Dimaculangan",
		Pin:      "1234",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
}

func TestOperatorServiceCreateOperatorValidationError(t *testing.T) {
	svc := services.NewOperatorService(operatorRepoStub{})

	_, err := svc.CreateOperator(context.Background(), models.CreateOperatorRequest{
		FullName: "Rosa Dimaculangan",
		Pin:      "12",
	})
	if err == nil {
		t.Fatal("expected validation error for short pin")
	}
}

func TestOperatorServiceVerifyPinSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to generate test hash: %v", err)
	}

	svc := services.NewOperatorService(operatorRepoStub{
		getPinHashFn: func(context.Context, string) (string, error) {
			return string(hash), nil
		},
	})

	resp, verifyErr := svc.VerifyPin(context.Background(), "1000000001", "4321")
	if verifyErr != nil {
		t.Fatalf("expected nil error, got %v", verifyErr)
	}
	if !resp.Success || resp.Data == nil || !resp.Data.IsValidPin {
		t.Fatal("expected successful pin verification")
	}
}

func TestOperatorServiceVerifyPinMismatch(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to generate test hash: %v", err)
	}

	svc := services.NewOperatorService(operatorRepoStub{
		getPinHashFn: func(context.Context, string) (string, error) {
			return string(hash), nil
		},
	})

	if _, err := svc.VerifyPin(context.Background(), "1000000001", "9999"); err == nil {
		t.Fatal("expected error for mismatched pin")
	}
}
