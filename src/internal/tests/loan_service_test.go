package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newLoanService() *services.LoanService {
	engine := services.NewLoanEngine(services.NewInterestCalculator(), decimal.NewFromFloat(10.0))
	return services.NewLoanService(memory.NewLoanRepository(), memory.NewReceiptRepository(), nil, engine)
}

func paymentOf(amount float64) *decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	return &d
}

func TestLoanServiceOpenLoanDerivesDates(t *testing.T) {
	svc := newLoanService()

	resp, err := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
		CustomerName:    "Maria Santos",
		ItemDescription: "14k gold necklace",
		PrincipalAmount: decimal.NewFromInt(5000),
		PawnDate:        "2024-01-01",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}

	loan := *resp.Data
	if loan.AccountID != 1 {
		t.Fatalf("expected first account id 1, got %d", loan.AccountID)
	}
	if loan.RenewedDate != "2024-01-01" {
		t.Fatalf("expected renewed date equal to pawn date, got %s", loan.RenewedDate)
	}
	if loan.MaturityDate != "2024-01-31" {
		t.Fatalf("expected maturity 2024-01-31, got %s", loan.MaturityDate)
	}
	if loan.ForfeitDate != "2024-04-30" {
		t.Fatalf("expected forfeit 2024-04-30, got %s", loan.ForfeitDate)
	}
	if loan.Status != "ACTIVE" {
		t.Fatalf("expected status ACTIVE, got %s", loan.Status)
	}
}

func TestLoanServiceOpenLoanValidationError(t *testing.T) {
	svc := newLoanService()

	_, err := svc.OpenLoan(context.Background(), models.OpenLoanRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty open loan request")
	}
}

func TestLoanServiceGetLoanNotFound(t *testing.T) {
	svc := newLoanService()

	resp, err := svc.GetLoan(context.Background(), "42")
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected Account not found message, got %q", resp.Message)
	}
}

func TestLoanServiceSequentialAccountIDs(t *testing.T) {
	svc := newLoanService()

	for i := 1; i <= 3; i++ {
		resp, err := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
			CustomerName:    "Juan Cruz",
			ItemDescription: "wristwatch",
			PrincipalAmount: decimal.NewFromInt(1500),
			PawnDate:        "2024-02-01",
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if resp.Data.AccountID != int64(i) {
			t.Fatalf("expected account id %d, got %d", i, resp.Data.AccountID)
		}
	}

	list, err := svc.ListLoans(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if list.Data.Count != 3 {
		t.Fatalf("expected 3 loans, got %d", list.Data.Count)
	}
}

func TestLoanServiceRenewPersistsNewAnchor(t *testing.T) {
	svc := newLoanService()

	opened, err := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
		CustomerName:    "Maria Santos",
		ItemDescription: "14k gold necklace",
		PrincipalAmount: decimal.NewFromInt(5000),
		PawnDate:        "2024-01-01",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	resp, err := svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     opened.Data.AccountID,
		Action:        "RENEW",
		ReferenceDate: "2024-01-20",
		Payment:       paymentOf(210.00),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Breakdown.TotalDue != "210.00" {
		t.Fatalf("expected total due 210.00, got %s", resp.Data.Breakdown.TotalDue)
	}
	if resp.Data.Account.ForfeitDate != "2024-05-19" {
		t.Fatalf("expected new forfeit 2024-05-19, got %s", resp.Data.Account.ForfeitDate)
	}

	reloaded, err := svc.GetLoan(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if reloaded.Data.RenewedDate != "2024-01-20" {
		t.Fatalf("expected persisted renewed date 2024-01-20, got %s", reloaded.Data.RenewedDate)
	}
}

func TestLoanServiceRedeemThenRejectFurtherTransactions(t *testing.T) {
	svc := newLoanService()

	opened, _ := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
		CustomerName:    "Maria Santos",
		ItemDescription: "14k gold necklace",
		PrincipalAmount: decimal.NewFromInt(5000),
		PawnDate:        "2024-01-01",
	})

	redeemed, err := svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     opened.Data.AccountID,
		Action:        "REDEEM",
		ReferenceDate: "2024-01-25",
		Payment:       paymentOf(5300.00),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if redeemed.Data.Account.Status != "REDEEMED" {
		t.Fatalf("expected status REDEEMED, got %s", redeemed.Data.Account.Status)
	}
	if redeemed.Data.Breakdown.Change != "90.00" {
		t.Fatalf("expected change 90.00, got %s", redeemed.Data.Breakdown.Change)
	}

	_, err = svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     opened.Data.AccountID,
		Action:        "RENEW",
		ReferenceDate: "2024-02-01",
		Payment:       paymentOf(1000.00),
	})
	if !errors.Is(err, commons.ErrAccountNotActive) {
		t.Fatalf("expected ErrAccountNotActive after redemption, got %v", err)
	}
}

func TestLoanServiceInsufficientPaymentLeavesAccountUnchanged(t *testing.T) {
	svc := newLoanService()

	opened, _ := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
		CustomerName:    "Maria Santos",
		ItemDescription: "14k gold necklace",
		PrincipalAmount: decimal.NewFromInt(5000),
		PawnDate:        "2024-01-01",
	})

	resp, err := svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     opened.Data.AccountID,
		Action:        "RENEW",
		ReferenceDate: "2024-01-20",
		Payment:       paymentOf(5.00),
	})
	if !errors.Is(err, commons.ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected error envelope for insufficient payment")
	}

	reloaded, _ := svc.GetLoan(context.Background(), "1")
	if reloaded.Data.RenewedDate != "2024-01-01" || reloaded.Data.Status != "ACTIVE" {
		t.Fatal("insufficient payment must not mutate the stored account")
	}
}

func TestLoanServiceAutomaticForfeitWritesForfeitReceipt(t *testing.T) {
	svc := newLoanService()

	opened, _ := svc.OpenLoan(context.Background(), models.OpenLoanRequest{
		CustomerName:    "Maria Santos",
		ItemDescription: "14k gold necklace",
		PrincipalAmount: decimal.NewFromInt(5000),
		PawnDate:        "2024-01-01",
	})

	resp, err := svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     opened.Data.AccountID,
		Action:        "REDEEM",
		ReferenceDate: "2024-05-01",
		Payment:       paymentOf(10000.00),
	})
	if err != nil {
		t.Fatalf("automatic forfeiture must not be an error, got %v", err)
	}
	if resp.Data.Account.Status != "FORFEITED" {
		t.Fatalf("expected FORFEITED, got %s", resp.Data.Account.Status)
	}
	if !resp.Data.Breakdown.Automatic {
		t.Fatal("expected automatic breakdown flag")
	}

	receipts, err := svc.ListReceipts(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if receipts.Data.Count != 1 {
		t.Fatalf("expected one receipt, got %d", receipts.Data.Count)
	}
	if receipts.Data.Receipts[0].Action != "FORFEIT" {
		t.Fatalf("expected receipt action FORFEIT, got %s", receipts.Data.Receipts[0].Action)
	}
	if !receipts.Data.Receipts[0].Automatic {
		t.Fatal("expected receipt marked automatic")
	}
}

func TestLoanServiceTransactionValidationError(t *testing.T) {
	svc := newLoanService()

	_, err := svc.ApplyTransaction(context.Background(), models.LoanTransactionRequest{
		AccountID:     0,
		Action:        "PAWN",
		ReferenceDate: "01/20/2024",
	})
	if err == nil {
		t.Fatal("expected validation error for malformed transaction request")
	}
}
