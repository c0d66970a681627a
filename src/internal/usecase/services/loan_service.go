package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/api-sage/pawnshop-processor/src/internal/logger"
	"github.com/api-sage/pawnshop-processor/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanService struct {
	loanRepo        repo_interfaces.LoanRepository
	receiptRepo     repo_interfaces.ReceiptRepository
	operatorService service_interfaces.OperatorService
	engine          *LoanEngine
}

// NewLoanService wires the lifecycle engine to its collaborators. The
// operator service may be nil; counter transactions are then accepted
// without a PIN check.
func NewLoanService(
	loanRepo repo_interfaces.LoanRepository,
	receiptRepo repo_interfaces.ReceiptRepository,
	operatorService service_interfaces.OperatorService,
	engine *LoanEngine,
) *LoanService {
	return &LoanService{
		loanRepo:        loanRepo,
		receiptRepo:     receiptRepo,
		operatorService: operatorService,
		engine:          engine,
	}
}

func (s *LoanService) OpenLoan(ctx context.Context, req models.OpenLoanRequest) (commons.Response[models.LoanAccountResponse], error) {
	logger.Info("loan service open loan request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("loan service open loan validation failed", err, nil)
		return commons.ErrorResponse[models.LoanAccountResponse]("validation failed", err.Error()), err
	}

	pawnDate, err := models.ParseDate(req.PawnDate)
	if err != nil {
		logger.Error("loan service open loan invalid pawn date", err, nil)
		return commons.ErrorResponse[models.LoanAccountResponse]("validation failed", "pawnDate must be in YYYY-MM-DD format"), err
	}

	accountID, err := s.loanRepo.NextAccountID(ctx)
	if err != nil {
		logger.Error("loan service open loan next account id failed", err, nil)
		return commons.ErrorResponse[models.LoanAccountResponse]("failed to open loan", "Unable to open loan right now"), err
	}

	account := domain.LoanAccount{
		AccountID:       accountID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		ItemDescription: strings.TrimSpace(req.ItemDescription),
		PrincipalAmount: req.PrincipalAmount.Round(2),
		PawnDate:        pawnDate,
		RenewedDate:     pawnDate,
		MaturityDate:    domain.MaturityDateFrom(pawnDate),
		ForfeitDate:     domain.ForfeitDateFrom(pawnDate),
		Status:          domain.LoanStatusActive,
	}

	created, err := s.loanRepo.Create(ctx, account)
	if err != nil {
		logger.Error("loan service open loan repository failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return commons.ErrorResponse[models.LoanAccountResponse]("failed to open loan", "Unable to open loan right now"), err
	}

	response := models.NewLoanAccountResponse(created)

	logger.Info("loan service open loan success", logger.Fields{
		"accountId":    response.AccountID,
		"customerName": response.CustomerName,
		"forfeitDate":  response.ForfeitDate,
	})

	return commons.SuccessResponse("loan opened successfully", response), nil
}

func (s *LoanService) GetLoan(ctx context.Context, accountID string) (commons.Response[models.LoanAccountResponse], error) {
	logger.Info("loan service get loan request", logger.Fields{
		"accountId": accountID,
	})

	id, err := parseAccountID(accountID)
	if err != nil {
		return commons.ErrorResponse[models.LoanAccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.loanRepo.GetByAccountID(ctx, id)
	if err != nil {
		logger.Error("loan service get loan failed", err, logger.Fields{
			"accountId": id,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanAccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.LoanAccountResponse]("failed to get loan", "Unable to fetch loan right now"), err
	}

	return commons.SuccessResponse("loan fetched successfully", models.NewLoanAccountResponse(account)), nil
}

func (s *LoanService) ListLoans(ctx context.Context) (commons.Response[models.ListLoansResponse], error) {
	logger.Info("loan service list loans request", nil)

	accounts, err := s.loanRepo.List(ctx)
	if err != nil {
		logger.Error("loan service list loans failed", err, nil)
		return commons.ErrorResponse[models.ListLoansResponse]("failed to list loans", "Unable to list loans right now"), err
	}

	loans := make([]models.LoanAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		loans = append(loans, models.NewLoanAccountResponse(account))
	}

	response := models.ListLoansResponse{
		Count: len(loans),
		Loans: loans,
	}

	logger.Info("loan service list loans success", logger.Fields{
		"count": response.Count,
	})

	return commons.SuccessResponse("loans fetched successfully", response), nil
}

func (s *LoanService) ApplyTransaction(ctx context.Context, req models.LoanTransactionRequest) (commons.Response[models.LoanTransactionResponse], error) {
	logger.Info("loan service apply transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("loan service apply transaction validation failed", err, nil)
		return commons.ErrorResponse[models.LoanTransactionResponse]("validation failed", err.Error()), err
	}

	action, _ := domain.ParseTransactionAction(strings.ToUpper(strings.TrimSpace(req.Action)))
	referenceDate, _ := models.ParseDate(req.ReferenceDate)

	payment := decimal.Zero
	if req.Payment != nil {
		payment = *req.Payment
	}

	if s.operatorService != nil && (action == domain.ActionRenew || action == domain.ActionRedeem) {
		pinResp, err := s.operatorService.VerifyPin(ctx, req.OperatorID, req.OperatorPin)
		if err != nil {
			logger.Error("loan service apply transaction pin verification failed", err, logger.Fields{
				"accountId":  req.AccountID,
				"operatorId": req.OperatorID,
			})
			return commons.ErrorResponse[models.LoanTransactionResponse](pinResp.Message, pinResp.Errors...), err
		}
	}

	account, err := s.loanRepo.GetByAccountID(ctx, req.AccountID)
	if err != nil {
		logger.Error("loan service apply transaction account lookup failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanTransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.LoanTransactionResponse]("failed to apply transaction", "Unable to apply transaction right now"), err
	}

	updated, breakdown, err := s.engine.Apply(account, domain.LoanTransaction{
		Action:        action,
		ReferenceDate: referenceDate,
		Payment:       payment,
	})
	if err != nil {
		return s.rejectTransaction(req, breakdown, err)
	}

	persisted, err := s.loanRepo.Update(ctx, updated)
	if err != nil {
		logger.Error("loan service apply transaction persist failed", err, logger.Fields{
			"accountId": updated.AccountID,
		})
		return commons.ErrorResponse[models.LoanTransactionResponse]("failed to apply transaction", "Unable to apply transaction right now"), err
	}

	receipt := domain.Receipt{
		ReferenceID:   uuid.New(),
		AccountID:     persisted.AccountID,
		Action:        effectiveAction(action, breakdown, persisted),
		ReferenceDate: referenceDate,
		ElapsedDays:   breakdown.ElapsedDays,
		Principal:     breakdown.Principal,
		Interest:      breakdown.Interest,
		ServiceFee:    breakdown.ServiceFee,
		TotalDue:      breakdown.TotalDue,
		Payment:       breakdown.Payment,
		Change:        breakdown.Change,
		Automatic:     breakdown.Automatic,
	}

	stored, err := s.receiptRepo.Create(ctx, receipt)
	if err != nil {
		// The account mutation already committed; surface the receipt failure
		// without reversing the transaction.
		logger.Error("loan service apply transaction receipt failed", err, logger.Fields{
			"accountId":   persisted.AccountID,
			"referenceId": receipt.ReferenceID.String(),
		})
		stored = receipt
	}

	response := models.LoanTransactionResponse{
		ReferenceID: stored.ReferenceID.String(),
		Account:     models.NewLoanAccountResponse(persisted),
		Breakdown:   models.NewBreakdownResponse(breakdown),
	}

	message := "transaction applied successfully"
	if breakdown.Automatic {
		message = "loan forfeited: forfeit date exceeded"
	}

	logger.Info("loan service apply transaction success", logger.Fields{
		"accountId":   response.Account.AccountID,
		"action":      string(stored.Action),
		"status":      response.Account.Status,
		"totalDue":    response.Breakdown.TotalDue,
		"change":      response.Breakdown.Change,
		"automatic":   response.Breakdown.Automatic,
		"referenceId": response.ReferenceID,
	})

	return commons.SuccessResponse(message, response), nil
}

func (s *LoanService) ListReceipts(ctx context.Context, accountID string) (commons.Response[models.ListReceiptsResponse], error) {
	logger.Info("loan service list receipts request", logger.Fields{
		"accountId": accountID,
	})

	id, err := parseAccountID(accountID)
	if err != nil {
		return commons.ErrorResponse[models.ListReceiptsResponse]("validation failed", err.Error()), err
	}

	if _, err := s.loanRepo.GetByAccountID(ctx, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ListReceiptsResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.ListReceiptsResponse]("failed to list receipts", "Unable to list receipts right now"), err
	}

	receipts, err := s.receiptRepo.ListByAccountID(ctx, id)
	if err != nil {
		logger.Error("loan service list receipts failed", err, logger.Fields{
			"accountId": id,
		})
		return commons.ErrorResponse[models.ListReceiptsResponse]("failed to list receipts", "Unable to list receipts right now"), err
	}

	out := make([]models.ReceiptResponse, 0, len(receipts))
	for _, receipt := range receipts {
		out = append(out, models.NewReceiptResponse(receipt))
	}

	response := models.ListReceiptsResponse{
		Count:    len(out),
		Receipts: out,
	}

	return commons.SuccessResponse("receipts fetched successfully", response), nil
}

func (s *LoanService) rejectTransaction(req models.LoanTransactionRequest, breakdown domain.Breakdown, err error) (commons.Response[models.LoanTransactionResponse], error) {
	logger.Info("loan service apply transaction rejected", logger.Fields{
		"accountId": req.AccountID,
		"action":    req.Action,
		"reason":    err.Error(),
	})

	switch {
	case errors.Is(err, commons.ErrAccountNotActive):
		return commons.ErrorResponse[models.LoanTransactionResponse]("transaction rejected", err.Error()), err
	case errors.Is(err, commons.ErrDatePrecedesRenewal):
		return commons.ErrorResponse[models.LoanTransactionResponse]("transaction rejected", err.Error()), err
	case errors.Is(err, commons.ErrInsufficientPayment):
		detail := fmt.Sprintf("insufficient payment: minimum required is %s", breakdown.TotalDue.StringFixed(2))
		return commons.ErrorResponse[models.LoanTransactionResponse]("transaction rejected", detail), err
	default:
		return commons.ErrorResponse[models.LoanTransactionResponse]("failed to apply transaction", err.Error()), err
	}
}

// effectiveAction records what actually happened: an automatic forfeiture is
// written as FORFEIT even when the counter asked to renew or redeem.
func effectiveAction(requested domain.TransactionAction, breakdown domain.Breakdown, account domain.LoanAccount) domain.TransactionAction {
	if breakdown.Automatic && account.Status == domain.LoanStatusForfeited {
		return domain.ActionForfeit
	}
	return requested
}

func parseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("accountId must be a positive integer")
	}
	return id, nil
}
