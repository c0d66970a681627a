package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ParseDate parses the wire date format used by every date field. Parsing
// happens here so the services only ever see typed dates.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

type OpenLoanRequest struct {
	CustomerName    string          `json:"customerName"`
	ItemDescription string          `json:"itemDescription"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	PawnDate        string          `json:"pawnDate"`
}

func (r OpenLoanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerName) == "" {
		errs = append(errs, "customerName is required")
	}
	if strings.TrimSpace(r.ItemDescription) == "" {
		errs = append(errs, "itemDescription is required")
	}
	if r.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "principalAmount must be greater than zero")
	}
	if _, err := ParseDate(r.PawnDate); err != nil {
		errs = append(errs, "pawnDate must be in YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoanAccountResponse struct {
	AccountID       int64  `json:"accountId"`
	CustomerName    string `json:"customerName"`
	ItemDescription string `json:"itemDescription"`
	PrincipalAmount string `json:"principalAmount"`
	PawnDate        string `json:"pawnDate"`
	RenewedDate     string `json:"renewedDate"`
	MaturityDate    string `json:"maturityDate"`
	ForfeitDate     string `json:"forfeitDate"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func NewLoanAccountResponse(account domain.LoanAccount) LoanAccountResponse {
	return LoanAccountResponse{
		AccountID:       account.AccountID,
		CustomerName:    account.CustomerName,
		ItemDescription: account.ItemDescription,
		PrincipalAmount: account.PrincipalAmount.StringFixed(2),
		PawnDate:        FormatDate(account.PawnDate),
		RenewedDate:     FormatDate(account.RenewedDate),
		MaturityDate:    FormatDate(account.MaturityDate),
		ForfeitDate:     FormatDate(account.ForfeitDate),
		Status:          string(account.Status),
		CreatedAt:       account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       account.UpdatedAt.Format(time.RFC3339),
	}
}

type ListLoansResponse struct {
	Count int                   `json:"count"`
	Loans []LoanAccountResponse `json:"loans"`
}

type LoanTransactionRequest struct {
	AccountID     int64            `json:"accountId"`
	Action        string           `json:"action"`
	ReferenceDate string           `json:"referenceDate"`
	Payment       *decimal.Decimal `json:"payment,omitempty"`
	OperatorID    string           `json:"operatorId,omitempty"`
	OperatorPin   string           `json:"operatorPin,omitempty"`
}

func (r LoanTransactionRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId must be a positive integer")
	}

	action, err := domain.ParseTransactionAction(strings.ToUpper(strings.TrimSpace(r.Action)))
	if err != nil {
		errs = append(errs, "action must be one of RENEW, REDEEM, FORFEIT")
	}

	if _, err := ParseDate(r.ReferenceDate); err != nil {
		errs = append(errs, "referenceDate must be in YYYY-MM-DD format")
	}

	if action == domain.ActionRenew || action == domain.ActionRedeem {
		if r.Payment == nil {
			errs = append(errs, "payment is required for RENEW and REDEEM")
		} else if r.Payment.LessThan(decimal.Zero) {
			errs = append(errs, "payment cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type BreakdownResponse struct {
	ElapsedDays int    `json:"elapsedDays"`
	RatePercent string `json:"ratePercent"`
	Principal   string `json:"principal"`
	Interest    string `json:"interest"`
	ServiceFee  string `json:"serviceFee"`
	TotalDue    string `json:"totalDue"`
	Payment     string `json:"payment"`
	Change      string `json:"change"`
	Automatic   bool   `json:"automatic"`
}

func NewBreakdownResponse(breakdown domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		ElapsedDays: breakdown.ElapsedDays,
		RatePercent: breakdown.RatePercent.StringFixed(2),
		Principal:   breakdown.Principal.StringFixed(2),
		Interest:    breakdown.Interest.StringFixed(2),
		ServiceFee:  breakdown.ServiceFee.StringFixed(2),
		TotalDue:    breakdown.TotalDue.StringFixed(2),
		Payment:     breakdown.Payment.StringFixed(2),
		Change:      breakdown.Change.StringFixed(2),
		Automatic:   breakdown.Automatic,
	}
}

type LoanTransactionResponse struct {
	ReferenceID string              `json:"referenceId"`
	Account     LoanAccountResponse `json:"account"`
	Breakdown   BreakdownResponse   `json:"breakdown"`
}

type ReceiptResponse struct {
	ReferenceID   string `json:"referenceId"`
	AccountID     int64  `json:"accountId"`
	Action        string `json:"action"`
	ReferenceDate string `json:"referenceDate"`
	ElapsedDays   int    `json:"elapsedDays"`
	Principal     string `json:"principal"`
	Interest      string `json:"interest"`
	ServiceFee    string `json:"serviceFee"`
	TotalDue      string `json:"totalDue"`
	Payment       string `json:"payment"`
	Change        string `json:"change"`
	Automatic     bool   `json:"automatic"`
	CreatedAt     string `json:"createdAt"`
}

func NewReceiptResponse(receipt domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReferenceID:   receipt.ReferenceID.String(),
		AccountID:     receipt.AccountID,
		Action:        string(receipt.Action),
		ReferenceDate: FormatDate(receipt.ReferenceDate),
		ElapsedDays:   receipt.ElapsedDays,
		Principal:     receipt.Principal.StringFixed(2),
		Interest:      receipt.Interest.StringFixed(2),
		ServiceFee:    receipt.ServiceFee.StringFixed(2),
		TotalDue:      receipt.TotalDue.StringFixed(2),
		Payment:       receipt.Payment.StringFixed(2),
		Change:        receipt.Change.StringFixed(2),
		Automatic:     receipt.Automatic,
		CreatedAt:     receipt.CreatedAt.Format(time.RFC3339),
	}
}

type ListReceiptsResponse struct {
	Count    int               `json:"count"`
	Receipts []ReceiptResponse `json:"receipts"`
}
