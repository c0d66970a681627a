package services

import (
	"fmt"

	"github.com/api-sage/pawnshop-processor/src/internal/commons"
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

// LoanEngine owns the account lifecycle state machine. Apply is a pure
// function of its inputs: it never mutates the caller's record and never
// touches storage. The service fee is injected at construction.
type LoanEngine struct {
	calculator *InterestCalculator
	serviceFee decimal.Decimal
}

func NewLoanEngine(calculator *InterestCalculator, serviceFee decimal.Decimal) *LoanEngine {
	return &LoanEngine{
		calculator: calculator,
		serviceFee: serviceFee,
	}
}

// Apply validates the transaction against the account's status and dates and
// returns the next account state with a due-amount breakdown. Rejections come
// back as the commons sentinel errors with the account unchanged. A reference
// date past the forfeit window forces a forfeiture before the requested
// action is even looked at, and that forced transition is a successful
// result, not an error.
func (e *LoanEngine) Apply(account domain.LoanAccount, tx domain.LoanTransaction) (domain.LoanAccount, domain.Breakdown, error) {
	if account.Status != domain.LoanStatusActive {
		return account, domain.Breakdown{}, commons.ErrAccountNotActive
	}

	if tx.ReferenceDate.Before(account.RenewedDate) {
		return account, domain.Breakdown{}, commons.ErrDatePrecedesRenewal
	}

	elapsedDays := domain.DaysBetween(account.RenewedDate, tx.ReferenceDate)

	if tx.ReferenceDate.After(account.ForfeitDate) {
		return e.forfeit(account, elapsedDays, true)
	}

	switch tx.Action {
	case domain.ActionForfeit:
		return e.forfeit(account, elapsedDays, false)
	case domain.ActionRenew, domain.ActionRedeem:
	default:
		return account, domain.Breakdown{}, fmt.Errorf("unsupported transaction action %q", tx.Action)
	}

	interest, forfeited := e.calculator.Compute(account.PrincipalAmount, elapsedDays)
	if forfeited {
		// Unreachable while forfeit_date tracks the 120-day boundary, but the
		// calculator's signal must map to the same forced forfeiture.
		return e.forfeit(account, elapsedDays, true)
	}

	ratePercent := decimal.Zero
	if account.PrincipalAmount.IsPositive() {
		ratePercent = interest.Div(account.PrincipalAmount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	breakdown := domain.Breakdown{
		ElapsedDays: elapsedDays,
		RatePercent: ratePercent,
		Principal:   account.PrincipalAmount,
		Interest:    interest,
		ServiceFee:  e.serviceFee,
		Payment:     tx.Payment,
	}

	due := interest.Add(e.serviceFee)
	if tx.Action == domain.ActionRedeem {
		due = due.Add(account.PrincipalAmount)
	}
	breakdown.TotalDue = due

	if tx.Payment.LessThan(due) {
		return account, breakdown, commons.ErrInsufficientPayment
	}
	breakdown.Change = tx.Payment.Sub(due)

	switch tx.Action {
	case domain.ActionRenew:
		account.RenewedDate = tx.ReferenceDate
		account.MaturityDate = domain.MaturityDateFrom(tx.ReferenceDate)
		account.ForfeitDate = domain.ForfeitDateFrom(tx.ReferenceDate)
	case domain.ActionRedeem:
		account.Status = domain.LoanStatusRedeemed
	}

	return account, breakdown, nil
}

func (e *LoanEngine) forfeit(account domain.LoanAccount, elapsedDays int, automatic bool) (domain.LoanAccount, domain.Breakdown, error) {
	account.Status = domain.LoanStatusForfeited

	return account, domain.Breakdown{
		ElapsedDays: elapsedDays,
		Principal:   account.PrincipalAmount,
		Automatic:   automatic,
	}, nil
}
