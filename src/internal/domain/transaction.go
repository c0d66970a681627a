package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionAction string

const (
	ActionRenew   TransactionAction = "RENEW"
	ActionRedeem  TransactionAction = "REDEEM"
	ActionForfeit TransactionAction = "FORFEIT"
)

func ParseTransactionAction(raw string) (TransactionAction, error) {
	switch TransactionAction(raw) {
	case ActionRenew, ActionRedeem, ActionForfeit:
		return TransactionAction(raw), nil
	default:
		return "", fmt.Errorf("unknown transaction action %q", raw)
	}
}

// LoanTransaction is a fully parsed transaction intent against one account.
// Payment is ignored for forfeitures.
type LoanTransaction struct {
	Action        TransactionAction
	ReferenceDate time.Time
	Payment       decimal.Decimal
}

// Breakdown is the due-amount decomposition returned with every accepted
// transaction. Automatic marks a forced forfeiture past the forfeit window.
type Breakdown struct {
	ElapsedDays int
	RatePercent decimal.Decimal
	Principal   decimal.Decimal
	Interest    decimal.Decimal
	ServiceFee  decimal.Decimal
	TotalDue    decimal.Decimal
	Payment     decimal.Decimal
	Change      decimal.Decimal
	Automatic   bool
}

// Receipt is the immutable record written for each accepted mutation.
type Receipt struct {
	ReferenceID   uuid.UUID
	AccountID     int64
	Action        TransactionAction
	ReferenceDate time.Time
	ElapsedDays   int
	Principal     decimal.Decimal
	Interest      decimal.Decimal
	ServiceFee    decimal.Decimal
	TotalDue      decimal.Decimal
	Payment       decimal.Decimal
	Change        decimal.Decimal
	Automatic     bool
	CreatedAt     time.Time
}
