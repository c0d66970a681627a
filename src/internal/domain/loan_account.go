package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusRedeemed  LoanStatus = "REDEEMED"
	LoanStatusForfeited LoanStatus = "FORFEITED"
)

// ParseLoanStatus rejects anything outside the three known statuses so that
// malformed stored records never enter the domain.
func ParseLoanStatus(raw string) (LoanStatus, error) {
	switch LoanStatus(raw) {
	case LoanStatusActive, LoanStatusRedeemed, LoanStatusForfeited:
		return LoanStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown loan status %q", raw)
	}
}

const (
	MaturityTermDays  = 30
	ForfeitWindowDays = 120
)

type LoanAccount struct {
	AccountID       int64
	CustomerName    string
	ItemDescription string
	PrincipalAmount decimal.Decimal
	PawnDate        time.Time
	RenewedDate     time.Time
	MaturityDate    time.Time
	ForfeitDate     time.Time
	Status          LoanStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Terminal reports whether the account accepts further transactions.
func (a LoanAccount) Terminal() bool {
	return a.Status == LoanStatusRedeemed || a.Status == LoanStatusForfeited
}

// DaysBetween returns the whole-day difference between two date-only values.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// MaturityDateFrom and ForfeitDateFrom derive the account windows from a
// renewal anchor date.
func MaturityDateFrom(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, MaturityTermDays)
}

func ForfeitDateFrom(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, ForfeitWindowDays)
}
