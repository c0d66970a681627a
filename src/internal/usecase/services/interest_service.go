package services

import (
	"github.com/api-sage/pawnshop-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

// Tiered flat rates on the principal, keyed on whole days elapsed since the
// renewal anchor. Crossing a tier boundary steps the whole amount owed; there
// is no per-diem accrual inside a tier.
var (
	rateFirstMonth  = decimal.NewFromFloat(0.04)
	rateSecondMonth = decimal.NewFromFloat(0.08)
	rateThirdMonth  = decimal.NewFromFloat(0.15)
	rateFourthMonth = decimal.NewFromFloat(0.20)
)

type InterestCalculator struct{}

func NewInterestCalculator() *InterestCalculator {
	return &InterestCalculator{}
}

// Compute returns the interest owed on principal after elapsedDays. Past the
// forfeit window no interest exists; the second return value signals that the
// pledge is forfeited. The function is total: forfeiture is an outcome, not
// an error.
func (c *InterestCalculator) Compute(principal decimal.Decimal, elapsedDays int) (decimal.Decimal, bool) {
	if elapsedDays > domain.ForfeitWindowDays {
		return decimal.Zero, true
	}

	return principal.Mul(c.Rate(elapsedDays)).Round(2), false
}

// Rate returns the flat tier rate for elapsedDays within the forfeit window.
func (c *InterestCalculator) Rate(elapsedDays int) decimal.Decimal {
	switch {
	case elapsedDays <= 30:
		return rateFirstMonth
	case elapsedDays <= 60:
		return rateSecondMonth
	case elapsedDays <= 90:
		return rateThirdMonth
	default:
		return rateFourthMonth
	}
}
