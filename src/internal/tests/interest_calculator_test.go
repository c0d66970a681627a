package services_test

import (
	"testing"

	"github.com/api-sage/pawnshop-processor/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestInterestCalculatorTierAmounts(t *testing.T) {
	calc := services.NewInterestCalculator()
	principal := decimal.NewFromInt(5000)

	cases := []struct {
		days     int
		expected string
	}{
		{0, "200.00"},
		{19, "200.00"},
		{30, "200.00"},
		{31, "400.00"},
		{60, "400.00"},
		{61, "750.00"},
		{90, "750.00"},
		{91, "1000.00"},
		{120, "1000.00"},
	}

	for _, tc := range cases {
		interest, forfeited := calc.Compute(principal, tc.days)
		if forfeited {
			t.Fatalf("did not expect forfeit signal at %d days", tc.days)
		}
		if interest.StringFixed(2) != tc.expected {
			t.Fatalf("expected interest %s at %d days, got %s", tc.expected, tc.days, interest.StringFixed(2))
		}
	}
}

func TestInterestCalculatorStepsStrictlyIncrease(t *testing.T) {
	calc := services.NewInterestCalculator()
	principal := decimal.NewFromInt(1000)

	previous := decimal.NewFromInt(-1)
	for _, boundary := range []int{30, 60, 90, 120} {
		interest, forfeited := calc.Compute(principal, boundary)
		if forfeited {
			t.Fatalf("did not expect forfeit signal at %d days", boundary)
		}
		if !interest.GreaterThan(previous) {
			t.Fatalf("expected interest at %d days to exceed previous tier, got %s after %s", boundary, interest.String(), previous.String())
		}
		previous = interest
	}
}

func TestInterestCalculatorConstantWithinTier(t *testing.T) {
	calc := services.NewInterestCalculator()
	principal := decimal.NewFromInt(1234)

	first, _ := calc.Compute(principal, 61)
	for days := 62; days <= 90; days++ {
		interest, _ := calc.Compute(principal, days)
		if !interest.Equal(first) {
			t.Fatalf("expected constant interest within tier, got %s at %d days", interest.String(), days)
		}
	}
}

func TestInterestCalculatorForfeitSignalPast120Days(t *testing.T) {
	calc := services.NewInterestCalculator()

	for _, days := range []int{121, 150, 365} {
		if _, forfeited := calc.Compute(decimal.NewFromInt(5000), days); !forfeited {
			t.Fatalf("expected forfeit signal at %d days", days)
		}
	}
}
