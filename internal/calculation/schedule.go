package calculation

import (
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveAnnualRate returns the annual return percent in effect for year.
// With variable returns enabled the first entry whose YearEnd covers the year
// wins; past the last boundary the last entry's rate holds.
func ResolveAnnualRate(year int, plan domain.PlanConfiguration) decimal.Decimal {
	if !plan.VariableReturns.Enabled || len(plan.VariableReturns.Entries) == 0 {
		return plan.BaseAnnualReturnPercent
	}
	return lookupRate(year, plan.SortedVariableReturns())
}

func lookupRate(year int, sorted []domain.VariableReturnEntry) decimal.Decimal {
	for _, e := range sorted {
		if e.YearEnd >= year {
			return e.RatePercent
		}
	}
	return sorted[len(sorted)-1].RatePercent
}

// MonthlyRate converts an annual percent into the monthly fraction used for growth
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(twelveHundred)
}

// ApplyStepUp applies one year-boundary step-up to contribution
func ApplyStepUp(contribution decimal.Decimal, stepUp domain.StepUpConfig) decimal.Decimal {
	if !stepUp.Enabled {
		return contribution
	}
	if stepUp.Type == domain.StepUpFixed {
		return contribution.Add(stepUp.Value)
	}
	return roundMoney(contribution.Mul(growthFactor(stepUp.Value)))
}

// ResolveMonthlyContribution returns the monthly contribution in effect for year.
// Step-up is applied once per boundary starting with year 2.
func ResolveMonthlyContribution(year int, plan domain.PlanConfiguration) decimal.Decimal {
	contribution := plan.MonthlyContribution
	for y := 2; y <= year; y++ {
		contribution = ApplyStepUp(contribution, plan.StepUp)
	}
	return contribution
}

// ResolveLumpsumMonths lists the months (1-12) that receive a lump sum
func ResolveLumpsumMonths(frequency domain.LumpsumFrequency) []int {
	switch frequency {
	case domain.LumpsumMonthly:
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	case domain.LumpsumQuarterly:
		return []int{1, 4, 7, 10}
	case domain.LumpsumHalfYearly:
		return []int{1, 7}
	case domain.LumpsumYearly:
		return []int{1}
	default:
		return nil
	}
}

func lumpsumMonthSet(lumpsum domain.LumpsumConfig) [13]bool {
	var set [13]bool
	if !lumpsum.Enabled {
		return set
	}
	for _, m := range ResolveLumpsumMonths(lumpsum.Frequency) {
		set[m] = true
	}
	return set
}

// IsWithdrawalMonth reports whether a withdrawal event falls on year/month
func IsWithdrawalMonth(year, month int, w domain.WithdrawalConfig) bool {
	if !w.Enabled || year < w.StartYear {
		return false
	}
	if w.Frequency == domain.WithdrawalYearly {
		return month == 12
	}
	return true
}

// ResolveWithdrawalBasis returns the amount requested by a withdrawal event
// before it is capped at the available corpus. Fixed withdrawals request the
// current fixed amount; percentage withdrawals take a fresh share of corpus.
func ResolveWithdrawalBasis(corpus decimal.Decimal, year int, currentFixedAmount decimal.Decimal, plan domain.PlanConfiguration) decimal.Decimal {
	w := plan.Withdrawal
	if !w.Enabled || year < w.StartYear {
		return decimal.Zero
	}
	if w.Type == domain.WithdrawalPercentage {
		return percentOf(nonNegative(corpus), w.Amount)
	}
	return currentFixedAmount
}
