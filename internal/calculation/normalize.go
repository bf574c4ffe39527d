package calculation

import (
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Normalize returns a defensively cleaned copy of plan. The engine never rejects
// input; instead:
//   - negative amounts, periods, start years and non-return rates become 0
//   - the period is capped at domain.MaxInvestmentYears
//   - annual return rates are floored at -100%
//   - the tax rate is capped at 100%
//   - unknown enum values fall back to percentage step-up, never for lump sums,
//     monthly withdrawals and fixed withdrawals
//   - every field of a disabled feature is zeroed so it cannot leak into output
func Normalize(plan domain.PlanConfiguration) domain.PlanConfiguration {
	p := plan.DeepCopy()

	p.InitialInvestment = nonNegative(p.InitialInvestment)
	p.MonthlyContribution = nonNegative(p.MonthlyContribution)
	p.InvestmentPeriodYears = min(max(p.InvestmentPeriodYears, 0), domain.MaxInvestmentYears)
	p.BaseAnnualReturnPercent = clampReturn(p.BaseAnnualReturnPercent)

	if !p.StepUp.Type.IsValid() {
		p.StepUp.Type = domain.StepUpPercentage
	}
	p.StepUp.Value = nonNegative(p.StepUp.Value)
	if !p.StepUp.Enabled {
		p.StepUp = domain.StepUpConfig{Type: p.StepUp.Type}
	}

	if !p.Lumpsum.Frequency.IsValid() {
		p.Lumpsum.Frequency = domain.LumpsumNever
	}
	p.Lumpsum.Amount = nonNegative(p.Lumpsum.Amount)
	if !p.Lumpsum.Enabled {
		p.Lumpsum = domain.LumpsumConfig{Frequency: domain.LumpsumNever}
	}

	if !p.Withdrawal.Frequency.IsValid() {
		p.Withdrawal.Frequency = domain.WithdrawalMonthly
	}
	if !p.Withdrawal.Type.IsValid() {
		p.Withdrawal.Type = domain.WithdrawalFixed
	}
	p.Withdrawal.Amount = nonNegative(p.Withdrawal.Amount)
	if p.Withdrawal.StartYear < 0 {
		p.Withdrawal.StartYear = 0
	}
	if !p.Withdrawal.Enabled {
		p.Withdrawal = domain.WithdrawalConfig{
			Frequency: p.Withdrawal.Frequency,
			Type:      p.Withdrawal.Type,
		}
	}

	p.Inflation.AnnualRatePercent = nonNegative(p.Inflation.AnnualRatePercent)
	if !p.Inflation.Enabled {
		p.Inflation = domain.InflationConfig{}
	}

	if p.VariableReturns.Enabled {
		for i := range p.VariableReturns.Entries {
			p.VariableReturns.Entries[i].RatePercent = clampReturn(p.VariableReturns.Entries[i].RatePercent)
		}
	} else {
		p.VariableReturns = domain.VariableReturnsConfig{}
	}

	p.Tax.RatePercent = decimal.Min(nonNegative(p.Tax.RatePercent), hundred)
	if !p.Tax.Enabled {
		p.Tax = domain.TaxConfig{}
	}

	p.ExpenseRatio.AnnualRatePercent = nonNegative(p.ExpenseRatio.AnnualRatePercent)
	if !p.ExpenseRatio.Enabled {
		p.ExpenseRatio = domain.ExpenseRatioConfig{}
	}

	p.Goal.Amount = nonNegative(p.Goal.Amount)
	if !p.Goal.Enabled {
		p.Goal = domain.GoalConfig{}
	}

	return p
}

func clampReturn(rate decimal.Decimal) decimal.Decimal {
	return decimal.Max(rate, minAnnualReturn)
}
