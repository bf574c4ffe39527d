package calculation

import (
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AggregateYearly groups the ledger by year. Closing values come from the last
// record of each year and flows are summed over the year's records.
func AggregateYearly(result *domain.SimulationResult) []domain.YearSummary {
	if result == nil || len(result.Records) == 0 {
		return nil
	}

	first := result.Records[0]
	opening := first.TotalInvestment.Sub(first.InvestedThisMonth())

	var summaries []domain.YearSummary
	var cur *domain.YearSummary
	for _, r := range result.Records {
		if cur == nil || cur.Year != r.Year {
			if cur != nil {
				opening = cur.ClosingCorpus
				summaries = append(summaries, *cur)
			}
			cur = &domain.YearSummary{
				Year:                r.Year,
				OpeningCorpus:       opening,
				AnnualRatePercent:   r.AnnualRatePercent,
				MonthlyContribution: r.ContributionThisMonth,
				InvestedDuringYear:  decimal.Zero,
			}
		}
		cur.InvestedDuringYear = cur.InvestedDuringYear.Add(r.InvestedThisMonth())
		cur.GrowthDuringYear = cur.GrowthDuringYear.Add(r.MonthlyGrowth)
		cur.WithdrawalDuringYear = cur.WithdrawalDuringYear.Add(r.WithdrawalThisMonth)
		cur.TaxDuringYear = cur.TaxDuringYear.Add(r.TaxPaidThisMonth)
		cur.ExpenseDuringYear = cur.ExpenseDuringYear.Add(r.ExpenseDeductedThisMonth)
		cur.TotalInvestment = r.TotalInvestment
		cur.ClosingCorpus = r.Corpus
		cur.ClosingCPI = r.CurrentCPI
		cur.ClosingInflationAdjustedCorpus = r.InflationAdjustedCorpus
		cur.Depleted = cur.Depleted || r.Depleted
	}
	return append(summaries, *cur)
}
