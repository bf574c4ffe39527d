package calculation

import (
	"math"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// metricPlaces is the precision kept for rate metrics derived through float64
const metricPlaces = 10

func aggregate(plan domain.PlanConfiguration, st *ledger, records []domain.MonthlyRecord, firstDepletion *domain.PeriodRef) domain.FinalMetrics {
	years := plan.InvestmentPeriodYears

	m := domain.FinalMetrics{
		FinalCorpus:                  st.corpus,
		TotalInvestment:              st.totalInvested,
		TotalReturns:                 st.corpus.Sub(st.totalInvested),
		FinalInflationAdjustedCorpus: deflate(st.corpus, st.cpi),
		FinalPurchasingPowerChange:   purchasingPowerChange(st.cpi),
		FinalCPI:                     st.cpi,
		TotalWithdrawalsGross:        st.totalWithdrawals,
		TotalTaxPaid:                 st.totalTax,
		TotalExpensesPaid:            st.totalExpenses,
		FirstDepletion:               firstDepletion,
	}
	if n := len(records); n > 0 {
		last := records[n-1]
		m.FinalCorpus = last.Corpus
		m.TotalInvestment = last.TotalInvestment
		m.TotalReturns = last.Returns
		m.FinalInflationAdjustedCorpus = last.InflationAdjustedCorpus
		m.FinalPurchasingPowerChange = last.PurchasingPowerChange
		m.FinalCPI = last.CurrentCPI
	}

	m.CAGR = CAGR(m.FinalCorpus, m.TotalInvestment, years)
	m.RealRateOfReturn = RealRateOfReturn(m.CAGR, m.FinalCPI, years)
	m.Goal = EvaluateGoal(plan.Goal, records, m.FinalCorpus)
	return m
}

// CAGR returns ((final/invested)^(1/years) - 1) × 100, or nil when the
// growth rate is undefined (nothing invested, nothing left, or no time elapsed).
func CAGR(finalCorpus, totalInvested decimal.Decimal, years int) *decimal.Decimal {
	if !totalInvested.IsPositive() || !finalCorpus.IsPositive() || years <= 0 {
		return nil
	}
	ratio := finalCorpus.Div(totalInvested).InexactFloat64()
	return percentFromFloat(math.Pow(ratio, 1/float64(years)) - 1)
}

// RealRateOfReturn deflates a CAGR by the average annual inflation implied by
// finalCPI. It is nil whenever cagr is nil or the deflator vanishes.
func RealRateOfReturn(cagr *decimal.Decimal, finalCPI decimal.Decimal, years int) *decimal.Decimal {
	if cagr == nil || years <= 0 {
		return nil
	}
	cpiRatio := finalCPI.Div(baseCPI).InexactFloat64()
	avgInflation := math.Pow(cpiRatio, 1/float64(years)) - 1
	if 1+avgInflation == 0 {
		return nil
	}
	nominal := 1 + cagr.InexactFloat64()/100
	return percentFromFloat(nominal/(1+avgInflation) - 1)
}

func percentFromFloat(fraction float64) *decimal.Decimal {
	pct := fraction * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	d := decimal.NewFromFloat(pct).Round(metricPlaces)
	return &d
}

// EvaluateGoal measures the ledger against the plan's target corpus.
// It returns nil when goal tracking is disabled.
func EvaluateGoal(goal domain.GoalConfig, records []domain.MonthlyRecord, finalCorpus decimal.Decimal) *domain.GoalProgress {
	if !goal.Enabled {
		return nil
	}
	progress := &domain.GoalProgress{
		Target:    goal.Amount,
		Reached:   finalCorpus.GreaterThanOrEqual(goal.Amount),
		Shortfall: nonNegative(goal.Amount.Sub(finalCorpus)),
	}
	for _, r := range records {
		if r.Corpus.GreaterThanOrEqual(goal.Amount) {
			progress.ReachedAt = &domain.PeriodRef{Year: r.Year, Month: r.Month}
			break
		}
	}
	return progress
}
