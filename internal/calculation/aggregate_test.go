package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR(t *testing.T) {
	cagr := CAGR(decimal.NewFromInt(200), decimal.NewFromInt(100), 1)
	require.NotNil(t, cagr)
	assert.InDelta(t, 100.0, cagr.InexactFloat64(), 1e-9)

	cagr = CAGR(decimal.NewFromInt(121), decimal.NewFromInt(100), 2)
	require.NotNil(t, cagr)
	assert.InDelta(t, 10.0, cagr.InexactFloat64(), 1e-9)

	assert.Nil(t, CAGR(decimal.NewFromInt(100), decimal.Zero, 3))
	assert.Nil(t, CAGR(decimal.Zero, decimal.NewFromInt(100), 3))
	assert.Nil(t, CAGR(decimal.NewFromInt(100), decimal.NewFromInt(100), 0))
}

func TestRealRateOfReturn(t *testing.T) {
	cagr := decimal.NewFromInt(10)
	finalCPI := decimal.NewFromInt(100).Mul(decimal.NewFromFloat(1.05)).Mul(decimal.NewFromFloat(1.05))

	realRate := RealRateOfReturn(&cagr, finalCPI, 2)
	require.NotNil(t, realRate)
	assert.InDelta(t, (1.10/1.05-1)*100, realRate.InexactFloat64(), 1e-9)

	assert.Nil(t, RealRateOfReturn(nil, finalCPI, 2))
	assert.Nil(t, RealRateOfReturn(&cagr, finalCPI, 0))

	flat := RealRateOfReturn(&cagr, decimal.NewFromInt(100), 5)
	require.NotNil(t, flat)
	assert.InDelta(t, 10.0, flat.InexactFloat64(), 1e-9)
}

func TestRealRateOfReturn_ZeroDeflator(t *testing.T) {
	cagr := decimal.NewFromInt(5)
	assert.Nil(t, RealRateOfReturn(&cagr, decimal.Zero, 3))
}

func TestEvaluateGoal(t *testing.T) {
	records := []domain.MonthlyRecord{
		{Year: 1, Month: 1, Corpus: decimal.NewFromInt(50)},
		{Year: 1, Month: 2, Corpus: decimal.NewFromInt(150)},
		{Year: 1, Month: 3, Corpus: decimal.NewFromInt(90)},
	}

	assert.Nil(t, EvaluateGoal(domain.GoalConfig{Amount: decimal.NewFromInt(100)}, records, decimal.NewFromInt(90)))

	g := EvaluateGoal(domain.GoalConfig{Enabled: true, Amount: decimal.NewFromInt(100)}, records, decimal.NewFromInt(90))
	require.NotNil(t, g)
	assert.False(t, g.Reached, "final corpus decides whether the goal is met")
	require.NotNil(t, g.ReachedAt)
	assert.Equal(t, domain.PeriodRef{Year: 1, Month: 2}, *g.ReachedAt)
	assert.True(t, g.Shortfall.Equal(decimal.NewFromInt(10)))
}

func TestAggregateYearly(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:       decimal.NewFromInt(10000),
		MonthlyContribution:     decimal.NewFromInt(1000),
		InvestmentPeriodYears:   3,
		BaseAnnualReturnPercent: decimal.NewFromInt(8),
		Lumpsum:                 domain.LumpsumConfig{Enabled: true, Amount: decimal.NewFromInt(500), Frequency: domain.LumpsumHalfYearly},
		Withdrawal: domain.WithdrawalConfig{
			Enabled: true, Amount: decimal.NewFromInt(2000), Frequency: domain.WithdrawalYearly, Type: domain.WithdrawalFixed, StartYear: 2,
		},
		Tax:          domain.TaxConfig{Enabled: true, RatePercent: decimal.NewFromInt(15)},
		ExpenseRatio: domain.ExpenseRatioConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(1)},
		Inflation:    domain.InflationConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(4)},
	}
	result := Project(plan)

	years := AggregateYearly(result)
	require.Len(t, years, 3)

	assert.True(t, years[0].OpeningCorpus.Equal(decimal.NewFromInt(10000)))
	assert.True(t, years[0].InvestedDuringYear.Equal(decimal.NewFromInt(13000)))
	for i, y := range years {
		assert.Equal(t, i+1, y.Year)
		last := result.Records[(i+1)*12-1]
		assert.True(t, y.ClosingCorpus.Equal(last.Corpus))
		assert.True(t, y.ClosingCPI.Equal(last.CurrentCPI))
		assert.True(t, y.ClosingInflationAdjustedCorpus.Equal(last.InflationAdjustedCorpus))
		assert.True(t, y.TotalInvestment.Equal(last.TotalInvestment))
		if i > 0 {
			assert.True(t, y.OpeningCorpus.Equal(years[i-1].ClosingCorpus))
		}

		// opening + flows reconciles to closing
		reconciled := y.OpeningCorpus.Add(y.InvestedDuringYear).Add(y.GrowthDuringYear).
			Sub(y.ExpenseDuringYear).Sub(y.WithdrawalDuringYear).Sub(y.TaxDuringYear)
		assert.True(t, reconciled.Equal(y.ClosingCorpus), "year %d", y.Year)
	}

	assert.True(t, years[0].WithdrawalDuringYear.IsZero())
	assert.True(t, years[1].WithdrawalDuringYear.Equal(decimal.NewFromInt(2000)))

	var tax decimal.Decimal
	for _, y := range years {
		tax = tax.Add(y.TaxDuringYear)
	}
	assert.True(t, tax.Equal(result.Metrics.TotalTaxPaid))
	assert.InDelta(t, 104*1.04, years[2].ClosingCPI.InexactFloat64(), 1e-9)
	assert.False(t, math.IsNaN(years[2].GrowthDuringYear.InexactFloat64()))
}

func TestAggregateYearly_Empty(t *testing.T) {
	assert.Nil(t, AggregateYearly(nil))
	assert.Nil(t, AggregateYearly(&domain.SimulationResult{}))
}
