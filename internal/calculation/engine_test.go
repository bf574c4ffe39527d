package calculation

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records warnings for assertions
type TestLogger struct {
	warnings []string
	debugs   int
}

func (l *TestLogger) Debugf(string, ...any) { l.debugs++ }
func (l *TestLogger) Infof(string, ...any)  {}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(string, ...any) {}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func basePlan() domain.PlanConfiguration {
	return domain.PlanConfiguration{
		MonthlyContribution:     decimal.NewFromInt(5000),
		InvestmentPeriodYears:   10,
		BaseAnnualReturnPercent: decimal.NewFromInt(12),
	}
}

func TestNewProjectionEngine(t *testing.T) {
	engine := NewProjectionEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
}

func TestProjectionEngine_SetLogger(t *testing.T) {
	engine := NewProjectionEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestProject_ZeroRateBaseline(t *testing.T) {
	plan := domain.PlanConfiguration{
		MonthlyContribution:   decimal.NewFromInt(1500),
		InvestmentPeriodYears: 7,
	}

	result := Project(plan)

	require.Len(t, result.Records, 84)
	expected := decimal.NewFromInt(1500 * 12 * 7)
	assert.True(t, result.Metrics.TotalInvestment.Equal(expected), "invested %s", result.Metrics.TotalInvestment)
	assert.True(t, result.Metrics.FinalCorpus.Equal(expected), "corpus %s", result.Metrics.FinalCorpus)
	assert.True(t, result.Metrics.TotalReturns.IsZero())
	for _, r := range result.Records {
		assert.True(t, r.MonthlyGrowth.IsZero())
	}
}

func TestProject_AnnuityDueClosedForm(t *testing.T) {
	cases := []struct {
		monthly float64
		annual  float64
		years   int
	}{
		{5000, 12, 10},
		{2500, 9, 7},
		{100, 7.5, 30},
		{12000, 4.2, 1},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%.0f@%.1f%%x%d", tc.monthly, tc.annual, tc.years), func(t *testing.T) {
			plan := domain.PlanConfiguration{
				MonthlyContribution:     d(tc.monthly),
				InvestmentPeriodYears:   tc.years,
				BaseAnnualReturnPercent: d(tc.annual),
			}
			result := Project(plan)

			i := tc.annual / 1200
			n := float64(tc.years * 12)
			want := tc.monthly * (math.Pow(1+i, n) - 1) / i * (1 + i)
			got := result.Metrics.FinalCorpus.InexactFloat64()
			assert.InDelta(t, 0, (got-want)/want, 1e-6, "got %f want %f", got, want)
		})
	}
}

func TestProject_EndToEndDefaultScenario(t *testing.T) {
	result := Project(basePlan())

	require.Len(t, result.Records, 120)
	assert.True(t, result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(600000)))
	assert.InDelta(t, 1161695.38, result.Metrics.FinalCorpus.InexactFloat64(), 0.01)
	assert.True(t, result.Metrics.TotalReturns.Equal(result.Metrics.FinalCorpus.Sub(result.Metrics.TotalInvestment)))

	last := result.Records[len(result.Records)-1]
	assert.Equal(t, 10, last.Year)
	assert.Equal(t, 12, last.Month)

	require.NotNil(t, result.Metrics.CAGR)
	// (1161695.38/600000)^(1/10) - 1
	assert.InDelta(t, 6.83, result.Metrics.CAGR.InexactFloat64(), 0.01)
	require.NotNil(t, result.Metrics.RealRateOfReturn)
	assert.InDelta(t, result.Metrics.CAGR.InexactFloat64(), result.Metrics.RealRateOfReturn.InexactFloat64(), 1e-9,
		"no inflation means real equals nominal")
	assert.Nil(t, result.Metrics.FirstDepletion)
	assert.Nil(t, result.Metrics.Goal)
}

func TestProject_RecordOrdering(t *testing.T) {
	result := Project(basePlan())

	for idx, r := range result.Records {
		assert.Equal(t, idx/12+1, r.Year)
		assert.Equal(t, idx%12+1, r.Month)
		assert.True(t, r.Returns.Equal(r.Corpus.Sub(r.TotalInvestment)))
	}
}

func TestProject_StepUpIncreasesEveryYear(t *testing.T) {
	for _, stepUp := range []domain.StepUpConfig{
		{Enabled: true, Type: domain.StepUpPercentage, Value: d(10)},
		{Enabled: true, Type: domain.StepUpFixed, Value: d(250)},
	} {
		t.Run(string(stepUp.Type), func(t *testing.T) {
			plan := basePlan()
			plan.StepUp = stepUp
			result := Project(plan)

			yearly := AggregateYearly(result)
			require.Len(t, yearly, 10)
			for k := 1; k < len(yearly); k++ {
				assert.True(t, yearly[k].MonthlyContribution.GreaterThan(yearly[k-1].MonthlyContribution),
					"year %d contribution should exceed year %d", k+1, k)
			}
			for _, r := range result.Records {
				assert.True(t, r.ContributionThisMonth.Equal(ResolveMonthlyContribution(r.Year, plan)),
					"contribution constant within year %d", r.Year)
			}
		})
	}
}

func TestProject_StepUpFixedTotals(t *testing.T) {
	plan := domain.PlanConfiguration{
		MonthlyContribution:   decimal.NewFromInt(100),
		InvestmentPeriodYears: 3,
		StepUp:                domain.StepUpConfig{Enabled: true, Type: domain.StepUpFixed, Value: decimal.NewFromInt(50)},
	}
	result := Project(plan)

	assert.True(t, result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(12*(100+150+200))))
}

func TestProject_LumpsumFrequencies(t *testing.T) {
	cases := map[domain.LumpsumFrequency]int64{
		domain.LumpsumNever:      0,
		domain.LumpsumMonthly:    12,
		domain.LumpsumQuarterly:  4,
		domain.LumpsumHalfYearly: 2,
		domain.LumpsumYearly:     1,
	}
	for freq, count := range cases {
		t.Run(string(freq), func(t *testing.T) {
			plan := domain.PlanConfiguration{
				MonthlyContribution:   decimal.NewFromInt(100),
				InvestmentPeriodYears: 2,
				Lumpsum:               domain.LumpsumConfig{Enabled: true, Amount: decimal.NewFromInt(50), Frequency: freq},
			}
			result := Project(plan)
			want := decimal.NewFromInt(2 * (1200 + 50*count))
			assert.True(t, result.Metrics.TotalInvestment.Equal(want), "got %s want %s", result.Metrics.TotalInvestment, want)
		})
	}
}

func TestProject_LumpsumParticipatesInSameMonthGrowth(t *testing.T) {
	plan := domain.PlanConfiguration{
		InvestmentPeriodYears:   1,
		BaseAnnualReturnPercent: decimal.NewFromInt(12),
		Lumpsum:                 domain.LumpsumConfig{Enabled: true, Amount: decimal.NewFromInt(1000), Frequency: domain.LumpsumYearly},
	}
	result := Project(plan)

	assert.True(t, result.Records[0].LumpsumThisMonth.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Records[0].MonthlyGrowth.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.Records[1].LumpsumThisMonth.IsZero())
}

func TestProject_ExpenseRatio(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:     decimal.NewFromInt(1200),
		InvestmentPeriodYears: 1,
		ExpenseRatio:          domain.ExpenseRatioConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(12)},
	}
	result := Project(plan)

	assert.True(t, result.Records[0].ExpenseDeductedThisMonth.Equal(decimal.NewFromInt(12)))
	assert.True(t, result.Records[0].Corpus.Equal(decimal.NewFromInt(1188)))
	assert.InDelta(t, 1200*math.Pow(0.99, 12), result.Metrics.FinalCorpus.InexactFloat64(), 1e-6)

	var sum decimal.Decimal
	for _, r := range result.Records {
		sum = sum.Add(r.ExpenseDeductedThisMonth)
	}
	assert.True(t, sum.Equal(result.Metrics.TotalExpensesPaid))
}

func TestProject_WithdrawalDepletion(t *testing.T) {
	logger := &TestLogger{}
	engine := NewProjectionEngine()
	engine.SetLogger(logger)

	plan := domain.PlanConfiguration{
		InitialInvestment:     decimal.NewFromInt(1000),
		InvestmentPeriodYears: 1,
		Withdrawal: domain.WithdrawalConfig{
			Enabled:   true,
			Amount:    decimal.NewFromInt(300),
			Frequency: domain.WithdrawalMonthly,
			Type:      domain.WithdrawalFixed,
		},
	}
	result := engine.Project(plan)

	assert.True(t, result.Records[2].Corpus.Equal(decimal.NewFromInt(100)))
	assert.False(t, result.Records[2].Depleted)

	fourth := result.Records[3]
	assert.True(t, fourth.WithdrawalThisMonth.Equal(decimal.NewFromInt(100)), "capped at corpus")
	assert.True(t, fourth.RequestedWithdrawal.Equal(decimal.NewFromInt(300)))
	assert.True(t, fourth.WithdrawalShortfall().Equal(decimal.NewFromInt(200)))
	assert.True(t, fourth.Corpus.IsZero())
	assert.True(t, fourth.Depleted)

	for _, r := range result.Records[4:] {
		assert.True(t, r.WithdrawalThisMonth.IsZero())
		assert.True(t, r.Corpus.IsZero())
	}

	require.NotNil(t, result.Metrics.FirstDepletion)
	assert.Equal(t, domain.PeriodRef{Year: 1, Month: 4}, *result.Metrics.FirstDepletion)
	assert.True(t, result.Metrics.TotalWithdrawalsGross.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, result.Metrics.CAGR, "nothing left means CAGR is undefined")
	assert.Len(t, logger.warnings, 1, "depletion is warned once per run")
}

func TestProject_WithdrawalNeverExceedsCorpus(t *testing.T) {
	plan := basePlan()
	plan.InitialInvestment = decimal.NewFromInt(200000)
	plan.InvestmentPeriodYears = 15
	plan.Withdrawal = domain.WithdrawalConfig{
		Enabled:           true,
		Amount:            decimal.NewFromInt(40000),
		Frequency:         domain.WithdrawalMonthly,
		Type:              domain.WithdrawalFixed,
		StartYear:         3,
		InflationAdjusted: true,
	}
	plan.Inflation = domain.InflationConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(7)}
	plan.Tax = domain.TaxConfig{Enabled: true, RatePercent: decimal.NewFromInt(30)}
	plan.ExpenseRatio = domain.ExpenseRatioConfig{Enabled: true, AnnualRatePercent: d(1.5)}

	result := Project(plan)

	prev := plan.InitialInvestment
	for _, r := range result.Records {
		preWithdrawal := prev.Add(r.InvestedThisMonth()).Add(r.MonthlyGrowth).Sub(r.ExpenseDeductedThisMonth)
		assert.True(t, r.WithdrawalThisMonth.LessThanOrEqual(preWithdrawal), "year %d month %d", r.Year, r.Month)
		assert.True(t, r.TaxPaidThisMonth.LessThanOrEqual(r.WithdrawalThisMonth))
		assert.False(t, r.Corpus.IsNegative())
		if r.Year < 3 {
			assert.True(t, r.WithdrawalThisMonth.IsZero(), "no withdrawals before start year")
		}
		prev = r.Corpus
	}
	assert.True(t, result.IsDepleted())
}

func TestProject_YearlyWithdrawalOnlyInDecember(t *testing.T) {
	plan := basePlan()
	plan.Withdrawal = domain.WithdrawalConfig{
		Enabled:   true,
		Amount:    decimal.NewFromInt(10000),
		Frequency: domain.WithdrawalYearly,
		Type:      domain.WithdrawalFixed,
		StartYear: 2,
	}
	result := Project(plan)

	for _, r := range result.Records {
		if r.Month == 12 && r.Year >= 2 {
			assert.True(t, r.WithdrawalThisMonth.Equal(decimal.NewFromInt(10000)))
		} else {
			assert.True(t, r.WithdrawalThisMonth.IsZero())
		}
	}
	assert.True(t, result.Metrics.TotalWithdrawalsGross.Equal(decimal.NewFromInt(90000)))
}

func TestProject_InflationAdjustedFixedWithdrawal(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:     decimal.NewFromInt(100000),
		InvestmentPeriodYears: 3,
		Inflation:             domain.InflationConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(10)},
		Withdrawal: domain.WithdrawalConfig{
			Enabled:           true,
			Amount:            decimal.NewFromInt(1000),
			Frequency:         domain.WithdrawalYearly,
			Type:              domain.WithdrawalFixed,
			InflationAdjusted: true,
		},
	}
	result := Project(plan)

	assert.True(t, result.Records[11].WithdrawalThisMonth.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Records[23].WithdrawalThisMonth.Equal(decimal.NewFromInt(1100)))
	assert.True(t, result.Records[35].WithdrawalThisMonth.Equal(decimal.NewFromInt(1210)))
	assert.True(t, result.Metrics.TotalWithdrawalsGross.Equal(decimal.NewFromInt(3310)))
}

func TestProject_PercentageWithdrawalUsesFreshCorpus(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:     decimal.NewFromInt(1000),
		InvestmentPeriodYears: 1,
		Withdrawal: domain.WithdrawalConfig{
			Enabled:   true,
			Amount:    decimal.NewFromInt(1),
			Frequency: domain.WithdrawalMonthly,
			Type:      domain.WithdrawalPercentage,
		},
	}
	result := Project(plan)

	assert.True(t, result.Records[0].WithdrawalThisMonth.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.Records[1].WithdrawalThisMonth.Equal(d(9.9)))
	assert.InDelta(t, 1000*math.Pow(0.99, 12), result.Metrics.FinalCorpus.InexactFloat64(), 1e-6)
	assert.Nil(t, result.Metrics.FirstDepletion)
}

func TestProject_TaxOnGains(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:       decimal.NewFromInt(1000),
		InvestmentPeriodYears:   1,
		BaseAnnualReturnPercent: decimal.NewFromInt(12),
		Withdrawal: domain.WithdrawalConfig{
			Enabled:   true,
			Amount:    decimal.NewFromInt(200),
			Frequency: domain.WithdrawalYearly,
			Type:      domain.WithdrawalFixed,
		},
		Tax: domain.TaxConfig{Enabled: true, RatePercent: decimal.NewFromInt(10)},
	}
	result := Project(plan)

	dec := result.Records[11]
	assert.True(t, dec.WithdrawalThisMonth.Equal(decimal.NewFromInt(200)))
	assert.InDelta(t, 2.2510154947, dec.TaxPaidThisMonth.InexactFloat64(), 1e-6)
	assert.InDelta(t, 924.5740146373, dec.Corpus.InexactFloat64(), 1e-6)
	assert.True(t, result.Metrics.TotalTaxPaid.Equal(dec.TaxPaidThisMonth))
	assert.True(t, result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(1000)), "withdrawals never reduce invested")
}

func TestProject_TaxCappedAtRemainingCorpus(t *testing.T) {
	// 1200% a year doubles the corpus monthly: 100 grows to 409600, almost all gains
	plan := domain.PlanConfiguration{
		InitialInvestment:       decimal.NewFromInt(100),
		InvestmentPeriodYears:   1,
		BaseAnnualReturnPercent: decimal.NewFromInt(1200),
		Withdrawal: domain.WithdrawalConfig{
			Enabled:   true,
			Amount:    decimal.NewFromInt(409000),
			Frequency: domain.WithdrawalYearly,
			Type:      domain.WithdrawalFixed,
		},
		Tax: domain.TaxConfig{Enabled: true, RatePercent: decimal.NewFromInt(100)},
	}
	result := Project(plan)

	dec := result.Records[11]
	assert.True(t, result.Records[10].Corpus.Equal(decimal.NewFromInt(204800)))
	assert.True(t, dec.WithdrawalThisMonth.Equal(decimal.NewFromInt(409000)), "full withdrawal delivered")
	assert.True(t, dec.TaxPaidThisMonth.Equal(decimal.NewFromInt(600)), "tax limited to what is left after the withdrawal, got %s", dec.TaxPaidThisMonth)
	assert.True(t, dec.Corpus.IsZero())
	assert.True(t, dec.Depleted)
	require.NotNil(t, result.Metrics.FirstDepletion)
	assert.Equal(t, 12, result.Metrics.FirstDepletion.Month)
}

func TestProject_NoTaxWithoutGains(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:     decimal.NewFromInt(1000),
		InvestmentPeriodYears: 1,
		Withdrawal: domain.WithdrawalConfig{
			Enabled: true, Amount: decimal.NewFromInt(100), Frequency: domain.WithdrawalMonthly, Type: domain.WithdrawalFixed,
		},
		Tax: domain.TaxConfig{Enabled: true, RatePercent: decimal.NewFromInt(30)},
	}
	result := Project(plan)

	assert.True(t, result.Metrics.TotalTaxPaid.IsZero())
}

func TestProject_InflationIndexing(t *testing.T) {
	plan := basePlan()
	plan.InvestmentPeriodYears = 12
	plan.Inflation = domain.InflationConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(6)}
	result := Project(plan)

	factor := d(1.06)
	expected := decimal.NewFromInt(100)
	for year := 1; year <= 12; year++ {
		if year > 1 {
			expected = expected.Mul(factor)
		}
		for _, r := range result.Records[(year-1)*12 : year*12] {
			assert.True(t, r.CurrentCPI.Equal(expected), "year %d cpi %s want %s", year, r.CurrentCPI, expected)
		}
		assert.InDelta(t, 100*math.Pow(1.06, float64(year-1)), expected.InexactFloat64(), 1e-9)
	}

	assert.True(t, result.Records[0].PurchasingPowerChange.IsZero())
	assert.InDelta(t, (100/106.0-1)*100, result.Records[12].PurchasingPowerChange.InexactFloat64(), 1e-8)

	last := result.Records[len(result.Records)-1]
	assert.InDelta(t, last.Corpus.InexactFloat64()*100/last.CurrentCPI.InexactFloat64(),
		last.InflationAdjustedCorpus.InexactFloat64(), 1e-6)

	require.NotNil(t, result.Metrics.RealRateOfReturn)
	assert.True(t, result.Metrics.RealRateOfReturn.LessThan(*result.Metrics.CAGR))
}

func TestProject_UndefinedMetrics(t *testing.T) {
	t.Run("nothing invested", func(t *testing.T) {
		plan := domain.PlanConfiguration{InvestmentPeriodYears: 5, BaseAnnualReturnPercent: decimal.NewFromInt(10)}
		result := Project(plan)
		assert.Len(t, result.Records, 60)
		assert.Nil(t, result.Metrics.CAGR)
		assert.Nil(t, result.Metrics.RealRateOfReturn)
	})

	t.Run("zero years", func(t *testing.T) {
		plan := basePlan()
		plan.InitialInvestment = decimal.NewFromInt(25000)
		plan.InvestmentPeriodYears = 0
		result := Project(plan)

		assert.Empty(t, result.Records)
		assert.Nil(t, result.Metrics.CAGR)
		assert.Nil(t, result.Metrics.RealRateOfReturn)
		assert.True(t, result.Metrics.FinalCorpus.Equal(decimal.NewFromInt(25000)))
		assert.True(t, result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(25000)))
		assert.True(t, result.Metrics.FinalCPI.Equal(decimal.NewFromInt(100)))
		assert.True(t, result.Metrics.FinalPurchasingPowerChange.IsZero())
	})
}

func TestProject_DisabledFeatureNeutrality(t *testing.T) {
	baseline := Project(basePlan())

	variants := map[string]func(p *domain.PlanConfiguration){
		"step up": func(p *domain.PlanConfiguration) {
			p.StepUp = domain.StepUpConfig{Enabled: false, Type: domain.StepUpFixed, Value: decimal.NewFromInt(999)}
		},
		"lumpsum": func(p *domain.PlanConfiguration) {
			p.Lumpsum = domain.LumpsumConfig{Enabled: false, Amount: decimal.NewFromInt(50000), Frequency: domain.LumpsumMonthly}
		},
		"withdrawal": func(p *domain.PlanConfiguration) {
			p.Withdrawal = domain.WithdrawalConfig{Enabled: false, Amount: decimal.NewFromInt(7000), Frequency: domain.WithdrawalMonthly}
		},
		"inflation": func(p *domain.PlanConfiguration) {
			p.Inflation = domain.InflationConfig{Enabled: false, AnnualRatePercent: decimal.NewFromInt(9)}
		},
		"variable returns": func(p *domain.PlanConfiguration) {
			p.VariableReturns = domain.VariableReturnsConfig{Enabled: false, Entries: []domain.VariableReturnEntry{{YearEnd: 2, RatePercent: decimal.NewFromInt(30)}}}
		},
		"tax": func(p *domain.PlanConfiguration) {
			p.Tax = domain.TaxConfig{Enabled: false, RatePercent: decimal.NewFromInt(40)}
		},
		"expense ratio": func(p *domain.PlanConfiguration) {
			p.ExpenseRatio = domain.ExpenseRatioConfig{Enabled: false, AnnualRatePercent: decimal.NewFromInt(2)}
		},
		"goal": func(p *domain.PlanConfiguration) {
			p.Goal = domain.GoalConfig{Enabled: false, Amount: decimal.NewFromInt(1)}
		},
	}

	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			plan := basePlan()
			mutate(&plan)
			result := Project(plan)

			assert.Equal(t, baseline, result)
			for _, r := range result.Records {
				assert.True(t, r.ExpenseDeductedThisMonth.IsZero())
				assert.True(t, r.TaxPaidThisMonth.IsZero())
				assert.True(t, r.WithdrawalThisMonth.IsZero())
			}
		})
	}
}

func TestProject_Deterministic(t *testing.T) {
	plan := basePlan()
	plan.StepUp = domain.StepUpConfig{Enabled: true, Type: domain.StepUpPercentage, Value: d(7.5)}
	plan.Inflation = domain.InflationConfig{Enabled: true, AnnualRatePercent: d(5.5)}
	plan.Withdrawal = domain.WithdrawalConfig{Enabled: true, Amount: d(0.4), Frequency: domain.WithdrawalMonthly, Type: domain.WithdrawalPercentage, StartYear: 5}
	plan.Tax = domain.TaxConfig{Enabled: true, RatePercent: d(12.5)}
	plan.ExpenseRatio = domain.ExpenseRatioConfig{Enabled: true, AnnualRatePercent: d(0.75)}

	first := Project(plan)
	second := Project(plan)
	assert.Equal(t, first, second)
}

func TestProject_VariableReturns(t *testing.T) {
	plan := basePlan()
	plan.VariableReturns = domain.VariableReturnsConfig{
		Enabled: true,
		Entries: []domain.VariableReturnEntry{
			{YearEnd: 6, RatePercent: decimal.NewFromInt(8)},
			{YearEnd: 3, RatePercent: decimal.NewFromInt(14)},
		},
	}
	result := Project(plan)

	for _, r := range result.Records {
		want := decimal.NewFromInt(8)
		if r.Year <= 3 {
			want = decimal.NewFromInt(14)
		}
		assert.True(t, r.AnnualRatePercent.Equal(want), "year %d", r.Year)
	}
}

func TestProject_GoalTracking(t *testing.T) {
	plan := basePlan()
	plan.Goal = domain.GoalConfig{Enabled: true, Amount: decimal.NewFromInt(500000)}
	result := Project(plan)

	require.NotNil(t, result.Metrics.Goal)
	assert.True(t, result.Metrics.Goal.Reached)
	assert.True(t, result.Metrics.Goal.Shortfall.IsZero())
	require.NotNil(t, result.Metrics.Goal.ReachedAt)
	at := result.Metrics.Goal.ReachedAt
	idx := (at.Year-1)*12 + at.Month - 1
	assert.True(t, result.Records[idx].Corpus.GreaterThanOrEqual(decimal.NewFromInt(500000)))
	assert.True(t, result.Records[idx-1].Corpus.LessThan(decimal.NewFromInt(500000)))

	plan.Goal.Amount = decimal.NewFromInt(2000000)
	result = Project(plan)
	assert.False(t, result.Metrics.Goal.Reached)
	assert.Nil(t, result.Metrics.Goal.ReachedAt)
	assert.True(t, result.Metrics.Goal.Shortfall.Equal(decimal.NewFromInt(2000000).Sub(result.Metrics.FinalCorpus)))
}

func TestProject_NormalizesInvalidInput(t *testing.T) {
	plan := domain.PlanConfiguration{
		InitialInvestment:       decimal.NewFromInt(-500),
		MonthlyContribution:     decimal.NewFromInt(-100),
		InvestmentPeriodYears:   -3,
		BaseAnnualReturnPercent: decimal.NewFromInt(10),
	}
	result := Project(plan)

	assert.Empty(t, result.Records)
	assert.True(t, result.Metrics.FinalCorpus.IsZero())
	assert.Nil(t, result.Metrics.CAGR)

	for _, years := range []int{domain.MaxInvestmentYears + 1, 1 << 61} {
		long := domain.PlanConfiguration{
			MonthlyContribution:   decimal.NewFromInt(100),
			InvestmentPeriodYears: years,
		}
		var res *domain.SimulationResult
		require.NotPanics(t, func() { res = Project(long) }, "period %d", years)
		assert.Len(t, res.Records, domain.MaxInvestmentYears*12, "period %d", years)
		assert.Equal(t, domain.MaxInvestmentYears, res.Years())
		assert.True(t, res.Metrics.TotalInvestment.Equal(decimal.NewFromInt(100*12*domain.MaxInvestmentYears)))
	}
}

func TestRunScenarios(t *testing.T) {
	engine := NewProjectionEngine()
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Base", Plan: basePlan()},
		{Name: "Short", Plan: domain.PlanConfiguration{MonthlyContribution: decimal.NewFromInt(10), InvestmentPeriodYears: 1}},
	}}

	report, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "Short", report.Scenarios[1].Name)
	assert.Len(t, report.Scenarios[0].Yearly, 10)
	assert.Len(t, report.Scenarios[1].Result.Records, 12)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenarios(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.RunScenarios(context.Background(), &domain.Configuration{})
	assert.Error(t, err)
}

func TestRunScenarioAuto_InvalidIndex(t *testing.T) {
	engine := NewProjectionEngine()
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{{Name: "scenario1"}}}

	result, err := engine.RunScenarioAuto(context.Background(), cfg, 5)

	assert.Error(t, err, "Should error for invalid index")
	assert.Nil(t, result, "Should return nil result")
	assert.Contains(t, err.Error(), "scenario index 5 out of range")
}
