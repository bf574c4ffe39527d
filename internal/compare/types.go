package compare

import (
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                     `json:"scenarioName"`
	Description  string                     `json:"description"`
	Projection   *domain.ScenarioProjection `json:"-"`

	// Key Metrics
	FinalCorpus                  decimal.Decimal   `json:"finalCorpus"`
	TotalInvestment              decimal.Decimal   `json:"totalInvestment"`
	FinalInflationAdjustedCorpus decimal.Decimal   `json:"finalInflationAdjustedCorpus"`
	CAGR                         *decimal.Decimal  `json:"cagr"`
	RealRateOfReturn             *decimal.Decimal  `json:"realRateOfReturn"`
	TotalWithdrawals             decimal.Decimal   `json:"totalWithdrawals"`
	TotalTax                     decimal.Decimal   `json:"totalTax"`
	TotalExpenses                decimal.Decimal   `json:"totalExpenses"`
	FirstDepletion               *domain.PeriodRef `json:"firstDepletion"`
	GoalReached                  *bool             `json:"goalReached,omitempty"`

	// Comparison to Base
	CorpusDiffFromBase     decimal.Decimal  `json:"corpusDiffFromBase"`
	CorpusPctFromBase      decimal.Decimal  `json:"corpusPctFromBase"`
	RealCorpusDiffFromBase decimal.Decimal  `json:"realCorpusDiffFromBase"`
	CAGRDiffFromBase       *decimal.Decimal `json:"cagrDiffFromBase"`
	RealReturnDiffFromBase *decimal.Decimal `json:"realReturnDiffFromBase"`
	WithdrawalDiffFromBase decimal.Decimal  `json:"withdrawalDiffFromBase"`
	TaxDiffFromBase        decimal.Decimal  `json:"taxDiffFromBase"`
	ExpenseDiffFromBase    decimal.Decimal  `json:"expenseDiffFromBase"`

	// Scenario Specifics (extracted from the plan for display)
	InvestmentPeriodYears   int             `json:"investmentPeriodYears"`
	MonthlyContribution     decimal.Decimal `json:"monthlyContribution"`
	BaseAnnualReturnPercent decimal.Decimal `json:"baseAnnualReturnPercent"`
}

// Depleted reports whether the scenario ran out of money
func (r *ComparisonResult) Depleted() bool {
	return r.FirstDepletion != nil
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// ToProjectionReport converts a ComparisonSet into a report the output
// formatters can render, base scenario first
func (cs *ComparisonSet) ToProjectionReport() *domain.ProjectionReport {
	report := &domain.ProjectionReport{Source: cs.ConfigPath}

	if cs.BaseResult != nil && cs.BaseResult.Projection != nil {
		report.Scenarios = append(report.Scenarios, *cs.BaseResult.Projection)
	}
	for _, result := range cs.AlternativeResults {
		if result.Projection != nil {
			report.Scenarios = append(report.Scenarios, *result.Projection)
		}
	}

	return report
}

// MetricsCalculator extracts key metrics from scenario projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a scenario projection
func (mc *MetricsCalculator) CalculateMetrics(projection *domain.ScenarioProjection) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:            projection.Name,
		Description:             projection.Description,
		Projection:              projection,
		InvestmentPeriodYears:   projection.Plan.InvestmentPeriodYears,
		MonthlyContribution:     projection.Plan.MonthlyContribution,
		BaseAnnualReturnPercent: projection.Plan.BaseAnnualReturnPercent,
	}
	if projection.Result == nil {
		return result
	}

	m := projection.Result.Metrics
	result.FinalCorpus = m.FinalCorpus
	result.TotalInvestment = m.TotalInvestment
	result.FinalInflationAdjustedCorpus = m.FinalInflationAdjustedCorpus
	result.CAGR = m.CAGR
	result.RealRateOfReturn = m.RealRateOfReturn
	result.TotalWithdrawals = m.TotalWithdrawalsGross
	result.TotalTax = m.TotalTaxPaid
	result.TotalExpenses = m.TotalExpensesPaid
	result.FirstDepletion = m.FirstDepletion
	if m.Goal != nil {
		reached := m.Goal.Reached
		result.GoalReached = &reached
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.CorpusDiffFromBase = scenario.FinalCorpus.Sub(base.FinalCorpus)

	if !base.FinalCorpus.IsZero() {
		scenario.CorpusPctFromBase = scenario.CorpusDiffFromBase.
			Div(base.FinalCorpus).
			Mul(decimal.NewFromInt(100))
	}

	scenario.RealCorpusDiffFromBase = scenario.FinalInflationAdjustedCorpus.Sub(base.FinalInflationAdjustedCorpus)
	scenario.CAGRDiffFromBase = diffOptional(scenario.CAGR, base.CAGR)
	scenario.RealReturnDiffFromBase = diffOptional(scenario.RealRateOfReturn, base.RealRateOfReturn)
	scenario.WithdrawalDiffFromBase = scenario.TotalWithdrawals.Sub(base.TotalWithdrawals)
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)
	scenario.ExpenseDiffFromBase = scenario.TotalExpenses.Sub(base.TotalExpenses)

	return scenario
}

// diffOptional returns a - b, or nil when either side is undefined
func diffOptional(a, b *decimal.Decimal) *decimal.Decimal {
	if a == nil || b == nil {
		return nil
	}
	d := a.Sub(*b)
	return &d
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by final corpus
	bestCorpus := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalCorpus.GreaterThan(bestCorpus.FinalCorpus) {
			bestCorpus = alt
		}
	}

	if bestCorpus != base {
		diff := bestCorpus.FinalCorpus.Sub(base.FinalCorpus)
		recommendations = append(recommendations,
			"Largest Corpus: "+bestCorpus.ScenarioName+" ends with "+diff.StringFixed(0)+
				" more than the base scenario")
	}

	// Find best purchasing power
	bestReal := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalInflationAdjustedCorpus.GreaterThan(bestReal.FinalInflationAdjustedCorpus) {
			bestReal = alt
		}
	}

	if bestReal != base && bestReal != bestCorpus {
		diff := bestReal.FinalInflationAdjustedCorpus.Sub(base.FinalInflationAdjustedCorpus)
		recommendations = append(recommendations,
			"Best Real Value: "+bestReal.ScenarioName+" adds "+diff.StringFixed(0)+
				" in today's money")
	}

	// Find lowest cost (tax + fees)
	lowestCost := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if totalCost(alt).LessThan(totalCost(lowestCost)) {
			lowestCost = alt
		}
	}

	if lowestCost != base {
		savings := totalCost(base).Sub(totalCost(lowestCost))
		recommendations = append(recommendations,
			"Lowest Costs: "+lowestCost.ScenarioName+" saves "+savings.StringFixed(0)+
				" in tax and fees")
	}

	// Depletion
	if base.Depleted() {
		for _, alt := range compSet.AlternativeResults {
			if !alt.Depleted() {
				recommendations = append(recommendations,
					fmt.Sprintf("Sustainability: %s avoids the depletion the base scenario hits in year %d, month %d",
						alt.ScenarioName, base.FirstDepletion.Year, base.FirstDepletion.Month))
				break
			}
		}
	} else {
		for _, alt := range compSet.AlternativeResults {
			if alt.Depleted() {
				recommendations = append(recommendations,
					fmt.Sprintf("Warning: %s depletes the corpus in year %d, month %d",
						alt.ScenarioName, alt.FirstDepletion.Year, alt.FirstDepletion.Month))
			}
		}
	}

	return recommendations
}

func totalCost(r *ComparisonResult) decimal.Decimal {
	return r.TotalTax.Add(r.TotalExpenses)
}
