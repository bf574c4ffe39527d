package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlyRecord captures the end-of-month state of one simulated month
type MonthlyRecord struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	TotalInvestment          decimal.Decimal `json:"totalInvestment"` // cumulative, including the initial investment
	Corpus                   decimal.Decimal `json:"corpus"`
	Returns                  decimal.Decimal `json:"returns"` // corpus - totalInvestment
	MonthlyGrowth            decimal.Decimal `json:"monthlyGrowth"`
	WithdrawalThisMonth      decimal.Decimal `json:"withdrawalThisMonth"` // gross, after capping
	TaxPaidThisMonth         decimal.Decimal `json:"taxPaidThisMonth"`
	ExpenseDeductedThisMonth decimal.Decimal `json:"expenseDeductedThisMonth"`
	InflationAdjustedCorpus  decimal.Decimal `json:"inflationAdjustedCorpus"`
	PurchasingPowerChange    decimal.Decimal `json:"purchasingPowerChange"` // percent
	CurrentCPI               decimal.Decimal `json:"currentCpi"`

	ContributionThisMonth decimal.Decimal `json:"contributionThisMonth"`
	LumpsumThisMonth      decimal.Decimal `json:"lumpsumThisMonth"`
	AnnualRatePercent     decimal.Decimal `json:"annualRatePercent"`
	RequestedWithdrawal   decimal.Decimal `json:"requestedWithdrawal"` // basis before capping at corpus
	Depleted              bool            `json:"depleted"`
}

// InvestedThisMonth returns the contribution plus lump sum posted this month
func (r MonthlyRecord) InvestedThisMonth() decimal.Decimal {
	return r.ContributionThisMonth.Add(r.LumpsumThisMonth)
}

// WithdrawalShortfall returns how much of the requested withdrawal could not be delivered
func (r MonthlyRecord) WithdrawalShortfall() decimal.Decimal {
	return decimal.Max(decimal.Zero, r.RequestedWithdrawal.Sub(r.WithdrawalThisMonth))
}

// PeriodRef identifies a single simulated month
type PeriodRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// GoalProgress reports how the projection fares against the plan's target corpus
type GoalProgress struct {
	Target    decimal.Decimal `json:"target"`
	Reached   bool            `json:"reached"`
	ReachedAt *PeriodRef      `json:"reachedAt"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// FinalMetrics summarises a whole projection.
// CAGR and RealRateOfReturn are nil when mathematically undefined.
type FinalMetrics struct {
	FinalCorpus                  decimal.Decimal  `json:"finalCorpus"`
	TotalInvestment              decimal.Decimal  `json:"totalInvestment"`
	TotalReturns                 decimal.Decimal  `json:"totalReturns"`
	FinalInflationAdjustedCorpus decimal.Decimal  `json:"finalInflationAdjustedCorpus"`
	FinalPurchasingPowerChange   decimal.Decimal  `json:"finalPurchasingPowerChange"`
	FinalCPI                     decimal.Decimal  `json:"finalCpi"`
	CAGR                         *decimal.Decimal `json:"cagr"`
	RealRateOfReturn             *decimal.Decimal `json:"realRateOfReturn"`
	TotalWithdrawalsGross        decimal.Decimal  `json:"totalWithdrawalsGross"`
	TotalTaxPaid                 decimal.Decimal  `json:"totalTaxPaid"`
	TotalExpensesPaid            decimal.Decimal  `json:"totalExpensesPaid"`

	FirstDepletion *PeriodRef    `json:"firstDepletion"`
	Goal           *GoalProgress `json:"goal"`
}

// SimulationResult is the full output of one projection run
type SimulationResult struct {
	Records []MonthlyRecord `json:"records"`
	Metrics FinalMetrics    `json:"metrics"`
}

// IsDepleted reports whether the corpus was exhausted at any point
func (r *SimulationResult) IsDepleted() bool {
	return r.Metrics.FirstDepletion != nil
}

// Years returns the number of distinct simulated years
func (r *SimulationResult) Years() int {
	if len(r.Records) == 0 {
		return 0
	}
	return r.Records[len(r.Records)-1].Year
}

// YearSummary is the year-aggregated view of the ledger: year-end state plus
// flows summed within the year.
type YearSummary struct {
	Year                           int             `json:"year"`
	OpeningCorpus                  decimal.Decimal `json:"openingCorpus"`
	InvestedDuringYear             decimal.Decimal `json:"investedDuringYear"`
	GrowthDuringYear               decimal.Decimal `json:"growthDuringYear"`
	WithdrawalDuringYear           decimal.Decimal `json:"withdrawalDuringYear"`
	TaxDuringYear                  decimal.Decimal `json:"taxDuringYear"`
	ExpenseDuringYear              decimal.Decimal `json:"expenseDuringYear"`
	TotalInvestment                decimal.Decimal `json:"totalInvestment"`
	ClosingCorpus                  decimal.Decimal `json:"closingCorpus"`
	ClosingCPI                     decimal.Decimal `json:"closingCpi"`
	ClosingInflationAdjustedCorpus decimal.Decimal `json:"closingInflationAdjustedCorpus"`
	AnnualRatePercent              decimal.Decimal `json:"annualRatePercent"`
	MonthlyContribution            decimal.Decimal `json:"monthlyContribution"`
	Depleted                       bool            `json:"depleted"`
}

// ScenarioProjection pairs a named scenario with its projection
type ScenarioProjection struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Plan        PlanConfiguration `json:"plan"`
	Result      *SimulationResult `json:"result"`
	Yearly      []YearSummary     `json:"yearly"`
}

// ProjectionReport holds the projections of every scenario in a configuration
type ProjectionReport struct {
	Source    string               `json:"source,omitempty"`
	Scenarios []ScenarioProjection `json:"scenarios"`
}
