package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StepUpType selects how the monthly contribution grows at each year boundary
type StepUpType string

const (
	StepUpPercentage StepUpType = "percentage"
	StepUpFixed      StepUpType = "fixed"
)

// LumpsumFrequency selects which months of a year receive the recurring lump sum
type LumpsumFrequency string

const (
	LumpsumNever      LumpsumFrequency = "never"
	LumpsumMonthly    LumpsumFrequency = "monthly"
	LumpsumQuarterly  LumpsumFrequency = "quarterly"
	LumpsumHalfYearly LumpsumFrequency = "half-yearly"
	LumpsumYearly     LumpsumFrequency = "yearly"
)

// WithdrawalFrequency selects how often a systematic withdrawal is taken
type WithdrawalFrequency string

const (
	WithdrawalMonthly WithdrawalFrequency = "monthly"
	WithdrawalYearly  WithdrawalFrequency = "yearly"
)

// WithdrawalType selects whether the withdrawal amount is a currency amount or a percent of corpus
type WithdrawalType string

const (
	WithdrawalFixed      WithdrawalType = "fixed"
	WithdrawalPercentage WithdrawalType = "percentage"
)

// StepUpConfig describes the annual growth of the monthly contribution
type StepUpConfig struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Type    StepUpType      `yaml:"type" json:"type"`
	Value   decimal.Decimal `yaml:"value" json:"value"`
}

// LumpsumConfig describes recurring additional injections
type LumpsumConfig struct {
	Enabled   bool             `yaml:"enabled" json:"enabled"`
	Amount    decimal.Decimal  `yaml:"amount" json:"amount"`
	Frequency LumpsumFrequency `yaml:"frequency" json:"frequency"`
}

// WithdrawalConfig describes a systematic withdrawal plan (SWP)
type WithdrawalConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Amount is a currency amount for fixed withdrawals and a percent of corpus
	// (0.5 means 0.5%) for percentage withdrawals.
	Amount            decimal.Decimal     `yaml:"amount" json:"amount"`
	Frequency         WithdrawalFrequency `yaml:"frequency" json:"frequency"`
	StartYear         int                 `yaml:"start_year" json:"startYear"`
	Type              WithdrawalType      `yaml:"type" json:"type"`
	InflationAdjusted bool                `yaml:"inflation_adjusted" json:"inflationAdjusted"`
}

// InflationConfig describes the synthetic CPI used for real-value reporting
type InflationConfig struct {
	Enabled           bool            `yaml:"enabled" json:"enabled"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annualRatePercent"`
}

// VariableReturnEntry applies RatePercent to every year up to and including YearEnd
type VariableReturnEntry struct {
	YearEnd     int             `yaml:"year_end" json:"yearEnd"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

// VariableReturnsConfig overrides the base annual return per year when enabled
type VariableReturnsConfig struct {
	Enabled bool                  `yaml:"enabled" json:"enabled"`
	Entries []VariableReturnEntry `yaml:"entries" json:"entries"`
}

// TaxConfig is a flat tax applied to the estimated gains portion of each withdrawal
type TaxConfig struct {
	Enabled     bool            `yaml:"enabled" json:"enabled"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

// ExpenseRatioConfig is an annual fee charged monthly against the corpus
type ExpenseRatioConfig struct {
	Enabled           bool            `yaml:"enabled" json:"enabled"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annualRatePercent"`
}

// GoalConfig is a target corpus. It is tracked for progress only.
type GoalConfig struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
}

// PlanConfiguration is the complete set of declared parameters for one projection run
type PlanConfiguration struct {
	InitialInvestment       decimal.Decimal `yaml:"initial_investment" json:"initialInvestment"`
	MonthlyContribution     decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	InvestmentPeriodYears   int             `yaml:"investment_period_years" json:"investmentPeriodYears"`
	BaseAnnualReturnPercent decimal.Decimal `yaml:"base_annual_return_percent" json:"baseAnnualReturnPercent"`

	StepUp          StepUpConfig          `yaml:"step_up" json:"stepUp"`
	Lumpsum         LumpsumConfig         `yaml:"lumpsum" json:"lumpsum"`
	Withdrawal      WithdrawalConfig      `yaml:"withdrawal" json:"withdrawal"`
	Inflation       InflationConfig       `yaml:"inflation" json:"inflation"`
	VariableReturns VariableReturnsConfig `yaml:"variable_returns" json:"variableReturns"`
	Tax             TaxConfig             `yaml:"tax" json:"tax"`
	ExpenseRatio    ExpenseRatioConfig    `yaml:"expense_ratio" json:"expenseRatio"`
	Goal            GoalConfig            `yaml:"goal" json:"goal"`
}

// MaxInvestmentYears is the longest horizon a plan can project. Strict
// validation rejects longer periods; the engine clamps them.
const MaxInvestmentYears = 100

// DefaultPlan returns the calculator's out-of-the-box plan: a 5,000 monthly
// contribution at 12% for 10 years with every optional feature off.
func DefaultPlan() PlanConfiguration {
	return PlanConfiguration{
		InitialInvestment:       decimal.Zero,
		MonthlyContribution:     decimal.NewFromInt(5000),
		InvestmentPeriodYears:   10,
		BaseAnnualReturnPercent: decimal.NewFromInt(12),
		StepUp:                  StepUpConfig{Type: StepUpPercentage},
		Lumpsum:                 LumpsumConfig{Frequency: LumpsumYearly},
		Withdrawal: WithdrawalConfig{
			Frequency: WithdrawalYearly,
			Type:      WithdrawalFixed,
		},
	}
}

// DeepCopy returns a copy that shares no mutable state with p
func (p PlanConfiguration) DeepCopy() PlanConfiguration {
	cp := p
	if p.VariableReturns.Entries != nil {
		cp.VariableReturns.Entries = make([]VariableReturnEntry, len(p.VariableReturns.Entries))
		copy(cp.VariableReturns.Entries, p.VariableReturns.Entries)
	}
	return cp
}

// SortedVariableReturns returns the variable-return entries ordered by YearEnd.
// Entries sharing a YearEnd keep their declared order.
func (p PlanConfiguration) SortedVariableReturns() []VariableReturnEntry {
	entries := make([]VariableReturnEntry, len(p.VariableReturns.Entries))
	copy(entries, p.VariableReturns.Entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].YearEnd < entries[j].YearEnd })
	return entries
}

// IsValid reports whether t is a declared step-up type
func (t StepUpType) IsValid() bool {
	return t == StepUpPercentage || t == StepUpFixed
}

// IsValid reports whether f is a declared lump-sum frequency
func (f LumpsumFrequency) IsValid() bool {
	switch f {
	case LumpsumNever, LumpsumMonthly, LumpsumQuarterly, LumpsumHalfYearly, LumpsumYearly:
		return true
	}
	return false
}

// IsValid reports whether f is a declared withdrawal frequency
func (f WithdrawalFrequency) IsValid() bool {
	return f == WithdrawalMonthly || f == WithdrawalYearly
}

// IsValid reports whether t is a declared withdrawal type
func (t WithdrawalType) IsValid() bool {
	return t == WithdrawalFixed || t == WithdrawalPercentage
}
