package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	hundred         = decimal.NewFromInt(100)
	maxInflationPct = decimal.NewFromInt(50)
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML file. Only structural problems
// (no scenarios, missing or duplicate names) fail the load; value ranges are
// left to ValidateConfiguration.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses YAML scenario data
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.validateStructure(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// LoadStrict loads a file and runs the strict validation pass
func (ip *InputParser) LoadStrict(filename string) (*domain.Configuration, error) {
	config, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (ip *InputParser) validateStructure(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	seen := make(map[string]bool, len(config.Scenarios))
	for i, s := range config.Scenarios {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateConfiguration runs the strict validation pass over every scenario.
// It returns a *ConfigurationError listing every issue found, or nil.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateStructure(config); err != nil {
		return &ConfigurationError{Issues: []FieldIssue{{Field: "scenarios", Message: err.Error()}}}
	}

	var issues []FieldIssue
	for _, s := range config.Scenarios {
		for _, issue := range ValidatePlan(s.Plan) {
			issue.Scenario = s.Name
			issues = append(issues, issue)
		}
	}
	if len(issues) > 0 {
		return &ConfigurationError{Issues: issues}
	}
	return nil
}

// ValidatePlan checks a single plan against the strict rules. Fields of a
// disabled feature are not checked.
func ValidatePlan(plan domain.PlanConfiguration) []FieldIssue {
	v := &planValidator{}

	v.nonNegative("initial_investment", plan.InitialInvestment)
	v.nonNegative("monthly_contribution", plan.MonthlyContribution)
	if plan.InvestmentPeriodYears < 0 || plan.InvestmentPeriodYears > domain.MaxInvestmentYears {
		v.addf("investment_period_years", "must be between 0 and %d, got %d", domain.MaxInvestmentYears, plan.InvestmentPeriodYears)
	}
	v.returnRate("base_annual_return_percent", plan.BaseAnnualReturnPercent)

	if plan.StepUp.Enabled {
		if !plan.StepUp.Type.IsValid() {
			v.addf("step_up.type", "must be percentage or fixed, got %q", plan.StepUp.Type)
		}
		v.nonNegative("step_up.value", plan.StepUp.Value)
		if plan.StepUp.Type == domain.StepUpPercentage {
			v.atMost("step_up.value", plan.StepUp.Value, hundred)
		}
	}

	if plan.Lumpsum.Enabled {
		if !plan.Lumpsum.Frequency.IsValid() {
			v.addf("lumpsum.frequency", "must be one of never, monthly, quarterly, half-yearly, yearly, got %q", plan.Lumpsum.Frequency)
		}
		v.nonNegative("lumpsum.amount", plan.Lumpsum.Amount)
	}

	if plan.Withdrawal.Enabled {
		w := plan.Withdrawal
		if !w.Frequency.IsValid() {
			v.addf("withdrawal.frequency", "must be monthly or yearly, got %q", w.Frequency)
		}
		if !w.Type.IsValid() {
			v.addf("withdrawal.type", "must be fixed or percentage, got %q", w.Type)
		}
		v.nonNegative("withdrawal.amount", w.Amount)
		if w.Type == domain.WithdrawalPercentage {
			v.atMost("withdrawal.amount", w.Amount, hundred)
		}
		if w.StartYear < 0 {
			v.addf("withdrawal.start_year", "cannot be negative, got %d", w.StartYear)
		}
		if w.InflationAdjusted && w.Type == domain.WithdrawalPercentage {
			v.addf("withdrawal.inflation_adjusted", "only applies to fixed withdrawals")
		}
	}

	if plan.Inflation.Enabled {
		v.nonNegative("inflation.annual_rate_percent", plan.Inflation.AnnualRatePercent)
		v.atMost("inflation.annual_rate_percent", plan.Inflation.AnnualRatePercent, maxInflationPct)
	}

	if plan.VariableReturns.Enabled {
		seen := make(map[int]bool)
		for i, e := range plan.VariableReturns.Entries {
			field := fmt.Sprintf("variable_returns.entries[%d]", i)
			if e.YearEnd < 1 {
				v.addf(field+".year_end", "must be at least 1, got %d", e.YearEnd)
			}
			if seen[e.YearEnd] {
				v.addf(field+".year_end", "duplicate year_end %d", e.YearEnd)
			}
			seen[e.YearEnd] = true
			v.returnRate(field+".rate_percent", e.RatePercent)
		}
	}

	if plan.Tax.Enabled {
		v.nonNegative("tax.rate_percent", plan.Tax.RatePercent)
		v.atMost("tax.rate_percent", plan.Tax.RatePercent, hundred)
	}

	if plan.ExpenseRatio.Enabled {
		v.nonNegative("expense_ratio.annual_rate_percent", plan.ExpenseRatio.AnnualRatePercent)
		v.atMost("expense_ratio.annual_rate_percent", plan.ExpenseRatio.AnnualRatePercent, hundred)
	}

	if plan.Goal.Enabled && !plan.Goal.Amount.IsPositive() {
		v.addf("goal.amount", "must be positive when the goal is enabled, got %s", plan.Goal.Amount.String())
	}

	return v.issues
}

type planValidator struct {
	issues []FieldIssue
}

func (v *planValidator) addf(field, format string, args ...any) {
	v.issues = append(v.issues, FieldIssue{Field: "plan." + field, Message: fmt.Sprintf(format, args...)})
}

func (v *planValidator) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.addf(field, "cannot be negative, got %s", d.String())
	}
}

func (v *planValidator) atMost(field string, d, limit decimal.Decimal) {
	if d.GreaterThan(limit) {
		v.addf(field, "cannot exceed %s, got %s", limit.String(), d.String())
	}
}

func (v *planValidator) returnRate(field string, d decimal.Decimal) {
	if d.LessThanOrEqual(hundred.Neg()) || d.GreaterThan(hundred) {
		v.addf(field, "must be greater than -100 and at most 100, got %s", d.String())
	}
}
