package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Scenarios(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "scenarios.yaml"))
	require.NoError(t, err)
	require.Len(t, cfg.Scenarios, 2)

	base := cfg.Scenarios[0]
	assert.Equal(t, "Base", base.Name)
	assert.True(t, base.Plan.MonthlyContribution.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 10, base.Plan.InvestmentPeriodYears)
	assert.False(t, base.Plan.StepUp.Enabled)

	drawdown, err := cfg.FindScenario("Retirement Drawdown")
	require.NoError(t, err)
	p := drawdown.Plan
	assert.Equal(t, domain.StepUpPercentage, p.StepUp.Type)
	assert.Equal(t, domain.LumpsumYearly, p.Lumpsum.Frequency)
	assert.Equal(t, domain.WithdrawalMonthly, p.Withdrawal.Frequency)
	assert.Equal(t, 16, p.Withdrawal.StartYear)
	assert.True(t, p.Withdrawal.InflationAdjusted)
	assert.True(t, p.Tax.RatePercent.Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, p.ExpenseRatio.AnnualRatePercent.Equal(decimal.NewFromFloat(0.75)))
	require.Len(t, p.VariableReturns.Entries, 3)
	assert.Equal(t, 20, p.VariableReturns.Entries[1].YearEnd)
	assert.True(t, p.Goal.Amount.Equal(decimal.NewFromInt(20000000)))

	assert.NoError(t, parser.ValidateConfiguration(cfg))
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = parser.LoadFromFile(filepath.Join("testdata", "duplicate_names.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")

	_, err = parser.LoadFromBytes([]byte("scenarios: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = parser.LoadFromBytes([]byte("scenarios: []"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios provided")

	_, err = parser.LoadFromBytes([]byte("scenarios:\n  - plan:\n      monthly_contribution: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadFromFile_PermissiveWithoutStrict(t *testing.T) {
	parser := NewInputParser()

	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "invalid_values.yaml"))
	require.NoError(t, err, "value ranges are only checked by strict validation")
	require.Len(t, cfg.Scenarios, 1)

	err = parser.ValidateConfiguration(cfg)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	fields := make([]string, 0, len(cfgErr.Issues))
	for _, issue := range cfgErr.Issues {
		assert.Equal(t, "Broken", issue.Scenario)
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{
		"plan.initial_investment",
		"plan.investment_period_years",
		"plan.step_up.type",
		"plan.withdrawal.frequency",
		"plan.withdrawal.amount",
		"plan.tax.rate_percent",
		"plan.goal.amount",
	}, fields)
	assert.Contains(t, err.Error(), "7 issues")
}

func TestLoadStrict(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadStrict(filepath.Join("testdata", "invalid_values.yaml"))
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	cfg, err := parser.LoadStrict(filepath.Join("testdata", "scenarios.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Scenarios, 2)
}

func TestLoadFromBytes_EnumStrings(t *testing.T) {
	data := []byte(`
scenarios:
  - name: Quarterly
    plan:
      monthly_contribution: 2500
      investment_period_years: 3
      base_annual_return_percent: 9.5
      lumpsum:
        enabled: true
        amount: "10000.50"
        frequency: half-yearly
      withdrawal:
        enabled: true
        amount: 0.5
        frequency: yearly
        type: percentage
`)
	cfg, err := NewInputParser().LoadFromBytes(data)
	require.NoError(t, err)

	p := cfg.Scenarios[0].Plan
	assert.Equal(t, domain.LumpsumHalfYearly, p.Lumpsum.Frequency)
	assert.True(t, p.Lumpsum.Amount.Equal(decimal.NewFromFloat(10000.50)))
	assert.Equal(t, domain.WithdrawalPercentage, p.Withdrawal.Type)
	assert.True(t, p.BaseAnnualReturnPercent.Equal(decimal.NewFromFloat(9.5)))
	assert.Empty(t, ValidatePlan(p))
}
