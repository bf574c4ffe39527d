package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

func TestParameterSlider_StepsAndClamps(t *testing.T) {
	s := NewParameterSlider("base_annual_return_percent", "Return", 12, -10, 30, 0.5)

	assert.True(t, s.Increment())
	assert.Equal(t, 12.5, s.Value)
	assert.True(t, s.Decrement())
	assert.True(t, s.Decrement())
	assert.Equal(t, 11.5, s.Value)

	assert.True(t, s.SetValue(99))
	assert.Equal(t, 30.0, s.Value)
	assert.False(t, s.Increment(), "already at max")

	assert.True(t, s.SetValue(-50))
	assert.Equal(t, -10.0, s.Value)
	assert.False(t, s.Decrement(), "already at min")
}

func TestParameterSlider_SnapsToStepGrid(t *testing.T) {
	s := NewParameterSlider("expense_ratio_percent", "Expense", 0.3, 0, 3, 0.05)
	assert.Equal(t, 0.3, s.Value)

	s.SetValue(0.32)
	assert.Equal(t, 0.3, s.Value)

	for i := 0; i < 3; i++ {
		s.Increment()
	}
	assert.Equal(t, 0.45, s.Value)
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("monthly_contribution", "Monthly SIP", 5000, 0, 200000, 500).
		WithPrefix("₹").WithFormat("%.0f").WithDescription("Invested monthly")

	assert.Equal(t, "₹5000", s.FormattedValue())
	assert.InDelta(t, 0.025, s.Percentage(), 1e-9)

	out := s.Render()
	assert.Contains(t, out, "Monthly SIP")
	assert.Contains(t, out, "₹5000")
	assert.NotContains(t, out, "Invested monthly", "description only shows while focused")

	s.SetFocused(true)
	out = s.Render()
	assert.Contains(t, out, "▶")
	assert.Contains(t, out, "Invested monthly")
}

func TestMetricCards(t *testing.T) {
	base := decimal.NewFromInt(1000000)
	card := NewAmountCard("Final Corpus", decimal.NewFromInt(1200000), &base)
	require.NotNil(t, card.Trend)
	assert.True(t, card.Trend.IsPositive)
	assert.Equal(t, "+₹2.0 L", card.Trend.Change)

	card = NewAmountCard("Final Corpus", decimal.NewFromInt(900000), &base)
	require.NotNil(t, card.Trend)
	assert.False(t, card.Trend.IsPositive)
	assert.Equal(t, "-₹1.0 L", card.Trend.Change)

	assert.Nil(t, NewAmountCard("Same", base, &base).Trend)
	assert.Nil(t, NewAmountCard("No baseline", base, nil).Trend)

	rate, baseRate := decimal.NewFromFloat(12.4), decimal.NewFromInt(12)
	rc := NewRateCard("CAGR", &rate, &baseRate)
	assert.Equal(t, "12.40%", rc.Value)
	require.NotNil(t, rc.Trend)
	assert.Equal(t, "+0.40 pts", rc.Trend.Change)

	assert.Equal(t, "N/A", NewRateCard("CAGR", nil, &baseRate).Value)

	grid := MetricGrid([]*MetricCard{card, rc}, 2)
	assert.Contains(t, grid, "Same")
	assert.Contains(t, grid, "CAGR")
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestGoalProgressBar(t *testing.T) {
	assert.Nil(t, NewGoalProgressBar(nil, decimal.NewFromInt(10)))

	goal := &domain.GoalProgress{Target: decimal.NewFromInt(1000000)}
	bar := NewGoalProgressBar(goal, decimal.NewFromInt(250000))
	require.NotNil(t, bar)
	assert.InDelta(t, 0.25, bar.Fraction(), 1e-9)
	assert.False(t, bar.IsComplete())
	out := bar.WithWidth(20).Render()
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "short by ₹7.5 L")

	bar = NewGoalProgressBar(goal, decimal.NewFromInt(1500000))
	assert.Equal(t, 1.0, bar.Fraction())
	assert.True(t, bar.IsComplete())
	assert.Contains(t, bar.Render(), "reached")
}

func projectYears(t *testing.T, plan domain.PlanConfiguration) []domain.YearSummary {
	t.Helper()
	result := calculation.Project(plan)
	years := calculation.AggregateYearly(result)
	require.NotEmpty(t, years)
	return years
}

func TestCorpusChart(t *testing.T) {
	years := projectYears(t, domain.DefaultPlan())
	out := NewCorpusChart(years).WithSize(40, 8).Render()

	assert.Contains(t, out, "Corpus by Year")
	assert.Contains(t, out, "Y1")
	assert.Contains(t, out, "Real corpus")
	assert.Contains(t, out, "Invested")

	assert.Contains(t, NewCorpusChart(nil).Render(), "No data to display")
}

func TestCorpusChart_SingleYear(t *testing.T) {
	plan := domain.DefaultPlan()
	plan.InvestmentPeriodYears = 1
	out := NewCorpusChart(projectYears(t, plan)).Render()
	assert.Contains(t, out, "Y1")
}

func TestYearTable_ScrollAndRender(t *testing.T) {
	years := projectYears(t, domain.DefaultPlan())
	table := NewYearTable(years, 4)

	out := table.Render()
	assert.Contains(t, out, "Corpus")
	assert.Contains(t, out, "years 1-4 of 10")

	table.Scroll(100)
	assert.Equal(t, 6, table.Offset)
	assert.Contains(t, table.Render(), "years 7-10 of 10")

	table.Scroll(-100)
	assert.Equal(t, 0, table.Offset)

	all := NewYearTable(years, 20)
	all.Scroll(3)
	assert.Equal(t, 0, all.Offset, "nothing to scroll when every year fits")
	assert.NotContains(t, all.Render(), "pgup/pgdn")

	assert.Contains(t, NewYearTable(nil, 5).Render(), "No years projected")
}

func TestScenarioCards(t *testing.T) {
	plan := domain.DefaultPlan()
	plan.Goal = domain.GoalConfig{Enabled: true, Amount: decimal.NewFromInt(2000000)}
	plan.Withdrawal.Enabled = true
	plan.Withdrawal.StartYear = 8
	card := NewScenarioCardFor(domain.Scenario{Name: "Growth", Description: "Equity SIP", Plan: plan})

	require.NotEmpty(t, card.Highlights)
	assert.Contains(t, card.Highlights[0], "₹5 K/month for 10 years at 12.00%")
	assert.Contains(t, strings.Join(card.Highlights, "|"), "Withdrawals from year 8")
	assert.Contains(t, strings.Join(card.Highlights, "|"), "Goal ₹20.0 L")
	assert.Contains(t, card.Render(), "Equity SIP")

	other := NewScenarioCard("Other")
	list := ScenarioListCompact([]*ScenarioCard{card, other}, 1)
	assert.Contains(t, list, "▸ Other")
	assert.Contains(t, ScenarioListCompact(nil, 0), "No scenarios available")
}
