package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/components"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// Slider keys, one per editable plan input
const (
	ParamMonthlyContribution = "monthly_contribution"
	ParamReturn              = "base_annual_return_percent"
	ParamYears               = "investment_period_years"
	ParamStepUp              = "step_up_percent"
	ParamInflation           = "inflation_percent"
	ParamExpenseRatio        = "expense_ratio_percent"
	ParamWithdrawal          = "withdrawal_amount"
)

// ParametersModel is the explorer scene: sliders over the selected plan with
// a live summary of the re-projected result
type ParametersModel struct {
	plan          domain.PlanConfiguration // plan as loaded; untouched sliders leave it as is
	sliders       []*components.ParameterSlider
	initial       map[string]float64
	focusedSlider int
	modified      bool

	projection *domain.ScenarioProjection
	baseline   *domain.ScenarioProjection

	width  int
	height int
}

// NewParametersModel creates a new explorer scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{initial: map[string]float64{}}
}

// SetPlan replaces the plan being explored and rebuilds the sliders
func (m *ParametersModel) SetPlan(plan domain.PlanConfiguration) {
	m.plan = plan.DeepCopy()
	m.modified = false
	m.buildSliders()
}

// SetProjection updates the live summary; baseline is the loaded plan's projection
func (m *ParametersModel) SetProjection(current, baseline *domain.ScenarioProjection) {
	m.projection = current
	m.baseline = baseline
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Modified reports whether any slider moved away from the loaded plan
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Sliders returns the sliders in display order
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

func (m *ParametersModel) buildSliders() {
	p := m.plan
	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider(ParamMonthlyContribution, "Monthly SIP", p.MonthlyContribution.InexactFloat64(), 0, 200000, 500).
			WithPrefix("₹").WithFormat("%.0f").
			WithDescription("Amount invested at the start of every month"),
		components.NewParameterSlider(ParamReturn, "Expected return", p.BaseAnnualReturnPercent.InexactFloat64(), -10, 30, 0.5).
			WithUnit("%").WithFormat("%.1f").
			WithDescription("Annual return before fees, compounded monthly"),
		components.NewParameterSlider(ParamYears, "Period", float64(p.InvestmentPeriodYears), 1, 50, 1).
			WithUnit(" yrs").WithFormat("%.0f").
			WithDescription("Number of years to project"),
		components.NewParameterSlider(ParamStepUp, "Annual step-up", percentStepUp(p), 0, 25, 1).
			WithUnit("%").WithFormat("%.0f").
			WithDescription("Yearly percentage increase of the SIP; 0 turns it off"),
		components.NewParameterSlider(ParamInflation, "Inflation", enabledRate(p.Inflation.Enabled, p.Inflation.AnnualRatePercent), 0, 15, 0.5).
			WithUnit("%").WithFormat("%.1f").
			WithDescription("Annual inflation used for the real corpus; 0 turns it off"),
		components.NewParameterSlider(ParamExpenseRatio, "Expense ratio", enabledRate(p.ExpenseRatio.Enabled, p.ExpenseRatio.AnnualRatePercent), 0, 3, 0.05).
			WithUnit("%").WithFormat("%.2f").
			WithDescription("Annual fund fee deducted monthly from the corpus; 0 turns it off"),
	}
	if p.Withdrawal.Enabled && p.Withdrawal.Type == domain.WithdrawalFixed {
		m.sliders = append(m.sliders,
			components.NewParameterSlider(ParamWithdrawal, "Withdrawal", p.Withdrawal.Amount.InexactFloat64(), 0, 500000, 1000).
				WithPrefix("₹").WithFormat("%.0f").
				WithDescription("Fixed amount withdrawn per "+freqNoun(p.Withdrawal.Frequency)))
	}

	m.initial = make(map[string]float64, len(m.sliders))
	for _, s := range m.sliders {
		s.WithWidth(30)
		m.initial[s.Key] = s.Value
	}
	if m.focusedSlider >= len(m.sliders) {
		m.focusedSlider = 0
	}
	m.sliders[m.focusedSlider].SetFocused(true)
}

func percentStepUp(p domain.PlanConfiguration) float64 {
	if p.StepUp.Enabled && p.StepUp.Type == domain.StepUpPercentage {
		return p.StepUp.Value.InexactFloat64()
	}
	return 0
}

func enabledRate(enabled bool, rate decimal.Decimal) float64 {
	if !enabled {
		return 0
	}
	return rate.InexactFloat64()
}

func freqNoun(f domain.WithdrawalFrequency) string {
	if f == domain.WithdrawalMonthly {
		return "month"
	}
	return "year"
}

// Plan returns the loaded plan with every moved slider applied
func (m *ParametersModel) Plan() domain.PlanConfiguration {
	p := m.plan.DeepCopy()
	for _, s := range m.sliders {
		if s.Value == m.initial[s.Key] {
			continue
		}
		v := decimal.NewFromFloat(s.Value)
		switch s.Key {
		case ParamMonthlyContribution:
			p.MonthlyContribution = v
		case ParamReturn:
			p.BaseAnnualReturnPercent = v
			p.VariableReturns.Enabled = false
		case ParamYears:
			p.InvestmentPeriodYears = int(s.Value)
		case ParamStepUp:
			p.StepUp = domain.StepUpConfig{Enabled: v.IsPositive(), Type: domain.StepUpPercentage, Value: v}
		case ParamInflation:
			p.Inflation = domain.InflationConfig{Enabled: v.IsPositive(), AnnualRatePercent: v}
		case ParamExpenseRatio:
			p.ExpenseRatio = domain.ExpenseRatioConfig{Enabled: v.IsPositive(), AnnualRatePercent: v}
		case ParamWithdrawal:
			p.Withdrawal.Amount = v
		}
	}
	return p
}

// Update handles messages for the explorer scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.moveFocus(1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l", "+"))):
		return m, m.adjust(m.focused().Increment)
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h", "-"))):
		return m, m.adjust(m.focused().Decrement)
	case key.Matches(msg, key.NewBinding(key.WithKeys("u"))):
		m.buildSliders()
		m.modified = false
		return m, func() tea.Msg { return tuimsg.ResetPlanMsg{} }
	}
	return m, nil
}

func (m *ParametersModel) focused() *components.ParameterSlider {
	return m.sliders[m.focusedSlider]
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[next].SetFocused(true)
}

func (m *ParametersModel) adjust(step func() bool) tea.Cmd {
	if !step() {
		return nil
	}
	m.modified = false
	for _, s := range m.sliders {
		if s.Value != m.initial[s.Key] {
			m.modified = true
		}
	}
	plan, param := m.Plan(), m.focused().Key
	return func() tea.Msg {
		return tuimsg.PlanChangedMsg{Plan: plan, Parameter: param}
	}
}

// View renders the explorer scene
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return tuistyles.InfoStyle.Render("No scenario selected.\n\nPick one on the Scenarios screen (press 's').")
	}

	rows := make([]string, 0, len(m.sliders)*2)
	for _, s := range m.sliders {
		rows = append(rows, s.Render(), "")
	}
	sliders := tuistyles.BorderStyle.Render(
		tuistyles.TitleStyle.Render("Adjust Plan") + "\n\n" + strings.TrimRight(strings.Join(rows, "\n"), "\n"))

	content := lipgloss.JoinHorizontal(lipgloss.Top, sliders, "  ", m.renderSummary())

	var status string
	if m.modified {
		status = lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Bold(true).
			Render("Modified: press u to reset to the loaded plan") + "\n"
	}
	help := tuistyles.HelpDescStyle.Render("↑/↓ select • ←/→ adjust • u reset • r results • c compare")
	return content + "\n\n" + status + help
}

func (m *ParametersModel) renderSummary() string {
	if m.projection == nil || m.projection.Result == nil {
		return ""
	}
	cur := m.projection.Result.Metrics
	var base *domain.FinalMetrics
	if m.baseline != nil && m.baseline.Result != nil {
		base = &m.baseline.Result.Metrics
	}

	cards := []*components.MetricCard{
		components.NewAmountCard("Final Corpus", cur.FinalCorpus, baselineAmount(base, func(b *domain.FinalMetrics) decimal.Decimal { return b.FinalCorpus })),
		components.NewAmountCard("Total Invested", cur.TotalInvestment, baselineAmount(base, func(b *domain.FinalMetrics) decimal.Decimal { return b.TotalInvestment })),
		components.NewAmountCard("Real Corpus", cur.FinalInflationAdjustedCorpus, baselineAmount(base, func(b *domain.FinalMetrics) decimal.Decimal { return b.FinalInflationAdjustedCorpus })),
		components.NewRateCard("CAGR", cur.CAGR, baselineRate(base, func(b *domain.FinalMetrics) *decimal.Decimal { return b.CAGR })),
	}
	parts := []string{components.MetricGrid(cards, 2)}

	if bar := components.NewGoalProgressBar(cur.Goal, cur.FinalCorpus); bar != nil {
		parts = append(parts, bar.WithWidth(30).Render())
	}
	if cur.FirstDepletion != nil {
		parts = append(parts, tuistyles.WarningStyle.Render(depletionText(cur.FirstDepletion)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func baselineAmount(base *domain.FinalMetrics, get func(*domain.FinalMetrics) decimal.Decimal) *decimal.Decimal {
	if base == nil {
		return nil
	}
	v := get(base)
	return &v
}

func baselineRate(base *domain.FinalMetrics, get func(*domain.FinalMetrics) *decimal.Decimal) *decimal.Decimal {
	if base == nil {
		return nil
	}
	return get(base)
}
