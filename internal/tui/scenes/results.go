package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/components"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	projection *domain.ScenarioProjection
	table      *components.YearTable
	showChart  bool
	width      int
	height     int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{showChart: true}
}

// SetProjection updates the projection to display, keeping the table scroll position
func (m *ResultsModel) SetProjection(p *domain.ScenarioProjection) {
	m.projection = p
	years := p.Yearly
	if years == nil && p.Result != nil {
		years = calculation.AggregateYearly(p.Result)
	}
	offset := 0
	if m.table != nil {
		offset = m.table.Offset
	}
	m.table = components.NewYearTable(years, 10)
	m.table.Scroll(offset)
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.table == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgdown", "down", "j"))):
		m.table.Scroll(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgup", "up", "k"))):
		m.table.Scroll(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("t"))):
		m.showChart = !m.showChart
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.projection == nil || m.projection.Result == nil {
		return tuistyles.InfoStyle.Render("No results yet.\n\nSelect a scenario on the Scenarios screen (press 's').")
	}

	metrics := m.projection.Result.Metrics
	parts := []string{
		tuistyles.TitleStyle.Render(m.projection.Name),
		renderKeyMetrics(metrics),
	}
	if bar := components.NewGoalProgressBar(metrics.Goal, metrics.FinalCorpus); bar != nil {
		parts = append(parts, bar.Render())
	}
	if metrics.FirstDepletion != nil {
		parts = append(parts, tuistyles.WarningStyle.Render(depletionText(metrics.FirstDepletion)))
	}
	if m.showChart {
		parts = append(parts, components.NewCorpusChart(m.table.Years).WithSize(min(80, max(40, m.width-20)), 10).Render())
	}
	parts = append(parts, m.table.Render(), "",
		tuistyles.HelpDescStyle.Render("↑/↓ scroll years • t toggle chart • e explorer • c compare"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderKeyMetrics(fm domain.FinalMetrics) string {
	cards := []*components.MetricCard{
		components.NewAmountCard("Final Corpus", fm.FinalCorpus, nil),
		components.NewAmountCard("Total Invested", fm.TotalInvestment, nil),
		components.NewAmountCard("Total Returns", fm.TotalReturns, nil),
		components.NewAmountCard("Real Corpus", fm.FinalInflationAdjustedCorpus, nil),
		components.NewRateCard("CAGR", fm.CAGR, nil),
		components.NewRateCard("Real Return", fm.RealRateOfReturn, nil),
	}
	if fm.TotalWithdrawalsGross.IsPositive() {
		cards = append(cards, components.NewAmountCard("Withdrawn", fm.TotalWithdrawalsGross, nil))
	}
	if fm.TotalTaxPaid.IsPositive() {
		cards = append(cards, components.NewAmountCard("Tax Paid", fm.TotalTaxPaid, nil))
	}
	if fm.TotalExpensesPaid.IsPositive() {
		cards = append(cards, components.NewAmountCard("Fees Paid", fm.TotalExpensesPaid, nil))
	}
	return components.MetricGrid(cards, 3)
}

func depletionText(at *domain.PeriodRef) string {
	return fmt.Sprintf("⚠ Corpus depleted in year %d, month %d", at.Year, at.Month)
}
