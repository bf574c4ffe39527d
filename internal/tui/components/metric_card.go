package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change against the loaded plan
type Trend struct {
	IsPositive bool
	Change     string // e.g. "+₹1.2 L" or "-0.40%"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// NewAmountCard creates a card for a currency amount. A non-nil baseline adds
// a trend showing the difference from it.
func NewAmountCard(label string, amount decimal.Decimal, baseline *decimal.Decimal) *MetricCard {
	card := NewMetricCard(label, tuistyles.FormatCurrency(amount))
	if baseline != nil {
		if diff := amount.Sub(*baseline); !diff.IsZero() {
			sign := "+"
			if diff.IsNegative() {
				sign = "-"
			}
			card.WithTrend(diff.IsPositive(), sign+tuistyles.FormatCurrency(diff.Abs()))
		}
	}
	return card
}

// NewRateCard creates a card for an optional percentage; nil renders N/A
func NewRateCard(label string, rate, baseline *decimal.Decimal) *MetricCard {
	card := NewMetricCard(label, output.FormatOptionalPercentage(rate))
	if rate != nil && baseline != nil {
		if diff := rate.Sub(*baseline).Round(2); !diff.IsZero() {
			sign := ""
			if diff.IsPositive() {
				sign = "+"
			}
			card.WithTrend(diff.IsPositive(), sign+diff.StringFixed(2)+" pts")
		}
	}
	return card
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		content += "\n" + tuistyles.MetricTrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, currentRow []string
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
