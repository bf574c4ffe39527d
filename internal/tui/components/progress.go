package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// ProgressBar shows how far the final corpus gets toward a goal
type ProgressBar struct {
	Current decimal.Decimal
	Target  decimal.Decimal
	Width   int
	Label   string
}

// NewProgressBar creates a progress bar for current against target
func NewProgressBar(current, target decimal.Decimal) *ProgressBar {
	return &ProgressBar{
		Current: current,
		Target:  target,
		Width:   40,
	}
}

// NewGoalProgressBar builds the bar from goal tracking metrics; nil means no goal
func NewGoalProgressBar(goal *domain.GoalProgress, finalCorpus decimal.Decimal) *ProgressBar {
	if goal == nil {
		return nil
	}
	return NewProgressBar(finalCorpus, goal.Target).WithLabel("Goal " + tuistyles.FormatCurrency(goal.Target))
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Fraction returns completion in [0, 1]
func (p *ProgressBar) Fraction() float64 {
	if !p.Target.IsPositive() {
		return 1
	}
	f := p.Current.Div(p.Target).InexactFloat64()
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// IsComplete reports whether the target has been reached
func (p *ProgressBar) IsComplete() bool {
	return p.Current.GreaterThanOrEqual(p.Target)
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	filled := int(p.Fraction() * float64(p.Width))
	if filled > p.Width {
		filled = p.Width
	}

	fillColor := tuistyles.ColorAccent
	if p.IsComplete() {
		fillColor = tuistyles.ColorSuccess
	}

	bar := lipgloss.NewStyle().Foreground(fillColor).Render(strings.Repeat("█", filled)) +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("░", p.Width-filled))

	status := fmt.Sprintf("%.0f%%", p.Fraction()*100)
	if p.IsComplete() {
		status = tuistyles.MetricPositiveStyle.Render("reached")
	} else {
		status += " " + tuistyles.MetricNegativeStyle.Render("short by "+tuistyles.FormatCurrency(p.Target.Sub(p.Current)))
	}

	var content strings.Builder
	if p.Label != "" {
		content.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		content.WriteString("\n")
	}
	content.WriteString("[" + bar + "] " + status)
	return content.String()
}
