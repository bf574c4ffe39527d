package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// ScenarioCard displays a compact scenario overview
type ScenarioCard struct {
	Name        string
	Description string
	Highlights  []string // key plan inputs
	IsSelected  bool
	Width       int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{
		Name:  name,
		Width: 50,
	}
}

// NewScenarioCardFor builds a card whose highlights summarise the plan
func NewScenarioCardFor(s domain.Scenario) *ScenarioCard {
	p := s.Plan
	card := NewScenarioCard(s.Name).WithDescription(s.Description)
	card.AddHighlight(fmt.Sprintf("%s/month for %d years at %s",
		tuistyles.FormatCurrency(p.MonthlyContribution), p.InvestmentPeriodYears, output.FormatPercentage(p.BaseAnnualReturnPercent)))
	if p.InitialInvestment.IsPositive() {
		card.AddHighlight("Initial " + tuistyles.FormatCurrency(p.InitialInvestment))
	}
	if p.StepUp.Enabled {
		card.AddHighlight("Step-up enabled")
	}
	if p.Withdrawal.Enabled {
		card.AddHighlight(fmt.Sprintf("Withdrawals from year %d", p.Withdrawal.StartYear))
	}
	if p.Goal.Enabled {
		card.AddHighlight("Goal " + tuistyles.FormatCurrency(p.Goal.Amount))
	}
	return card
}

// WithDescription adds a description
func (s *ScenarioCard) WithDescription(desc string) *ScenarioCard {
	s.Description = desc
	return s
}

// AddHighlight adds a key parameter line
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Description != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		content.WriteString("\n")
	}

	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, h := range s.Highlights {
		content.WriteString(highlightStyle.Render("• " + h))
		content.WriteString("\n")
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (s *ScenarioCard) RenderCompact() string {
	parts := []string{s.Name}
	if len(s.Highlights) > 0 {
		parts = append(parts, tuistyles.HelpDescStyle.Render("• "+s.Highlights[0]))
	}
	return strings.Join(parts, " ")
}

// ScenarioListCompact renders a compact list for selection menus
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}

	return strings.Join(rendered, "\n")
}
