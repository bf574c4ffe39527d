package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/tui/components"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// ScenariosModel represents the scenarios browsing scene
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
	cards         []*components.ScenarioCard
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	m.cards = make([]*components.ScenarioCard, 0, len(scenarios))
	for _, s := range scenarios {
		m.cards = append(m.cards, components.NewScenarioCardFor(s).WithWidth(40))
	}

	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ScenariosModel) handleKeyPress(msg tea.KeyMsg) (*ScenariosModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("g", "home"))):
		m.selectedIndex = 0
	case key.Matches(msg, key.NewBinding(key.WithKeys("G", "end"))):
		m.selectedIndex = max(0, len(m.scenarios)-1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{ScenarioName: name}
		}
	}
	return m, nil
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available.\n\nLoad a scenario file with at least one scenario.")
	}

	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44)
	left := listStyle.Render(tuistyles.TitleStyle.Render("Scenarios") + "\n" +
		components.ScenarioListCompact(m.cards, m.selectedIndex))

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		"  ",
		renderScenarioDetails(m.scenarios[m.selectedIndex]),
	)
	return content + "\n\n" + tuistyles.HelpDescStyle.Render("↑/k up • ↓/j down • enter explore • g top • G bottom")
}

func renderScenarioDetails(s domain.Scenario) string {
	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(60)

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("\n")
	if s.Description != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	for _, line := range output.DescribePlan(s.Plan) {
		content.WriteString(tuistyles.ParameterLabelStyle.Render("  " + line))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true).
		Render("Press Enter to explore this scenario"))

	return detailStyle.Render(content.String())
}
