package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneExplorer:
		content = m.parametersModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4) // title (2) + status (1) + padding (1)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SIPCALC - Investment Projection Explorer")
	crumb := m.currentScene.String()
	if m.selectedScenario != "" {
		crumb += " / " + m.selectedScenario
		if m.parametersModel.Modified() {
			crumb += " *"
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("s", "scenarios"),
		formatShortcut("e", "explorer"),
		formatShortcut("r", "results"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.status != "" {
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(m.status)-4))
		statusText += spacer + SubtitleStyle.Render(m.status)
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	return BorderStyle.Render(HelpKeyStyle.Render("KEYBOARD SHORTCUTS") + `
  s        Scenarios: pick a plan from the file
  e        Explorer: adjust the plan with sliders
  r        Results: metrics, corpus chart, year table
  c        Compare: what-if templates against the edited plan
  ?        Show this help
  esc      Go back
  q/ctrl+c Quit

` + HelpKeyStyle.Render("EXPLORER") + `
  ↑/↓      Select a slider
  ←/→ +/-  Adjust the value; the projection updates immediately
  u        Reset to the plan as loaded

` + HelpKeyStyle.Render("RESULTS") + `
  ↑/↓      Scroll the year table
  t        Toggle the chart

` + HelpKeyStyle.Render("COMPARE") + `
  space    Toggle a template
  a        Select all or none
  enter    Run the comparison`)
}
