package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/sipcalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		m.scenariosModel.SetScenarios(msg.Config.Scenarios)
		m.status = fmt.Sprintf("%d scenarios loaded", len(msg.Config.Scenarios))
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		return m.selectScenario(msg.ScenarioName)

	case tuimsg.PlanChangedMsg:
		s := m.scenario.DeepCopy()
		s.Plan = msg.Plan
		m.project(s)
		return m, nil

	case tuimsg.ResetPlanMsg:
		m.project(m.scenario)
		m.status = "Plan reset"
		return m, nil

	case tuimsg.CompareRequestedMsg:
		if m.projection == nil {
			m.compareModel.SetComparing(false)
			m.status = "Select a scenario first"
			return m, nil
		}
		m.status = "Comparing..."
		return m, compareCmd(m.compareEngine, m.editedScenario(), msg.Templates)

	case ComparisonCompleteMsg:
		m.compareModel.SetComparing(false)
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResult(msg.Set)
		m.status = fmt.Sprintf("Compared %d alternatives", len(msg.Set.AlternativeResults))
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) selectScenario(name string) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}
	s, err := m.config.FindScenario(name)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.selectedScenario = name
	m.scenario = s.DeepCopy()
	base := m.engine.RunScenario(m.scenario)
	m.baseline = &base
	m.parametersModel.SetPlan(m.scenario.Plan)
	m.project(m.scenario)

	m.previousScene = m.currentScene
	m.currentScene = SceneExplorer
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneScenarios {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneScenarios
			}
			return m, navigate(back)
		}
	case "s":
		return m, navigate(SceneScenarios)
	case "e":
		return m, navigate(SceneExplorer)
	case "r":
		return m, navigate(SceneResults)
	case "c":
		return m, navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneExplorer:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
