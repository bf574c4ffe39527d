package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/config"
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration

	engine        *calculation.ProjectionEngine
	compareEngine *compare.CompareEngine

	// Current selection: the scenario as loaded and its projection, plus the
	// edited plan and its live projection
	selectedScenario string
	scenario         domain.Scenario
	baseline         *domain.ScenarioProjection
	projection       *domain.ScenarioProjection

	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel

	err            error
	status         string
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model for the scenario file at configPath
func NewModel(configPath string) Model {
	engine := calculation.NewProjectionEngine()
	ce := compare.NewCompareEngine(engine)
	return Model{
		currentScene:    SceneScenarios,
		configPath:      configPath,
		engine:          engine,
		compareEngine:   ce,
		scenariosModel:  scenes.NewScenariosModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(ce.TemplateRegistry.Templates()),
		width:           80,
		height:          24,
		loading:         true,
		loadingMessage:  "Loading " + configPath + "...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the scenario file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// compareCmd runs the template comparison off the update loop
func compareCmd(ce *compare.CompareEngine, base domain.Scenario, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := ce.CompareTemplates(context.Background(), &base, templates)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// editedScenario is the selected scenario carrying the explorer's plan
func (m Model) editedScenario() domain.Scenario {
	s := m.scenario.DeepCopy()
	s.Plan = m.parametersModel.Plan()
	return s
}

func (m *Model) project(s domain.Scenario) {
	p := m.engine.RunScenario(s)
	m.projection = &p
	m.parametersModel.SetProjection(m.projection, m.baseline)
	m.resultsModel.SetProjection(m.projection)
	m.compareModel.ClearResult()
}
