package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuimsg"
)

func testConfig() *domain.Configuration {
	drawdown := domain.DefaultPlan()
	drawdown.InitialInvestment = decimal.NewFromInt(500000)
	drawdown.MonthlyContribution = decimal.Zero
	drawdown.InvestmentPeriodYears = 5
	drawdown.Withdrawal = domain.WithdrawalConfig{
		Enabled:   true,
		Amount:    decimal.NewFromInt(20000),
		Frequency: domain.WithdrawalMonthly,
		StartYear: 1,
		Type:      domain.WithdrawalFixed,
	}
	return &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Growth", Plan: domain.DefaultPlan()},
		{Name: "Drawdown", Plan: drawdown},
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send runs msg through Update and then feeds back every message its
// command produces, the way the bubbletea runtime would
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(filepath.Join(t.TempDir(), "scenarios.yaml"))
	assert.True(t, m.loading)
	m = send(t, m, ConfigLoadedMsg{Config: testConfig()})
	require.False(t, m.loading)
	return m
}

func TestModel_LoadAndSelect(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, SceneScenarios, m.currentScene)
	assert.Contains(t, m.View(), "Growth")

	m = send(t, m, key("enter"))
	assert.Equal(t, SceneExplorer, m.currentScene)
	assert.Equal(t, "Growth", m.selectedScenario)
	require.NotNil(t, m.projection)
	require.NotNil(t, m.baseline)
	assert.True(t, m.projection.Result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(600000)))
	assert.Contains(t, m.View(), "Monthly SIP")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("does-not-exist.yaml")
	m = send(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")

	m = send(t, m, key("x"))
	assert.NoError(t, m.err, "any key dismisses the error")
}

func TestModel_SliderReprojects(t *testing.T) {
	m := send(t, loadedModel(t), key("enter"))

	m = send(t, m, key("right"))
	assert.True(t, m.parametersModel.Modified())
	plan := m.projection.Plan
	assert.True(t, plan.MonthlyContribution.Equal(decimal.NewFromInt(5500)))
	assert.True(t, m.projection.Result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(660000)))
	assert.True(t, m.baseline.Result.Metrics.TotalInvestment.Equal(decimal.NewFromInt(600000)), "baseline keeps the loaded plan")
	assert.Contains(t, m.View(), "Growth *")

	m = send(t, m, key("u"))
	assert.False(t, m.parametersModel.Modified())
	assert.True(t, m.projection.Plan.MonthlyContribution.Equal(decimal.NewFromInt(5000)))
}

func TestModel_PeriodSliderChangesYears(t *testing.T) {
	m := send(t, loadedModel(t), key("enter"))
	m = send(t, m, key("down"))
	m = send(t, m, key("down"))
	m = send(t, m, key("left"))

	assert.Equal(t, 9, m.projection.Plan.InvestmentPeriodYears)
	assert.Len(t, m.projection.Result.Records, 9*12)

	m = send(t, m, key("r"))
	assert.Equal(t, SceneResults, m.currentScene)
	assert.Contains(t, m.View(), "Final Corpus")
}

func TestModel_DepletionShownInResults(t *testing.T) {
	m := loadedModel(t)
	m = send(t, m, tuimsg.ScenarioSelectedMsg{ScenarioName: "Drawdown"})
	require.NotNil(t, m.projection.Result.Metrics.FirstDepletion)

	m = send(t, m, key("r"))
	assert.Contains(t, m.View(), "Corpus depleted in year")
}

func TestModel_UnknownScenario(t *testing.T) {
	m := send(t, loadedModel(t), tuimsg.ScenarioSelectedMsg{ScenarioName: "Missing"})
	assert.Error(t, m.err)
	assert.Equal(t, SceneScenarios, m.currentScene)
}

func TestModel_Compare(t *testing.T) {
	m := send(t, loadedModel(t), key("enter"))
	m = send(t, m, key("c"))
	require.Equal(t, SceneCompare, m.currentScene)

	m = send(t, m, key("enter"))
	assert.Nil(t, m.compareModel.Result(), "nothing selected yet")

	m = send(t, m, key(" "))
	names := m.compareModel.SelectedTemplates()
	require.Len(t, names, 1)

	m = send(t, m, key("enter"))
	require.NotNil(t, m.compareModel.Result())
	assert.Equal(t, "Growth", m.compareModel.Result().BaseScenarioName)
	require.Len(t, m.compareModel.Result().AlternativeResults, 1)
	assert.Equal(t, "Growth_"+names[0], m.compareModel.Result().AlternativeResults[0].ScenarioName)
	assert.Contains(t, m.View(), "vs Base")
}

func TestModel_CompareError(t *testing.T) {
	m := send(t, loadedModel(t), key("enter"))
	m = send(t, m, ComparisonCompleteMsg{Err: errors.New("boom")})
	assert.EqualError(t, m.err, "boom")
}

func TestModel_NavigationAndHelp(t *testing.T) {
	m := loadedModel(t)
	m = send(t, m, key("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneScenarios, m.currentScene)

	m = send(t, m, key("e"))
	assert.Contains(t, m.View(), "No scenario selected")

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
