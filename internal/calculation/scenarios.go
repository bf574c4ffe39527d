package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// RunScenario projects a single named scenario
func (pe *ProjectionEngine) RunScenario(scenario domain.Scenario) domain.ScenarioProjection {
	result := pe.Project(scenario.Plan)
	return domain.ScenarioProjection{
		Name:        scenario.Name,
		Description: scenario.Description,
		Plan:        scenario.Plan.DeepCopy(),
		Result:      result,
		Yearly:      AggregateYearly(result),
	}
}

// RunScenarioAuto projects the scenario at index in config
func (pe *ProjectionEngine) RunScenarioAuto(ctx context.Context, config *domain.Configuration, index int) (*domain.ScenarioProjection, error) {
	if index < 0 || index >= len(config.Scenarios) {
		return nil, fmt.Errorf("scenario index %d out of range", index)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sp := pe.RunScenario(config.Scenarios[index])
	return &sp, nil
}

// RunScenarios projects every scenario in config in file order. The context is
// checked between scenarios; a single projection always runs to completion.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}
	report := &domain.ProjectionReport{Scenarios: make([]domain.ScenarioProjection, 0, len(config.Scenarios))}
	for i := range config.Scenarios {
		pe.Logger.Infof("running scenario %q", config.Scenarios[i].Name)
		sp, err := pe.RunScenarioAuto(ctx, config, i)
		if err != nil {
			return nil, fmt.Errorf("projection cancelled before scenario %d: %w", i, err)
		}
		report.Scenarios = append(report.Scenarios, *sp)
	}
	return report, nil
}
