package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine backed by the built-in
// templates and transforms
func NewCompareEngine(engine *calculation.ProjectionEngine) *CompareEngine {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior. Alternatives are reported in
// the order templates, transforms, scenarios.
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // Built-in template names to apply
	Transforms       []string // Ad-hoc transforms, "name:key=value,..."
	Scenarios        []string // Other scenarios of the configuration
}

// Compare runs the base scenario of config and one alternative per template,
// transform and named scenario
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, err := config.FindScenario(options.BaseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	alternatives, err := ce.templateAlternatives(baseScenario, options.Templates)
	if err != nil {
		return nil, err
	}

	for _, expr := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransform(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", expr, err)
		}
		modified, err := transform.ApplyTransforms(baseScenario, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %q: %w", expr, err)
		}
		modified.Name = baseScenario.Name + "_" + t.Name()
		modified.Description = t.Description()
		alternatives = append(alternatives, *modified)
	}

	for _, name := range options.Scenarios {
		alt, err := config.FindScenario(name)
		if err != nil {
			return nil, fmt.Errorf("alternative scenario %s not found", name)
		}
		alternatives = append(alternatives, *alt)
	}

	return ce.compare(ctx, baseScenario, alternatives)
}

// CompareTemplates applies each named template to base and compares the results
func (ce *CompareEngine) CompareTemplates(
	ctx context.Context,
	base *domain.Scenario,
	templates []string,
) (*ComparisonSet, error) {

	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	alternatives, err := ce.templateAlternatives(base, templates)
	if err != nil {
		return nil, err
	}
	return ce.compare(ctx, base, alternatives)
}

// CompareScenarios compares explicit scenarios of config (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	return ce.Compare(ctx, config, CompareOptions{
		BaseScenarioName: baseScenarioName,
		Scenarios:        alternativeScenarioNames,
	})
}

func (ce *CompareEngine) templateAlternatives(base *domain.Scenario, templates []string) ([]domain.Scenario, error) {
	alternatives := make([]domain.Scenario, 0, len(templates))
	for _, templateName := range templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		modifiedScenario.Name = base.Name + "_" + template.Name
		modifiedScenario.Description = template.Description
		alternatives = append(alternatives, *modifiedScenario)
	}
	return alternatives, nil
}

func (ce *CompareEngine) compare(ctx context.Context, base *domain.Scenario, alternatives []domain.Scenario) (*ComparisonSet, error) {
	baseProjection := ce.Engine.RunScenario(*base)
	baseResult := ce.MetricsCalculator.CalculateMetrics(&baseProjection)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled before %s: %w", alt.Name, err)
		}

		altProjection := ce.Engine.RunScenario(alt)
		altResult := ce.MetricsCalculator.CalculateMetrics(&altProjection)
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
