package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

// Template categories used when listing templates
const (
	CategoryContributions = "Contributions"
	CategoryMarket        = "Returns & Costs"
	CategoryHorizon       = "Horizon & Withdrawals"
	CategoryCombination   = "Combination Strategies"
)

var categoryOrder = []string{CategoryContributions, CategoryMarket, CategoryHorizon, CategoryCombination}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns every registered template sorted by name
func (tr *TemplateRegistry) Templates() []Template {
	out := make([]Template, 0, len(tr.templates))
	for _, name := range tr.List() {
		out = append(out, tr.templates[name])
	}
	return out
}

// CreateBuiltInTemplates creates a template registry with common what-if edits
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "stepup_5pct",
		Description: "Step up the monthly contribution by 5% every year",
		Category:    CategoryContributions,
		Transforms: []ScenarioTransform{
			&SetStepUp{Type: domain.StepUpPercentage, Value: decimal.NewFromInt(5)},
		},
	})

	registry.Register(Template{
		Name:        "stepup_10pct",
		Description: "Step up the monthly contribution by 10% every year",
		Category:    CategoryContributions,
		Transforms: []ScenarioTransform{
			&SetStepUp{Type: domain.StepUpPercentage, Value: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "double_contribution",
		Description: "Double the monthly contribution",
		Category:    CategoryContributions,
		Transforms: []ScenarioTransform{
			&ScaleContribution{Factor: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "fees_1pct",
		Description: "Charge a 1% annual expense ratio",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&SetExpenseRatio{AnnualRatePercent: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "no_fees",
		Description: "Remove the expense ratio (direct plan)",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&SetExpenseRatio{AnnualRatePercent: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "rate_plus_2",
		Description: "Returns 2 percentage points higher than planned",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&AdjustReturn{DeltaPercent: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "rate_minus_2",
		Description: "Returns 2 percentage points lower than planned",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&AdjustReturn{DeltaPercent: decimal.NewFromInt(-2)},
		},
	})

	registry.Register(Template{
		Name:        "inflation_6pct",
		Description: "Index real values to 6% annual inflation",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&SetInflation{AnnualRatePercent: decimal.NewFromInt(6)},
		},
	})

	registry.Register(Template{
		Name:        "tax_20pct",
		Description: "Tax withdrawal gains at a flat 20%",
		Category:    CategoryMarket,
		Transforms: []ScenarioTransform{
			&SetTax{RatePercent: decimal.NewFromInt(20)},
		},
	})

	registry.Register(Template{
		Name:        "extend_5yr",
		Description: "Stay invested for 5 more years",
		Category:    CategoryHorizon,
		Transforms: []ScenarioTransform{
			&ExtendPeriod{Years: 5},
		},
	})

	registry.Register(Template{
		Name:        "no_withdrawal",
		Description: "Stop all systematic withdrawals",
		Category:    CategoryHorizon,
		Transforms: []ScenarioTransform{
			&DisableWithdrawal{},
		},
	})

	registry.Register(Template{
		Name:        "realistic",
		Description: "6% inflation + 1% fees + 20% tax on withdrawal gains",
		Category:    CategoryCombination,
		Transforms: []ScenarioTransform{
			&SetInflation{AnnualRatePercent: decimal.NewFromInt(6)},
			&SetExpenseRatio{AnnualRatePercent: decimal.NewFromInt(1)},
			&SetTax{RatePercent: decimal.NewFromInt(20)},
		},
	})

	registry.Register(Template{
		Name:        "stepup_10pct_extend_5yr",
		Description: "10% annual step-up and 5 more years invested",
		Category:    CategoryCombination,
		Transforms: []ScenarioTransform{
			&SetStepUp{Type: domain.StepUpPercentage, Value: decimal.NewFromInt(10)},
			&ExtendPeriod{Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := make(map[string][]Template)
	for _, t := range registry.Templates() {
		cat := t.Category
		if cat == "" {
			cat = CategoryCombination
		}
		categories[cat] = append(categories[cat], t)
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range categoryOrder {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  sipcalc compare plans.yaml --base Base --with stepup_10pct,fees_1pct\n")
	sb.WriteString("  sipcalc compare plans.yaml --base Base --with realistic --format csv\n")

	return sb.String()
}
