package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_step_up", createSetStepUp)
	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("set_lumpsum", createSetLumpsum)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("set_expense_ratio", createSetExpenseRatio)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("set_tax", createSetTax)
	registry.Register("extend_period", createExtendPeriod)
	registry.Register("set_withdrawal", createSetWithdrawal)
	registry.Register("disable_withdrawal", func(map[string]string) (ScenarioTransform, error) {
		return &DisableWithdrawal{}, nil
	})
	registry.Register("set_goal", createSetGoal)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransform builds a transform from its command-line form.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_step_up:type=percentage,value=10"
func (r *TransformRegistry) ParseTransform(expr string) (ScenarioTransform, error) {
	parts := strings.SplitN(expr, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform format, expected 'name:params', got: %s", expr)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func optionalInt(key string, params map[string]string, fallback int) (int, error) {
	raw, ok := params[key]
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func parseBool(raw string) bool {
	return raw == "true" || raw == "yes" || raw == "1"
}

// Factory functions for each transform

func createSetStepUp(params map[string]string) (ScenarioTransform, error) {
	value, err := requireDecimal("set_step_up", "value", params)
	if err != nil {
		return nil, err
	}
	stepType := domain.StepUpPercentage
	if t, ok := params["type"]; ok {
		stepType = domain.StepUpType(t)
	}
	return &SetStepUp{Type: stepType, Value: value}, nil
}

func createScaleContribution(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_contribution", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createSetLumpsum(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_lumpsum", "amount", params)
	if err != nil {
		return nil, err
	}
	freq := domain.LumpsumYearly
	if f, ok := params["frequency"]; ok {
		freq = domain.LumpsumFrequency(f)
	}
	return &SetLumpsum{Amount: amount, Frequency: freq}, nil
}

func createAdjustReturn(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_return", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{DeltaPercent: delta}, nil
}

func createSetExpenseRatio(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_expense_ratio", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetExpenseRatio{AnnualRatePercent: rate}, nil
}

func createSetInflation(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_inflation", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetInflation{AnnualRatePercent: rate}, nil
}

func createSetTax(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_tax", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetTax{RatePercent: rate}, nil
}

func createExtendPeriod(params map[string]string) (ScenarioTransform, error) {
	if _, ok := params["years"]; !ok {
		return nil, fmt.Errorf("extend_period requires 'years' parameter")
	}
	years, err := optionalInt("years", params, 0)
	if err != nil {
		return nil, err
	}
	return &ExtendPeriod{Years: years}, nil
}

func createSetWithdrawal(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_withdrawal", "amount", params)
	if err != nil {
		return nil, err
	}
	start, err := optionalInt("start_year", params, 0)
	if err != nil {
		return nil, err
	}

	sw := &SetWithdrawal{
		Amount:            amount,
		Frequency:         domain.WithdrawalMonthly,
		Type:              domain.WithdrawalFixed,
		StartYear:         start,
		InflationAdjusted: parseBool(params["inflation_adjusted"]),
	}
	if f, ok := params["frequency"]; ok {
		sw.Frequency = domain.WithdrawalFrequency(f)
	}
	if t, ok := params["type"]; ok {
		sw.Type = domain.WithdrawalType(t)
	}
	return sw, nil
}

func createSetGoal(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_goal", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetGoal{Amount: amount}, nil
}
