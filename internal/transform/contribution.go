package transform

import (
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

func requireBase(name string, base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

// SetStepUp enables an annual step-up of the monthly contribution.
// A zero value disables step-up.
type SetStepUp struct {
	Type  domain.StepUpType
	Value decimal.Decimal
}

func (s *SetStepUp) Name() string {
	return "set_step_up"
}

func (s *SetStepUp) Description() string {
	if s.Value.IsZero() {
		return "Disable annual contribution step-up"
	}
	if s.Type == domain.StepUpFixed {
		return fmt.Sprintf("Increase the monthly contribution by %s every year", s.Value.StringFixed(2))
	}
	return fmt.Sprintf("Step up the monthly contribution by %s%% every year", s.Value.String())
}

func (s *SetStepUp) Validate(base *domain.Scenario) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if !s.Type.IsValid() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown step-up type %q", s.Type), nil)
	}
	if s.Value.IsNegative() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("value must be non-negative, got %s", s.Value), nil)
	}
	return nil
}

func (s *SetStepUp) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.StepUp = domain.StepUpConfig{
		Enabled: s.Value.IsPositive(),
		Type:    s.Type,
		Value:   s.Value,
	}
	return &modified, nil
}

// ScaleContribution multiplies the base monthly contribution by Factor
type ScaleContribution struct {
	Factor decimal.Decimal
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	return fmt.Sprintf("Scale the monthly contribution by %sx", sc.Factor.String())
}

func (sc *ScaleContribution) Validate(base *domain.Scenario) error {
	if err := requireBase(sc.Name(), base); err != nil {
		return err
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.MonthlyContribution = base.Plan.MonthlyContribution.Mul(sc.Factor)
	return &modified, nil
}

// SetLumpsum configures a recurring lump sum. A zero amount or the never
// frequency disables it.
type SetLumpsum struct {
	Amount    decimal.Decimal
	Frequency domain.LumpsumFrequency
}

func (sl *SetLumpsum) Name() string {
	return "set_lumpsum"
}

func (sl *SetLumpsum) Description() string {
	return fmt.Sprintf("Add a %s lump sum of %s", sl.Frequency, sl.Amount.StringFixed(2))
}

func (sl *SetLumpsum) Validate(base *domain.Scenario) error {
	if err := requireBase(sl.Name(), base); err != nil {
		return err
	}
	if !sl.Frequency.IsValid() {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("unknown lump sum frequency %q", sl.Frequency), nil)
	}
	if sl.Amount.IsNegative() {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sl.Amount), nil)
	}
	return nil
}

func (sl *SetLumpsum) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Lumpsum = domain.LumpsumConfig{
		Enabled:   sl.Amount.IsPositive() && sl.Frequency != domain.LumpsumNever,
		Amount:    sl.Amount,
		Frequency: sl.Frequency,
	}
	return &modified, nil
}
