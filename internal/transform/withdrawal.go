package transform

import (
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ExtendPeriod lengthens (or with a negative value shortens) the investment horizon
type ExtendPeriod struct {
	Years int
}

func (ep *ExtendPeriod) Name() string {
	return "extend_period"
}

func (ep *ExtendPeriod) Description() string {
	if ep.Years < 0 {
		return fmt.Sprintf("Shorten the investment period by %d years", -ep.Years)
	}
	return fmt.Sprintf("Extend the investment period by %d years", ep.Years)
}

func (ep *ExtendPeriod) Validate(base *domain.Scenario) error {
	if err := requireBase(ep.Name(), base); err != nil {
		return err
	}
	if base.Plan.InvestmentPeriodYears+ep.Years < 0 {
		return NewTransformError(ep.Name(), "validate",
			fmt.Sprintf("period of %d years cannot be shortened by %d", base.Plan.InvestmentPeriodYears, -ep.Years), nil)
	}
	return nil
}

func (ep *ExtendPeriod) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.InvestmentPeriodYears = base.Plan.InvestmentPeriodYears + ep.Years
	return &modified, nil
}

// SetWithdrawal replaces the systematic withdrawal plan
type SetWithdrawal struct {
	Amount            decimal.Decimal
	Frequency         domain.WithdrawalFrequency
	Type              domain.WithdrawalType
	StartYear         int
	InflationAdjusted bool
}

func (sw *SetWithdrawal) Name() string {
	return "set_withdrawal"
}

func (sw *SetWithdrawal) Description() string {
	amount := sw.Amount.StringFixed(2)
	if sw.Type == domain.WithdrawalPercentage {
		amount = sw.Amount.String() + "% of corpus"
	}
	return fmt.Sprintf("Withdraw %s %s from year %d", amount, sw.Frequency, sw.StartYear)
}

func (sw *SetWithdrawal) Validate(base *domain.Scenario) error {
	if err := requireBase(sw.Name(), base); err != nil {
		return err
	}
	if !sw.Frequency.IsValid() {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("unknown withdrawal frequency %q", sw.Frequency), nil)
	}
	if !sw.Type.IsValid() {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("unknown withdrawal type %q", sw.Type), nil)
	}
	if sw.Amount.IsNegative() {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sw.Amount), nil)
	}
	if sw.StartYear < 0 {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("start year must be non-negative, got %d", sw.StartYear), nil)
	}
	return nil
}

func (sw *SetWithdrawal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Withdrawal = domain.WithdrawalConfig{
		Enabled:           sw.Amount.IsPositive(),
		Amount:            sw.Amount,
		Frequency:         sw.Frequency,
		Type:              sw.Type,
		StartYear:         sw.StartYear,
		InflationAdjusted: sw.InflationAdjusted,
	}
	return &modified, nil
}

// DisableWithdrawal turns the withdrawal plan off
type DisableWithdrawal struct{}

func (dw *DisableWithdrawal) Name() string {
	return "disable_withdrawal"
}

func (dw *DisableWithdrawal) Description() string {
	return "Stop all systematic withdrawals"
}

func (dw *DisableWithdrawal) Validate(base *domain.Scenario) error {
	return requireBase(dw.Name(), base)
}

func (dw *DisableWithdrawal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Withdrawal.Enabled = false
	return &modified, nil
}

// SetGoal sets the target corpus tracked in the final metrics
type SetGoal struct {
	Amount decimal.Decimal
}

func (sg *SetGoal) Name() string {
	return "set_goal"
}

func (sg *SetGoal) Description() string {
	return fmt.Sprintf("Track progress towards a corpus of %s", sg.Amount.StringFixed(2))
}

func (sg *SetGoal) Validate(base *domain.Scenario) error {
	if err := requireBase(sg.Name(), base); err != nil {
		return err
	}
	if sg.Amount.IsNegative() {
		return NewTransformError(sg.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sg.Amount), nil)
	}
	return nil
}

func (sg *SetGoal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Goal = domain.GoalConfig{Enabled: sg.Amount.IsPositive(), Amount: sg.Amount}
	return &modified, nil
}
