package transform

import (
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustReturn shifts the base return and every variable-return entry by
// DeltaPercent percentage points
type AdjustReturn struct {
	DeltaPercent decimal.Decimal
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	sign := ""
	if ar.DeltaPercent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Shift expected returns by %s%s percentage points", sign, ar.DeltaPercent.String())
}

func (ar *AdjustReturn) Validate(base *domain.Scenario) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if base.Plan.BaseAnnualReturnPercent.Add(ar.DeltaPercent).LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(ar.Name(), "validate",
			fmt.Sprintf("adjusted base return would be %s%%", base.Plan.BaseAnnualReturnPercent.Add(ar.DeltaPercent)), nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.BaseAnnualReturnPercent = base.Plan.BaseAnnualReturnPercent.Add(ar.DeltaPercent)
	for i := range modified.Plan.VariableReturns.Entries {
		e := &modified.Plan.VariableReturns.Entries[i]
		e.RatePercent = e.RatePercent.Add(ar.DeltaPercent)
	}
	return &modified, nil
}

// SetExpenseRatio sets the annual expense ratio. Zero disables fees.
type SetExpenseRatio struct {
	AnnualRatePercent decimal.Decimal
}

func (se *SetExpenseRatio) Name() string {
	return "set_expense_ratio"
}

func (se *SetExpenseRatio) Description() string {
	if se.AnnualRatePercent.IsZero() {
		return "Remove the expense ratio"
	}
	return fmt.Sprintf("Charge an annual expense ratio of %s%%", se.AnnualRatePercent.String())
}

func (se *SetExpenseRatio) Validate(base *domain.Scenario) error {
	if err := requireBase(se.Name(), base); err != nil {
		return err
	}
	if se.AnnualRatePercent.IsNegative() || se.AnnualRatePercent.GreaterThan(hundred) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("rate must be between 0 and 100, got %s", se.AnnualRatePercent), nil)
	}
	return nil
}

func (se *SetExpenseRatio) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.ExpenseRatio = domain.ExpenseRatioConfig{
		Enabled:           se.AnnualRatePercent.IsPositive(),
		AnnualRatePercent: se.AnnualRatePercent,
	}
	return &modified, nil
}

// SetInflation sets the annual inflation used for CPI indexing. Zero disables it.
type SetInflation struct {
	AnnualRatePercent decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Assume %s%% annual inflation", si.AnnualRatePercent.String())
}

func (si *SetInflation) Validate(base *domain.Scenario) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if si.AnnualRatePercent.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", si.AnnualRatePercent), nil)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Inflation = domain.InflationConfig{
		Enabled:           si.AnnualRatePercent.IsPositive(),
		AnnualRatePercent: si.AnnualRatePercent,
	}
	return &modified, nil
}

// SetTax sets the flat tax rate on withdrawal gains. Zero disables tax.
type SetTax struct {
	RatePercent decimal.Decimal
}

func (st *SetTax) Name() string {
	return "set_tax"
}

func (st *SetTax) Description() string {
	return fmt.Sprintf("Tax withdrawal gains at %s%%", st.RatePercent.String())
}

func (st *SetTax) Validate(base *domain.Scenario) error {
	if err := requireBase(st.Name(), base); err != nil {
		return err
	}
	if st.RatePercent.IsNegative() || st.RatePercent.GreaterThan(hundred) {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("rate must be between 0 and 100, got %s", st.RatePercent), nil)
	}
	return nil
}

func (st *SetTax) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.Tax = domain.TaxConfig{
		Enabled:     st.RatePercent.IsPositive(),
		RatePercent: st.RatePercent,
	}
	return &modified, nil
}
