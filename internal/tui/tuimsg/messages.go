package tuimsg

import (
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been selected for exploration
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// PlanChangedMsg carries the edited plan after a slider moved
type PlanChangedMsg struct {
	Plan      domain.PlanConfiguration
	Parameter string // slider key that changed
}

// ResetPlanMsg restores the plan as it was loaded from the file
type ResetPlanMsg struct{}

// CompareRequestedMsg asks for the edited plan to be compared against templates
type CompareRequestedMsg struct {
	Templates []string
}
