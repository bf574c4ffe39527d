package models

import "github.com/rgehrsitz/sipcalc/internal/domain"

// Projection views accepted by POST /api/v1/projections
const (
	ViewSummary = "summary"
	ViewYearly  = "yearly"
	ViewMonthly = "monthly"
)

// ValidView reports whether v names a supported projection view
func ValidView(v string) bool {
	switch v {
	case ViewSummary, ViewYearly, ViewMonthly:
		return true
	}
	return false
}

// CompareRequest represents a what-if comparison of one plan against templates
type CompareRequest struct {
	Name      string                   `json:"name"`
	Base      domain.PlanConfiguration `json:"base"`
	Templates []string                 `json:"templates"`
}
