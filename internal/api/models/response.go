package models

import (
	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// ProjectionResponse is the result of a single projection run. Records and
// Yearly are populated according to the requested view.
type ProjectionResponse struct {
	ID      string                   `json:"id"`
	View    string                   `json:"view"`
	Plan    domain.PlanConfiguration `json:"plan"`
	Metrics domain.FinalMetrics      `json:"metrics"`
	Yearly  []domain.YearSummary     `json:"yearly,omitempty"`
	Records []domain.MonthlyRecord   `json:"records,omitempty"`
}

// CompareResponse wraps a comparison set with the run ID
type CompareResponse struct {
	ID string `json:"id"`
	*compare.ComparisonSet
}

// TemplateInfo describes a built-in what-if template
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TemplatesResponse lists the available templates
type TemplatesResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
