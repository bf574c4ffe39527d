package output

import (
	"github.com/goccy/go-json"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON.
// Undefined metrics are emitted as null.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
