package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report from an embedded template.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"optpct":  FormatOptionalPercentage,
	"cpi":     FormatCPI,
	"compact": FormatCompact,
	"plan":    DescribePlan,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionReport
		Best        string
		Assumptions []string
	}{report, bestScenario(report), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
