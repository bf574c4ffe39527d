package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// ConsoleFormatter provides a concise console summary, one block per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SIP PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")

	for _, sp := range report.Scenarios {
		if sp.Result == nil {
			continue
		}
		m := sp.Result.Metrics
		fmt.Fprintf(&buf, "%s: Invested=%s Corpus=%s Returns=%s CAGR=%s\n",
			sp.Name,
			FormatCurrency(m.TotalInvestment),
			FormatCurrency(m.FinalCorpus),
			FormatCurrency(m.TotalReturns),
			FormatOptionalPercentage(m.CAGR),
		)
		fmt.Fprintf(&buf, "  RealCorpus=%s RealReturn=%s", FormatCurrency(m.FinalInflationAdjustedCorpus), FormatOptionalPercentage(m.RealRateOfReturn))
		if m.FirstDepletion != nil {
			fmt.Fprintf(&buf, " DEPLETED=Y%dM%d", m.FirstDepletion.Year, m.FirstDepletion.Month)
		}
		if m.Goal != nil {
			fmt.Fprintf(&buf, " Goal=%t", m.Goal.Reached)
		}
		fmt.Fprintln(&buf)
	}

	if best := bestScenario(report); best != "" && len(report.Scenarios) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Largest real corpus: %s\n", best)
	}
	return buf.Bytes(), nil
}

// bestScenario returns the scenario with the largest inflation-adjusted final corpus
func bestScenario(report *domain.ProjectionReport) string {
	best := ""
	var bestIdx = -1
	for i, sp := range report.Scenarios {
		if sp.Result == nil {
			continue
		}
		if bestIdx < 0 || sp.Result.Metrics.FinalInflationAdjustedCorpus.GreaterThan(report.Scenarios[bestIdx].Result.Metrics.FinalInflationAdjustedCorpus) {
			bestIdx = i
			best = sp.Name
		}
	}
	return best
}
