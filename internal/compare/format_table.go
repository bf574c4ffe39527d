package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/output"
)

const tableWidth = 96

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("INVESTMENT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 32
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Final Corpus",
		numWidth, "Real Corpus",
		numWidth, "CAGR",
		numWidth, "Real Return",
		numWidth, "Depletion"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Final Corpus:     %s%s (%s%%)\n",
				tf.deltaSymbol(alt.CorpusDiffFromBase),
				tf.formatDecimal(alt.CorpusDiffFromBase),
				alt.CorpusPctFromBase.StringFixed(1)))

			if !alt.RealCorpusDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Real Corpus:      %s%s\n",
					tf.deltaSymbol(alt.RealCorpusDiffFromBase),
					tf.formatDecimal(alt.RealCorpusDiffFromBase)))
			}

			if alt.CAGRDiffFromBase != nil && !alt.CAGRDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  CAGR:             %s%s pts\n",
					tf.deltaSymbol(*alt.CAGRDiffFromBase),
					alt.CAGRDiffFromBase.StringFixed(2)))
			}

			if !alt.WithdrawalDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Withdrawals:      %s%s\n",
					tf.deltaSymbol(alt.WithdrawalDiffFromBase),
					tf.formatDecimal(alt.WithdrawalDiffFromBase)))
			}

			cost := alt.TaxDiffFromBase.Add(alt.ExpenseDiffFromBase)
			if !cost.IsZero() {
				sb.WriteString(fmt.Sprintf("  Tax & Fees:       %s%s\n",
					tf.deltaSymbol(cost),
					tf.formatDecimal(cost)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	depletion := "-"
	if result.FirstDepletion != nil {
		depletion = fmt.Sprintf("Y%d M%d", result.FirstDepletion.Year, result.FirstDepletion.Month)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.FinalCorpus),
		numWidth, tf.formatDecimal(result.FinalInflationAdjustedCorpus),
		numWidth, tf.formatRate(result.CAGR),
		numWidth, tf.formatRate(result.RealRateOfReturn),
		numWidth, depletion)
}

// formatDecimal formats an amount compactly (K, L, Cr) without a currency
// symbol, one more decimal place than output.FormatCompact
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	scaled, unit := output.Abbreviate(d)
	switch unit {
	case "":
		return sign + scaled.StringFixed(0)
	case "K":
		return sign + scaled.StringFixed(1) + unit
	}
	return sign + scaled.StringFixed(2) + unit
}

func (tf *TableFormatter) formatRate(d *decimal.Decimal) string {
	if d == nil {
		return "N/A"
	}
	return d.StringFixed(2) + "%"
}

// deltaSymbol returns "+" for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.CorpusDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.CorpusDiffFromBase) + tf.formatDecimal(alt.CorpusDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
