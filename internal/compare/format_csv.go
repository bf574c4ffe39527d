package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Final Corpus",
		"Total Invested",
		"Real Corpus",
		"CAGR %",
		"Real Return %",
		"Withdrawals",
		"Tax Paid",
		"Expenses",
		"Depleted At",
		"Corpus Diff from Base",
		"Corpus % Change",
		"CAGR Diff",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	depleted := ""
	if result.FirstDepletion != nil {
		depleted = fmt.Sprintf("%d-%02d", result.FirstDepletion.Year, result.FirstDepletion.Month)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		result.FinalCorpus.StringFixed(2),
		result.TotalInvestment.StringFixed(2),
		result.FinalInflationAdjustedCorpus.StringFixed(2),
		formatOptional(result.CAGR),
		formatOptional(result.RealRateOfReturn),
		result.TotalWithdrawals.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.TotalExpenses.StringFixed(2),
		depleted,
		result.CorpusDiffFromBase.StringFixed(2),
		result.CorpusPctFromBase.StringFixed(2),
		formatOptional(result.CAGRDiffFromBase),
		result.TaxDiffFromBase.StringFixed(2),
	}
}

// formatOptional renders an undefined metric as an empty cell
func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
