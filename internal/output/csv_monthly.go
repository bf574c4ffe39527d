package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// MonthlyCSVExporter writes one row per simulated month for every scenario.
// Amounts are plain decimals with 2 places so spreadsheets can parse them.
type MonthlyCSVExporter struct{}

func (c MonthlyCSVExporter) Name() string { return "csv" }

var monthlyCSVHeader = []string{
	"Scenario", "Year", "Month",
	"Contribution", "Lumpsum", "TotalInvested", "AnnualRatePercent",
	"MonthlyGrowth", "RequestedWithdrawal", "Withdrawn", "TaxPaid", "ExpensesPaid",
	"Corpus", "Returns", "CPI", "InflationAdjustedCorpus", "PurchasingPowerChangePercent",
	"Depleted",
}

func (c MonthlyCSVExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(monthlyCSVHeader); err != nil {
		return nil, err
	}
	for _, sp := range report.Scenarios {
		if sp.Result == nil {
			continue
		}
		for _, r := range sp.Result.Records {
			row := []string{
				sp.Name,
				strconv.Itoa(r.Year),
				strconv.Itoa(r.Month),
				r.ContributionThisMonth.StringFixed(2),
				r.LumpsumThisMonth.StringFixed(2),
				r.TotalInvestment.StringFixed(2),
				r.AnnualRatePercent.StringFixed(2),
				r.MonthlyGrowth.StringFixed(2),
				r.RequestedWithdrawal.StringFixed(2),
				r.WithdrawalThisMonth.StringFixed(2),
				r.TaxPaidThisMonth.StringFixed(2),
				r.ExpenseDeductedThisMonth.StringFixed(2),
				r.Corpus.StringFixed(2),
				r.Returns.StringFixed(2),
				r.CurrentCPI.StringFixed(4),
				r.InflationAdjustedCorpus.StringFixed(2),
				r.PurchasingPowerChange.StringFixed(2),
				strconv.FormatBool(r.Depleted),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
