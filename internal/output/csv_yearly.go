package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// YearlyCSVExporter writes the year-aggregated view, one row per scenario year.
type YearlyCSVExporter struct{}

func (c YearlyCSVExporter) Name() string { return "yearly-csv" }

var yearlyCSVHeader = []string{
	"Scenario", "Year", "MonthlyContribution", "AnnualRatePercent",
	"OpeningCorpus", "InvestedDuringYear", "GrowthDuringYear", "WithdrawalDuringYear",
	"TaxDuringYear", "ExpenseDuringYear", "TotalInvested", "ClosingCorpus",
	"ClosingCPI", "ClosingInflationAdjustedCorpus", "Depleted",
}

func (c YearlyCSVExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(yearlyCSVHeader); err != nil {
		return nil, err
	}
	for _, sp := range report.Scenarios {
		for _, y := range sp.Yearly {
			row := []string{
				sp.Name,
				strconv.Itoa(y.Year),
				y.MonthlyContribution.StringFixed(2),
				y.AnnualRatePercent.StringFixed(2),
				y.OpeningCorpus.StringFixed(2),
				y.InvestedDuringYear.StringFixed(2),
				y.GrowthDuringYear.StringFixed(2),
				y.WithdrawalDuringYear.StringFixed(2),
				y.TaxDuringYear.StringFixed(2),
				y.ExpenseDuringYear.StringFixed(2),
				y.TotalInvestment.StringFixed(2),
				y.ClosingCorpus.StringFixed(2),
				y.ClosingCPI.StringFixed(4),
				y.ClosingInflationAdjustedCorpus.StringFixed(2),
				strconv.FormatBool(y.Depleted),
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
