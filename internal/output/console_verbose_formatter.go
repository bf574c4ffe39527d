package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report: plan, metrics
// and a year-by-year table for every scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 100))
	fmt.Fprintln(&buf, "SYSTEMATIC INVESTMENT PLAN PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 100))
	if report.Source != "" {
		fmt.Fprintf(&buf, "Source: %s\n", report.Source)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sp := range report.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sp.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if sp.Description != "" {
			fmt.Fprintln(&buf, sp.Description)
			fmt.Fprintln(&buf)
		}

		fmt.Fprintln(&buf, "PLAN:")
		for _, line := range DescribePlan(sp.Plan) {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
		fmt.Fprintln(&buf)

		if sp.Result == nil {
			fmt.Fprintln(&buf, "No projection available")
			fmt.Fprintln(&buf)
			continue
		}

		writeMetrics(&buf, sp.Result)
		writeYearTable(&buf, sp.Yearly)
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

func writeMetrics(buf *bytes.Buffer, result *domain.SimulationResult) {
	m := result.Metrics
	fmt.Fprintln(buf, "RESULTS:")
	fmt.Fprintf(buf, "  Years Projected:          %d\n", result.Years())
	fmt.Fprintf(buf, "  Total Invested:           %s\n", FormatCurrency(m.TotalInvestment))
	fmt.Fprintf(buf, "  Final Corpus:             %s\n", FormatCurrency(m.FinalCorpus))
	fmt.Fprintf(buf, "  Total Returns:            %s\n", FormatCurrency(m.TotalReturns))
	fmt.Fprintf(buf, "  CAGR:                     %s\n", FormatOptionalPercentage(m.CAGR))
	fmt.Fprintf(buf, "  Inflation-Adjusted Corpus: %s\n", FormatCurrency(m.FinalInflationAdjustedCorpus))
	fmt.Fprintf(buf, "  Real Rate of Return:      %s\n", FormatOptionalPercentage(m.RealRateOfReturn))
	fmt.Fprintf(buf, "  Purchasing Power Change:  %s\n", FormatPercentage(m.FinalPurchasingPowerChange))
	fmt.Fprintf(buf, "  Final CPI:                %s\n", FormatCPI(m.FinalCPI))

	if !m.TotalWithdrawalsGross.IsZero() || !m.TotalTaxPaid.IsZero() || !m.TotalExpensesPaid.IsZero() {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "OUTFLOWS:")
		fmt.Fprintf(buf, "  Withdrawals (gross):      %s\n", FormatCurrency(m.TotalWithdrawalsGross))
		fmt.Fprintf(buf, "  Tax Paid:                 %s\n", FormatCurrency(m.TotalTaxPaid))
		fmt.Fprintf(buf, "  Expenses Paid:            %s\n", FormatCurrency(m.TotalExpensesPaid))
	}

	if m.Goal != nil {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "GOAL:")
		fmt.Fprintf(buf, "  Target:                   %s\n", FormatCurrency(m.Goal.Target))
		if m.Goal.ReachedAt != nil {
			fmt.Fprintf(buf, "  First Reached:            year %d, month %d\n", m.Goal.ReachedAt.Year, m.Goal.ReachedAt.Month)
		}
		if m.Goal.Reached {
			fmt.Fprintln(buf, "  Status:                   REACHED")
		} else {
			fmt.Fprintf(buf, "  Status:                   short by %s\n", FormatCurrency(m.Goal.Shortfall))
		}
	}

	if result.IsDepleted() {
		shortfall := decimal.Zero
		for _, r := range result.Records {
			shortfall = shortfall.Add(r.WithdrawalShortfall())
		}
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "WARNING: corpus depleted in year %d, month %d; later withdrawals were capped\n",
			m.FirstDepletion.Year, m.FirstDepletion.Month)
		fmt.Fprintf(buf, "  Undelivered Withdrawals:  %s\n", FormatCurrency(shortfall))
	}
	fmt.Fprintln(buf)
}

func writeYearTable(buf *bytes.Buffer, years []domain.YearSummary) {
	if len(years) == 0 {
		return
	}
	fmt.Fprintln(buf, "YEAR-BY-YEAR:")
	fmt.Fprintf(buf, "%-5s %16s %14s %14s %12s %12s %16s %8s %16s\n",
		"Year", "Total Invested", "Growth", "Withdrawn", "Tax", "Expenses", "Corpus", "CPI", "Real Corpus")
	fmt.Fprintln(buf, strings.Repeat("-", 120))
	for _, y := range years {
		marker := ""
		if y.Depleted {
			marker = " *"
		}
		fmt.Fprintf(buf, "%-5d %16s %14s %14s %12s %12s %16s %8s %16s%s\n",
			y.Year,
			FormatCurrency(y.TotalInvestment),
			FormatCurrency(y.GrowthDuringYear),
			FormatCurrency(y.WithdrawalDuringYear),
			FormatCurrency(y.TaxDuringYear),
			FormatCurrency(y.ExpenseDuringYear),
			FormatCurrency(y.ClosingCorpus),
			FormatCPI(y.ClosingCPI),
			FormatCurrency(y.ClosingInflationAdjustedCorpus),
			marker)
	}
}

// DescribePlan lists the plan inputs as short human-readable lines, enabled
// features only.
func DescribePlan(p domain.PlanConfiguration) []string {
	lines := []string{
		fmt.Sprintf("Initial Investment: %s", FormatCurrency(p.InitialInvestment)),
		fmt.Sprintf("Monthly Contribution: %s", FormatCurrency(p.MonthlyContribution)),
		fmt.Sprintf("Period: %d years", p.InvestmentPeriodYears),
		fmt.Sprintf("Expected Return: %s p.a.", FormatPercentage(p.BaseAnnualReturnPercent)),
	}

	if p.StepUp.Enabled {
		if p.StepUp.Type == domain.StepUpFixed {
			lines = append(lines, fmt.Sprintf("Annual Step-Up: +%s", FormatCurrency(p.StepUp.Value)))
		} else {
			lines = append(lines, fmt.Sprintf("Annual Step-Up: +%s", FormatPercentage(p.StepUp.Value)))
		}
	}
	if p.Lumpsum.Enabled {
		lines = append(lines, fmt.Sprintf("Lump Sum: %s %s", FormatCurrency(p.Lumpsum.Amount), p.Lumpsum.Frequency))
	}
	if p.VariableReturns.Enabled && len(p.VariableReturns.Entries) > 0 {
		parts := make([]string, 0, len(p.VariableReturns.Entries))
		for _, e := range p.SortedVariableReturns() {
			parts = append(parts, fmt.Sprintf("to year %d: %s", e.YearEnd, FormatPercentage(e.RatePercent)))
		}
		lines = append(lines, "Variable Returns: "+strings.Join(parts, ", "))
	}
	if p.Withdrawal.Enabled {
		amount := FormatCurrency(p.Withdrawal.Amount)
		if p.Withdrawal.Type == domain.WithdrawalPercentage {
			amount = FormatPercentage(p.Withdrawal.Amount) + " of corpus"
		}
		w := fmt.Sprintf("Withdrawal: %s %s from year %d", amount, p.Withdrawal.Frequency, p.Withdrawal.StartYear)
		if p.Withdrawal.InflationAdjusted && p.Withdrawal.Type == domain.WithdrawalFixed {
			w += " (inflation-adjusted)"
		}
		lines = append(lines, w)
	}
	if p.Inflation.Enabled {
		lines = append(lines, fmt.Sprintf("Inflation: %s p.a.", FormatPercentage(p.Inflation.AnnualRatePercent)))
	}
	if p.Tax.Enabled {
		lines = append(lines, fmt.Sprintf("Tax on Withdrawal Gains: %s", FormatPercentage(p.Tax.RatePercent)))
	}
	if p.ExpenseRatio.Enabled {
		lines = append(lines, fmt.Sprintf("Expense Ratio: %s p.a.", FormatPercentage(p.ExpenseRatio.AnnualRatePercent)))
	}
	if p.Goal.Enabled {
		lines = append(lines, fmt.Sprintf("Goal: %s", FormatCurrency(p.Goal.Amount)))
	}

	return lines
}
