package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 12.0
	pdfMarginRight  = 12.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 18.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders the report as an A4 PDF: one section per scenario with
// plan inputs, final metrics and the year-by-year table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r := &pdfReport{pdf: pdf}
	r.addTitle(report)
	for _, sp := range report.Scenarios {
		r.addScenario(sp)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf *fpdf.Fpdf
}

// pdfText maps glyphs missing from the core fonts to ASCII
func pdfText(s string) string {
	return strings.NewReplacer("₹", "Rs.", "•", "-").Replace(s)
}

func (r *pdfReport) addTitle(report *domain.ProjectionReport) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 12, "SIP Projection Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(80, 80, 80)
	if report.Source != "" {
		r.pdf.CellFormat(pdfContentWidth, 7, pdfText("Source: "+report.Source), "", 1, "C", false, 0, "")
	}
	r.pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("%d scenario(s)", len(report.Scenarios)), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.drawSectionHeader("Key Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range DefaultAssumptions {
		r.pdf.MultiCell(pdfContentWidth, 5, pdfText("- "+a), "", "L", false)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addScenario(sp domain.ScenarioProjection) {
	r.pdf.AddPage()
	r.drawSectionHeader(pdfText(sp.Name))

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	if sp.Description != "" {
		r.pdf.MultiCell(pdfContentWidth, 5, pdfText(sp.Description), "", "L", false)
		r.pdf.Ln(2)
	}
	for _, line := range DescribePlan(sp.Plan) {
		r.pdf.CellFormat(pdfContentWidth, 5, pdfText(line), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)

	if sp.Result == nil {
		return
	}
	m := sp.Result.Metrics

	widths := []float64{70, 60}
	r.drawTableHeader([]string{"Metric", "Value"}, widths)
	rows := [][]string{
		{"Total Invested", FormatCurrencyASCII(m.TotalInvestment)},
		{"Final Corpus", FormatCurrencyASCII(m.FinalCorpus)},
		{"Total Returns", FormatCurrencyASCII(m.TotalReturns)},
		{"CAGR", FormatOptionalPercentage(m.CAGR)},
		{"Inflation-Adjusted Corpus", FormatCurrencyASCII(m.FinalInflationAdjustedCorpus)},
		{"Real Rate of Return", FormatOptionalPercentage(m.RealRateOfReturn)},
		{"Purchasing Power Change", FormatPercentage(m.FinalPurchasingPowerChange)},
		{"Withdrawals (gross)", FormatCurrencyASCII(m.TotalWithdrawalsGross)},
		{"Tax Paid", FormatCurrencyASCII(m.TotalTaxPaid)},
		{"Expenses Paid", FormatCurrencyASCII(m.TotalExpensesPaid)},
	}
	if m.Goal != nil {
		status := "Reached"
		if !m.Goal.Reached {
			status = "Short by " + FormatCurrencyASCII(m.Goal.Shortfall)
		}
		rows = append(rows, []string{"Goal " + FormatCurrencyASCII(m.Goal.Target), status})
	}
	for _, row := range rows {
		r.drawTableRow(row, widths, false)
	}

	if m.FirstDepletion != nil {
		r.pdf.Ln(3)
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetTextColor(176, 0, 32)
		r.pdf.CellFormat(pdfContentWidth, 6,
			fmt.Sprintf("Corpus depleted in year %d, month %d", m.FirstDepletion.Year, m.FirstDepletion.Month),
			"", 1, "L", false, 0, "")
	}
	r.pdf.Ln(5)

	if len(sp.Yearly) == 0 {
		return
	}
	yearWidths := []float64{12, 24, 22, 22, 18, 18, 26, 14, 30}
	r.drawTableHeader([]string{"Year", "Invested", "Growth", "Withdrawn", "Tax", "Expenses", "Corpus", "CPI", "Real Corpus"}, yearWidths)
	for _, y := range sp.Yearly {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", y.Year),
			y.TotalInvestment.StringFixed(0),
			y.GrowthDuringYear.StringFixed(0),
			y.WithdrawalDuringYear.StringFixed(0),
			y.TaxDuringYear.StringFixed(0),
			y.ExpenseDuringYear.StringFixed(0),
			y.ClosingCorpus.StringFixed(0),
			FormatCPI(y.ClosingCPI),
			y.ClosingInflationAdjustedCorpus.StringFixed(0),
		}, yearWidths, y.Depleted)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 15)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(4)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 8)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

// drawTableRow highlights the row when flagged (depleted years)
func (r *pdfReport) drawTableRow(cells []string, widths []float64, flagged bool) {
	r.pdf.SetFont("Arial", "", 8)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFillColor(250, 250, 250)
	if flagged {
		r.pdf.SetFillColor(253, 236, 234)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, pdfText(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
