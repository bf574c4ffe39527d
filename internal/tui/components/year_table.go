package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// YearTable renders a window of the yearly aggregation
type YearTable struct {
	Years   []domain.YearSummary
	Offset  int // first year index shown
	MaxRows int
}

// NewYearTable creates a table showing up to maxRows years
func NewYearTable(years []domain.YearSummary, maxRows int) *YearTable {
	return &YearTable{Years: years, MaxRows: maxRows}
}

// Scroll moves the window by delta rows, staying in range
func (t *YearTable) Scroll(delta int) {
	t.Offset += delta
	if limit := len(t.Years) - t.MaxRows; t.Offset > limit {
		t.Offset = limit
	}
	if t.Offset < 0 {
		t.Offset = 0
	}
}

const yearRowFormat = "%-5s %10s %10s %10s %10s %10s %8s"

// Render returns the table; depleted years are highlighted
func (t *YearTable) Render() string {
	if len(t.Years) == 0 {
		return tuistyles.InfoStyle.Render("No years projected")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf(yearRowFormat,
		"Year", "Invested", "Growth", "Withdrawn", "Corpus", "Real", "Rate")))
	b.WriteString("\n")

	end := len(t.Years)
	if t.MaxRows > 0 && t.Offset+t.MaxRows < end {
		end = t.Offset + t.MaxRows
	}
	for _, y := range t.Years[t.Offset:end] {
		row := fmt.Sprintf(yearRowFormat,
			fmt.Sprintf("%d", y.Year),
			tuistyles.FormatCurrency(y.TotalInvestment),
			tuistyles.FormatCurrency(y.GrowthDuringYear),
			tuistyles.FormatCurrency(y.WithdrawalDuringYear),
			tuistyles.FormatCurrency(y.ClosingCorpus),
			tuistyles.FormatCurrency(y.ClosingInflationAdjustedCorpus),
			output.FormatPercentage(y.AnnualRatePercent),
		)
		style := tuistyles.TableCellStyle
		if y.Depleted {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if end < len(t.Years) || t.Offset > 0 {
		b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf("years %d-%d of %d (pgup/pgdn to scroll)",
			t.Offset+1, end, len(t.Years))))
	}
	return strings.TrimRight(b.String(), "\n")
}
