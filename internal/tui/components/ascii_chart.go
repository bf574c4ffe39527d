package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// yAxisWidth is the space reserved for axis values
const yAxisWidth = 10

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart displays a simple line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// NewCorpusChart plots closing corpus, inflation-adjusted corpus and total
// invested per year
func NewCorpusChart(years []domain.YearSummary) *ASCIIChart {
	corpus := make([]float64, len(years))
	realCorpus := make([]float64, len(years))
	invested := make([]float64, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		corpus[i] = y.ClosingCorpus.InexactFloat64()
		realCorpus[i] = y.ClosingInflationAdjustedCorpus.InexactFloat64()
		invested[i] = y.TotalInvestment.InexactFloat64()
		labels[i] = fmt.Sprintf("Y%d", y.Year)
	}

	return NewASCIIChart("Corpus by Year").
		AddSeries("Corpus", corpus, tuistyles.ColorChartLine1).
		AddSeries("Real corpus", realCorpus, tuistyles.ColorChartLine2).
		AddSeries("Invested", invested, tuistyles.ColorChartLine3).
		WithLabels(labels)
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds finds the value range across all series. The floor is zero for
// all-positive data so bars of money read from the axis.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if lo > 0 {
		lo = 0
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.05
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	chartWidth := c.Width - yAxisWidth - 3
	if chartWidth < 2 {
		chartWidth = 2
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	colors := make([][]int, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
		colors[i] = make([]int, chartWidth)
	}

	toX := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(math.Round(float64(i) / float64(n-1) * float64(chartWidth-1)))
	}
	toY := func(v float64) int {
		return height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(height-1)))
	}

	// later series are drawn first so the corpus line stays on top
	for idx := len(c.Series) - 1; idx >= 0; idx-- {
		series := c.Series[idx]
		char := seriesChar(idx)
		for i, point := range series.Points {
			x, y := toX(i, len(series.Points)), toY(point)
			if i > 0 {
				px, py := toX(i-1, len(series.Points)), toY(series.Points[i-1])
				drawLine(grid, colors, px, py, x, y, char, idx)
			}
			plot(grid, colors, x, y, char, idx)
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for row := range grid {
		value := maxVal - float64(row)/float64(height-1)*(maxVal-minVal)
		out.WriteString(axisStyle.Render(formatChartValue(value)))
		out.WriteString(" │ ")
		for col, r := range grid[row] {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[colors[row][col]].Color).Render(string(r)))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth+1))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(chartWidth))
	}
	return out.String()
}

func plot(grid [][]rune, colors [][]int, x, y int, char rune, series int) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = char
		colors[y][x] = series
	}
}

// seriesChar returns the glyph used for a series
func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm
func drawLine(grid [][]rune, colors [][]int, x0, y0, x1, y1 int, char rune, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		plot(grid, colors, x, y, char, series)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places up to five labels evenly along the axis
func (c *ASCIIChart) renderXAxisLabels(chartWidth int) string {
	line := []rune(strings.Repeat(" ", chartWidth+3))
	n := len(c.Labels)
	const maxLabels = 5
	step := (n + maxLabels - 1) / maxLabels
	if step == 0 {
		step = 1
	}

	for i := 0; i < n; i += step {
		x := 0
		if n > 1 {
			x = int(math.Round(float64(i) / float64(n-1) * float64(chartWidth-1)))
		}
		label := []rune(c.Labels[i])
		if x+len(label) > len(line) {
			x = len(line) - len(label)
		}
		if x < 0 {
			continue
		}
		copy(line[x:], label)
	}
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + style.Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		items = append(items, symbol+" "+series.Name)
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(items, "  •  "))
}

// formatChartValue formats a value for the Y-axis in Cr/L/K
func formatChartValue(value float64) string {
	return tuistyles.FormatCurrency(decimal.NewFromFloat(value))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
