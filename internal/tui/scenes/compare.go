package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/transform"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// CompareModel lets the user pick what-if templates and shows how each
// changes the explored plan
type CompareModel struct {
	templates   []transform.Template
	selected    map[string]bool
	cursorIndex int
	result      *compare.ComparisonSet
	comparing   bool
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel(templates []transform.Template) *CompareModel {
	return &CompareModel{
		templates: templates,
		selected:  make(map[string]bool),
	}
}

// SelectedTemplates returns the chosen template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for _, t := range m.templates {
		if m.selected[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

// SetResult stores a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.result = set
	m.comparing = false
}

// Result returns the stored comparison, or nil if none has been made
func (m *CompareModel) Result() *compare.ComparisonSet {
	return m.result
}

// ClearResult drops a comparison made against an older plan
func (m *CompareModel) ClearResult() {
	m.result = nil
}

// SetComparing marks a comparison as running
func (m *CompareModel) SetComparing(comparing bool) {
	m.comparing = comparing
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.templates) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		name := m.templates[m.cursorIndex].Name
		m.selected[name] = !m.selected[name]
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		all := len(m.SelectedTemplates()) < len(m.templates)
		for _, t := range m.templates {
			m.selected[t.Name] = all
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		names := m.SelectedTemplates()
		if len(names) == 0 || m.comparing {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg {
			return tuimsg.CompareRequestedMsg{Templates: names}
		}
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	left := tuistyles.BorderStyle.Width(44).Render(
		tuistyles.TitleStyle.Render("What-if Templates") + "\n\n" + m.renderTemplateList())

	var right string
	switch {
	case m.comparing:
		right = tuistyles.InfoStyle.Render("Comparing...")
	case m.result != nil:
		right = renderComparison(m.result)
	default:
		right = tuistyles.HelpDescStyle.Render("Select templates with space, then press enter")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return content + "\n\n" + tuistyles.HelpDescStyle.Render("↑/↓ move • space toggle • a all/none • enter compare")
}

func (m *CompareModel) renderTemplateList() string {
	lines := make([]string, 0, len(m.templates))
	for i, t := range m.templates {
		box := "[ ]"
		if m.selected[t.Name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Name)
		if i == m.cursorIndex {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("▸ "+line))
			lines = append(lines, tuistyles.HelpDescStyle.Render("    "+t.Description))
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

const compareRowFormat = "%-28s %10s %11s %10s %8s %9s"

func renderComparison(set *compare.ComparisonSet) string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf(compareRowFormat,
		"Scenario", "Corpus", "vs Base", "Real", "CAGR", "Depleted")))
	b.WriteString("\n")
	if set.BaseResult != nil {
		b.WriteString(compareRow(*set.BaseResult, false))
		b.WriteString("\n")
	}
	for _, alt := range set.AlternativeResults {
		b.WriteString(compareRow(alt, true))
		b.WriteString("\n")
	}

	if len(set.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(tuistyles.SubtitleStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, r := range set.Recommendations {
			b.WriteString(tuistyles.InfoStyle.Render("• " + r))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func compareRow(r compare.ComparisonResult, withDiff bool) string {
	diff := "-"
	style := tuistyles.TableCellStyle
	if withDiff {
		diff = signedCompact(r.CorpusDiffFromBase)
		if r.CorpusDiffFromBase.IsNegative() {
			style = tuistyles.MetricNegativeStyle
		} else if r.CorpusDiffFromBase.IsPositive() {
			style = tuistyles.MetricPositiveStyle
		}
	}
	depleted := "no"
	if r.Depleted() {
		depleted = fmt.Sprintf("Y%d M%d", r.FirstDepletion.Year, r.FirstDepletion.Month)
	}
	name := r.ScenarioName
	if len(name) > 28 {
		name = name[:27] + "…"
	}
	return style.Render(fmt.Sprintf(compareRowFormat,
		name,
		tuistyles.FormatCurrency(r.FinalCorpus),
		diff,
		tuistyles.FormatCurrency(r.FinalInflationAdjustedCorpus),
		output.FormatOptionalPercentage(r.CAGR),
		depleted,
	))
}

func signedCompact(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + tuistyles.FormatCurrency(d.Abs())
	}
	return "+" + tuistyles.FormatCurrency(d)
}
