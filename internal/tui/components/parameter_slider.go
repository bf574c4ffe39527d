package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/sipcalc/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable plan input with a visual track
type ParameterSlider struct {
	Key         string // plan field the slider edits
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Prefix      string // e.g. "₹"
	Unit        string // e.g. "%", " yrs"
	Format      string // e.g. "%.2f", "%.0f"
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider; value is clamped into range
func NewParameterSlider(key, label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Key:    key,
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
		Width:  30,
	}
	p.SetValue(value)
	return p
}

// WithPrefix sets the value prefix
func (p *ParameterSlider) WithPrefix(prefix string) *ParameterSlider {
	p.Prefix = prefix
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithFormat sets the value format string
func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a help line shown while focused
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by one step, stopping at Max.
// Reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value + p.Step)
}

// Decrement decreases the value by one step, stopping at Min.
// Reports whether the value changed.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value - p.Step)
}

// SetValue snaps value to the step grid and clamps it to [Min, Max].
// Reports whether the value changed.
func (p *ParameterSlider) SetValue(value float64) bool {
	if p.Step > 0 {
		value = p.Min + math.Round((value-p.Min)/p.Step)*p.Step
		// trim float noise such as 0.30000000000000004
		value = math.Round(value*1e6) / 1e6
	}
	value = math.Max(p.Min, math.Min(p.Max, value))
	changed := value != p.Value
	p.Value = value
	return changed
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// FormattedValue renders the value with prefix and unit
func (p *ParameterSlider) FormattedValue() string {
	return p.Prefix + fmt.Sprintf(p.Format, p.Value) + p.Unit
}

// Render returns a single slider row: label, track and value
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(22)
	valueStyle := tuistyles.ParameterValueStyle
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = tuistyles.SelectedItemStyle.Render("▶ ")
	}

	row := marker + labelStyle.Render(p.Label) + " " + p.renderTrack() + " " + valueStyle.Render(p.FormattedValue())
	if p.IsFocused && p.Description != "" {
		desc := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
		row += "\n    " + desc.Render(p.Description)
	}
	return row
}

// renderTrack draws the slider bar with the thumb at the current position
func (p *ParameterSlider) renderTrack() string {
	width := p.Width
	if width < 2 {
		width = 2
	}
	pos := int(math.Round(float64(width-1) * p.Percentage()))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
