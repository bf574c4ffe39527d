package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is rendered for metrics that are mathematically undefined.
const NotAvailable = "N/A"

var (
	crore = decimal.NewFromInt(10000000)
	lakh  = decimal.NewFromInt(100000)
	thou  = decimal.NewFromInt(1000)
)

// FormatCurrency formats a decimal as rupees with 2 decimals and Indian digit
// grouping, e.g. ₹11,61,695.38.
func FormatCurrency(amount decimal.Decimal) string {
	return formatRupees("₹", amount)
}

// FormatCurrencyASCII is FormatCurrency with an ASCII symbol for renderers
// whose fonts lack the rupee glyph.
func FormatCurrencyASCII(amount decimal.Decimal) string {
	return formatRupees("Rs.", amount)
}

func formatRupees(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + symbol + groupIndian(intPart) + "." + frac
}

// groupIndian inserts separators after the last three digits and then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// Abbreviate scales amount's magnitude to the largest Indian unit it reaches
// and returns it with the unit: "Cr", "L", "K", or "" below a thousand.
func Abbreviate(amount decimal.Decimal) (decimal.Decimal, string) {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return abs.Div(crore), "Cr"
	case abs.GreaterThanOrEqual(lakh):
		return abs.Div(lakh), "L"
	case abs.GreaterThanOrEqual(thou):
		return abs.Div(thou), "K"
	}
	return abs, ""
}

// FormatCompact abbreviates large amounts the way chart axes do (Cr, L, K).
func FormatCompact(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	scaled, unit := Abbreviate(amount)
	switch unit {
	case "":
		return sign + "₹" + scaled.StringFixed(0)
	case "K":
		return sign + "₹" + scaled.StringFixed(0) + " K"
	}
	return sign + "₹" + scaled.StringFixed(1) + " " + unit
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatOptionalPercentage renders nil as N/A.
func FormatOptionalPercentage(amount *decimal.Decimal) string {
	if amount == nil {
		return NotAvailable
	}
	return FormatPercentage(*amount)
}

// FormatCPI formats an index value with 2 decimals.
func FormatCPI(cpi decimal.Decimal) string { return cpi.StringFixed(2) }
