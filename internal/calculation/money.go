package calculation

import "github.com/shopspring/decimal"

// moneyPlaces is the number of decimal places kept in ledger state after each
// multiplicative step. Keeps the arithmetic bounded and the ledger reproducible.
const moneyPlaces = 10

var (
	hundred         = decimal.NewFromInt(100)
	twelveHundred   = decimal.NewFromInt(1200)
	baseCPI         = decimal.NewFromInt(100)
	minAnnualReturn = decimal.NewFromInt(-100)
)

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// percentOf returns amount × pct/100 rounded to ledger precision
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return roundMoney(amount.Mul(pct).Div(hundred))
}

// growthFactor returns 1 + pct/100
func growthFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
