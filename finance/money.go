package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// roundCents rounds half away from zero to two decimals.
func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// percentOf returns pct% of amount rounded to cents, computed in decimal so
// amount - percentOf(amount, pct) is exact to the cent.
func percentOf(amount, pct float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(hundred).
		Round(2)
}
