package finance

import "github.com/shopspring/decimal"

// StampDuty returns the transfer duty payable on a purchase at price under
// the table in a. A zero price pays nothing.
func StampDuty(price float64, a Assumptions) (float64, error) {
	if err := requireNonNegative("propertyPrice", price); err != nil {
		return 0, err
	}
	if price > MaxPropertyPrice {
		return 0, invalid("propertyPrice", "exceeds the maximum of %.0f", MaxPropertyPrice)
	}
	return stampDuty(price, a.StampDuty), nil
}

func stampDuty(price float64, table []StampDutyBracket) float64 {
	if price <= 0 || len(table) == 0 {
		return 0
	}

	tier := table[0]
	for _, b := range table[1:] {
		if price <= b.Threshold {
			break
		}
		tier = b
	}

	excess := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(tier.Threshold))
	duty := decimal.NewFromFloat(tier.Base).
		Add(excess.Mul(decimal.NewFromFloat(tier.RatePercent)).Div(hundred))
	return duty.Round(2).InexactFloat64()
}
