package finance

import (
	"github.com/shopspring/decimal"

	"haus-finance/domain"
)

// GrowthRate returns the annual growth percentage assumed for scenario.
func GrowthRate(scenario domain.Scenario, a Assumptions) (float64, error) {
	g, ok := a.ScenarioGrowthPercent[scenario]
	if !ok {
		return 0, invalid("scenario", "unknown scenario %q", scenario)
	}
	return g, nil
}

type projectionLoan struct {
	depositPercent float64
	ratePercent    float64
	termYears      int
}

func resolveProjectionLoan(in domain.ProjectionInputs, a Assumptions) (projectionLoan, error) {
	loan := projectionLoan{
		depositPercent: a.DefaultDepositPercent,
		ratePercent:    a.DefaultInterestRatePercent,
		termYears:      a.DefaultLoanTermYears,
	}
	if in.DepositPercent != nil {
		loan.depositPercent = *in.DepositPercent
		if err := requireNonNegative("depositPercent", loan.depositPercent); err != nil {
			return loan, err
		}
		if loan.depositPercent >= 100 {
			return loan, invalid("depositPercent", "must be below 100%%")
		}
	}
	if in.AnnualInterestRatePercent != nil {
		loan.ratePercent = *in.AnnualInterestRatePercent
		if err := requireNonNegative("annualInterestRatePercent", loan.ratePercent); err != nil {
			return loan, err
		}
		if loan.ratePercent > MaxInterestRatePercent {
			return loan, invalid("annualInterestRatePercent", "exceeds the maximum of %.0f%%", MaxInterestRatePercent)
		}
	}
	if in.LoanTermYears != 0 {
		if in.LoanTermYears < 1 || in.LoanTermYears > MaxLoanTermYears {
			return loan, invalid("loanTermYears", "must be between 1 and %d years", MaxLoanTermYears)
		}
		loan.termYears = in.LoanTermYears
	}
	return loan, nil
}

// Project simulates property value, loan balance and equity year by year.
// The property compounds at the scenario growth rate; the loan follows the
// same amortization schedule the mortgage calculator prices, with monthly
// repayments.
func Project(in domain.ProjectionInputs, a Assumptions) (domain.ProjectionResult, error) {
	if err := requirePositive("propertyPrice", in.PropertyPrice); err != nil {
		return domain.ProjectionResult{}, err
	}
	if in.PropertyPrice > MaxPropertyPrice {
		return domain.ProjectionResult{}, invalid("propertyPrice", "exceeds the maximum of %.0f", MaxPropertyPrice)
	}
	if in.Years < 1 || in.Years > MaxProjectionYears {
		return domain.ProjectionResult{}, invalid("years", "must be between 1 and %d", MaxProjectionYears)
	}
	growth, err := GrowthRate(in.Scenario, a)
	if err != nil {
		return domain.ProjectionResult{}, err
	}
	loan, err := resolveProjectionLoan(in, a)
	if err != nil {
		return domain.ProjectionResult{}, err
	}

	principal := decimal.NewFromFloat(in.PropertyPrice).
		Sub(percentOf(in.PropertyPrice, loan.depositPercent)).
		InexactFloat64()
	schedule := Amortize(principal, loan.ratePercent, loan.termYears, monthsPerYear)

	result := domain.ProjectionResult{
		Scenario:          in.Scenario,
		GrowthRatePercent: growth,
		InitialLoan:       principal,
		Rows:              make([]domain.ProjectionRow, 0, in.Years),
	}

	value := in.PropertyPrice
	var rentTotal float64
	for year := 1; year <= in.Years; year++ {
		value *= 1 + growth/100
		balance := schedule.BalanceAfterYear(year)
		rent := value * a.RentalReturnPercent / 100
		rentTotal += rent

		v, b := roundCents(value), roundCents(balance)
		result.Rows = append(result.Rows, domain.ProjectionRow{
			Year:          year,
			PropertyValue: v,
			LoanBalance:   b,
			Equity:        roundCents(v - b),
			RentalIncome:  roundCents(rent),
		})
	}

	last := result.Rows[len(result.Rows)-1]
	result.FinalEquity = last.Equity
	result.CapitalGrowth = roundCents(last.PropertyValue - in.PropertyPrice)
	result.CumulativeRentalIncome = roundCents(rentTotal)
	return result, nil
}
