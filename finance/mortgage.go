package finance

import (
	"github.com/shopspring/decimal"

	"haus-finance/domain"
)

func validateMortgage(in domain.MortgageInputs) error {
	if err := requireNonNegative("propertyPrice", in.PropertyPrice); err != nil {
		return err
	}
	if in.PropertyPrice > MaxPropertyPrice {
		return invalid("propertyPrice", "exceeds the maximum of %.0f", MaxPropertyPrice)
	}
	if err := requireNonNegative("depositPercent", in.DepositPercent); err != nil {
		return err
	}
	if in.DepositPercent >= 100 {
		return invalid("depositPercent", "must be below 100%%")
	}
	if err := requireNonNegative("annualInterestRatePercent", in.AnnualInterestRatePercent); err != nil {
		return err
	}
	if in.AnnualInterestRatePercent > MaxInterestRatePercent {
		return invalid("annualInterestRatePercent", "exceeds the maximum of %.0f%%", MaxInterestRatePercent)
	}
	if in.LoanTermYears < 1 || in.LoanTermYears > MaxLoanTermYears {
		return invalid("loanTermYears", "must be between 1 and %d years", MaxLoanTermYears)
	}
	if in.RepaymentFrequency.PeriodsPerYear() == 0 {
		return invalid("repaymentFrequency", "unknown frequency %q", in.RepaymentFrequency)
	}
	return nil
}

// Mortgage prices a fixed-rate home loan.
//
// The monthly repayment comes from the standard amortization formula. By
// default fortnightly and weekly figures scale it (×12/26, ×12/52); with
// Reamortize set they are recomputed at the frequency's own periodic rate,
// which is slightly cheaper because principal falls sooner.
//
// DepositAmount and LoanAmount split the price exactly in decimal cents. For
// whole-dollar prices their float64 sum equals PropertyPrice bit for bit; for
// prices with cents it may differ in the last bit, so compare to the cent.
func Mortgage(in domain.MortgageInputs, a Assumptions) (domain.MortgageResult, error) {
	if err := validateMortgage(in); err != nil {
		return domain.MortgageResult{}, err
	}

	freq := in.RepaymentFrequency
	if freq == "" {
		freq = domain.Monthly
	}
	perYear := freq.PeriodsPerYear()

	deposit := percentOf(in.PropertyPrice, in.DepositPercent)
	loan := decimal.NewFromFloat(in.PropertyPrice).Sub(deposit)
	principal := loan.InexactFloat64()

	monthly := PeriodicPayment(principal, in.AnnualInterestRatePercent/100/monthsPerYear, in.LoanTermYears*monthsPerYear)

	var periodic, annual, totalRepayment float64
	if in.Reamortize && perYear != monthsPerYear {
		periods := in.LoanTermYears * perYear
		periodic = PeriodicPayment(principal, in.AnnualInterestRatePercent/100/float64(perYear), periods)
		annual = periodic * float64(perYear)
		totalRepayment = periodic * float64(periods)
	} else {
		annual = monthly * monthsPerYear
		periodic = annual / float64(perYear)
		totalRepayment = monthly * float64(in.LoanTermYears*monthsPerYear)
	}

	duty := stampDuty(in.PropertyPrice, a.StampDuty)

	var lvr float64
	if in.PropertyPrice > 0 {
		lvr = principal / in.PropertyPrice * 100
	}

	return domain.MortgageResult{
		DepositAmount:   deposit.InexactFloat64(),
		LoanAmount:      principal,
		LVRPercent:      roundCents(lvr),
		Frequency:       freq,
		PeriodsPerYear:  perYear,
		PeriodicPayment: roundCents(periodic),
		MonthlyPayment:  roundCents(monthly),
		AnnualPayment:   roundCents(annual),
		TotalInterest:   roundCents(totalRepayment - principal),
		TotalRepayment:  roundCents(totalRepayment),
		StampDuty:       duty,
		UpfrontCosts:    roundCents(deposit.InexactFloat64() + duty),
		LMIRequired:     in.DepositPercent < a.LMIThresholdPercent,
	}, nil
}
