package finance

import "math"

type ScheduleRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// Schedule is a fixed-rate amortization schedule. Rows are unrounded so
// callers can aggregate them without accumulating rounding error.
type Schedule struct {
	Principal      float64
	PeriodicRate   float64
	PeriodsPerYear int
	Periods        int
	Payment        float64
	Rows           []ScheduleRow
}

// PeriodicPayment is the level repayment that clears principal over periods
// at periodicRate: P·r·(1+r)^n / ((1+r)^n − 1), or P/n when r is zero.
func PeriodicPayment(principal, periodicRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodicRate == 0 {
		return principal / float64(periods)
	}
	growth := math.Pow(1+periodicRate, float64(periods))
	return principal * periodicRate * growth / (growth - 1)
}

// Amortize builds the repayment schedule of a loan of principal at
// annualRatePercent over termYears with periodsPerYear repayments a year.
// The final period absorbs any floating point residue so the balance ends
// at exactly zero.
func Amortize(principal, annualRatePercent float64, termYears, periodsPerYear int) Schedule {
	rate := annualRatePercent / 100 / float64(periodsPerYear)
	periods := termYears * periodsPerYear
	payment := PeriodicPayment(principal, rate, periods)

	s := Schedule{
		Principal:      principal,
		PeriodicRate:   rate,
		PeriodsPerYear: periodsPerYear,
		Periods:        periods,
		Payment:        payment,
		Rows:           make([]ScheduleRow, 0, periods),
	}

	balance := principal
	for p := 1; p <= periods; p++ {
		interest := balance * rate
		principalPart := payment - interest
		if p == periods || principalPart > balance {
			principalPart = balance
		}
		balance -= principalPart
		if balance < 0 {
			balance = 0
		}
		s.Rows = append(s.Rows, ScheduleRow{
			Period:    p,
			Payment:   interest + principalPart,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
	}
	return s
}

// BalanceAfterYear returns the outstanding balance at the end of year.
// Years past the term report zero.
func (s Schedule) BalanceAfterYear(year int) float64 {
	if year <= 0 {
		return s.Principal
	}
	period := year * s.PeriodsPerYear
	if period > len(s.Rows) {
		return 0
	}
	return s.Rows[period-1].Balance
}

// TotalInterest sums the interest paid over the whole schedule.
func (s Schedule) TotalInterest() float64 {
	var total float64
	for _, r := range s.Rows {
		total += r.Interest
	}
	return total
}
