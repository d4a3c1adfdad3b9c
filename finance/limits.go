package finance

const (
	MaxPropertyPrice       = 1_000_000_000.0
	MaxInterestRatePercent = 100.0
	MaxLoanTermYears       = 50
	MaxProjectionYears     = 50

	// Upper bound on the number of terms a recommendation evaluates.
	MaxTermRangeYears = 40

	weeksPerYear  = 52
	monthsPerYear = 12
)
