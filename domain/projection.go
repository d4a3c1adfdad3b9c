package domain

// Scenario selects the annual capital growth assumption of a projection.
type Scenario string

const (
	Conservative Scenario = "conservative"
	Moderate     Scenario = "moderate"
	Optimistic   Scenario = "optimistic"
)

// Scenarios lists every scenario in ascending growth order.
var Scenarios = []Scenario{Conservative, Moderate, Optimistic}

type ProjectionInputs struct {
	PropertyPrice float64  `json:"propertyPrice"`
	Scenario      Scenario `json:"scenario"`
	Years         int      `json:"years"`

	// Loan parameters. Unset fields fall back to the configured assumptions.
	DepositPercent            *float64 `json:"depositPercent,omitempty"`
	AnnualInterestRatePercent *float64 `json:"annualInterestRatePercent,omitempty"`
	LoanTermYears             int      `json:"loanTermYears,omitempty"`
}

type ProjectionRow struct {
	Year          int     `json:"year"`
	PropertyValue float64 `json:"propertyValue"`
	LoanBalance   float64 `json:"loanBalance"`
	Equity        float64 `json:"equity"`
	RentalIncome  float64 `json:"rentalIncome"`
}

type ProjectionResult struct {
	Scenario               Scenario        `json:"scenario"`
	GrowthRatePercent      float64         `json:"growthRatePercent"`
	InitialLoan            float64         `json:"initialLoan"`
	Rows                   []ProjectionRow `json:"rows"`
	FinalEquity            float64         `json:"finalEquity"`
	CapitalGrowth          float64         `json:"capitalGrowth"`
	CumulativeRentalIncome float64         `json:"cumulativeRentalIncome"`
}
