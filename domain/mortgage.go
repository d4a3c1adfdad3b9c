package domain

// RepaymentFrequency is how often a mortgage repayment falls due.
type RepaymentFrequency string

const (
	Monthly     RepaymentFrequency = "monthly"
	Fortnightly RepaymentFrequency = "fortnightly"
	Weekly      RepaymentFrequency = "weekly"
)

// PeriodsPerYear returns the number of repayments per year, or 0 for an
// unknown frequency. The empty frequency is treated as monthly.
func (f RepaymentFrequency) PeriodsPerYear() int {
	switch f {
	case Monthly, "":
		return 12
	case Fortnightly:
		return 26
	case Weekly:
		return 52
	}
	return 0
}

type MortgageInputs struct {
	PropertyPrice             float64            `json:"propertyPrice"`
	DepositPercent            float64            `json:"depositPercent"`
	AnnualInterestRatePercent float64            `json:"annualInterestRatePercent"`
	LoanTermYears             int                `json:"loanTermYears"`
	RepaymentFrequency        RepaymentFrequency `json:"repaymentFrequency"`
	// Reamortize computes fortnightly and weekly repayments on their own
	// periodic rate instead of scaling the monthly figure.
	Reamortize bool `json:"reamortize,omitempty"`
}

type MortgageResult struct {
	DepositAmount   float64            `json:"depositAmount"`
	LoanAmount      float64            `json:"loanAmount"`
	LVRPercent      float64            `json:"lvrPercent"`
	Frequency       RepaymentFrequency `json:"frequency"`
	PeriodsPerYear  int                `json:"periodsPerYear"`
	PeriodicPayment float64            `json:"periodicPayment"`
	MonthlyPayment  float64            `json:"monthlyPayment"`
	AnnualPayment   float64            `json:"annualPayment"`
	TotalInterest   float64            `json:"totalInterest"`
	TotalRepayment  float64            `json:"totalRepayment"`
	StampDuty       float64            `json:"stampDuty"`
	UpfrontCosts    float64            `json:"upfrontCosts"`
	LMIRequired     bool               `json:"lmiRequired"`
}
