package domain

// TermPreference ranks candidate loan terms.
type TermPreference string

const (
	MinimizeInterest TermPreference = "minimize_interest"
	MinimizePayment  TermPreference = "minimize_payment"
	Balanced         TermPreference = "balanced"
)

type TermRecommendationInputs struct {
	PropertyPrice             float64            `json:"propertyPrice"`
	DepositPercent            float64            `json:"depositPercent"`
	AnnualInterestRatePercent float64            `json:"annualInterestRatePercent"`
	MinTermYears              int                `json:"minTermYears"`
	MaxTermYears              int                `json:"maxTermYears"`
	MaxPeriodicPayment        float64            `json:"maxPeriodicPayment"`
	RepaymentFrequency        RepaymentFrequency `json:"repaymentFrequency"`
	Preference                TermPreference     `json:"preference"`
}

type TermOption struct {
	TermYears       int     `json:"termYears"`
	PeriodicPayment float64 `json:"periodicPayment"`
	TotalInterest   float64 `json:"totalInterest"`
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTermYears int          `json:"recommendedTermYears"`
	Options              []TermOption `json:"options"`
}
