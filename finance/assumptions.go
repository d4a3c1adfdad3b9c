package finance

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"haus-finance/domain"
)

// StampDutyBracket is one tier of a progressive transfer duty table: a
// purchase price above Threshold pays Base plus RatePercent of the excess.
type StampDutyBracket struct {
	Threshold   float64 `yaml:"threshold" json:"threshold"`
	Base        float64 `yaml:"base" json:"base"`
	RatePercent float64 `yaml:"rate_percent" json:"ratePercent"`
}

// Assumptions gathers the fixed constants the calculators rely on.
type Assumptions struct {
	StampDuty             []StampDutyBracket          `yaml:"stamp_duty" json:"stampDuty"`
	ScenarioGrowthPercent map[domain.Scenario]float64 `yaml:"scenario_growth_percent" json:"scenarioGrowthPercent"`

	// Borrowing capacity as a multiple of disposable income.
	IncomeMultiple float64 `yaml:"income_multiple" json:"incomeMultiple"`
	MaxLVRPercent  float64 `yaml:"max_lvr_percent" json:"maxLvrPercent"`

	// Deposits below this percentage of the price attract LMI.
	LMIThresholdPercent float64 `yaml:"lmi_threshold_percent" json:"lmiThresholdPercent"`

	// Gross rent per year as a percentage of property value, used by projections.
	RentalReturnPercent float64 `yaml:"rental_return_percent" json:"rentalReturnPercent"`

	DefaultDepositPercent      float64 `yaml:"default_deposit_percent" json:"defaultDepositPercent"`
	DefaultInterestRatePercent float64 `yaml:"default_interest_rate_percent" json:"defaultInterestRatePercent"`
	DefaultLoanTermYears       int     `yaml:"default_loan_term_years" json:"defaultLoanTermYears"`
}

// NSWStampDuty is the New South Wales general transfer duty table.
var NSWStampDuty = []StampDutyBracket{
	{Threshold: 0, Base: 0, RatePercent: 1.25},
	{Threshold: 16_000, Base: 200, RatePercent: 1.5},
	{Threshold: 35_000, Base: 485, RatePercent: 1.75},
	{Threshold: 93_000, Base: 1_500, RatePercent: 3.5},
	{Threshold: 351_000, Base: 10_530, RatePercent: 4.5},
	{Threshold: 1_168_000, Base: 47_295, RatePercent: 5.5},
}

// DefaultAssumptions returns a fresh copy of the built-in assumptions.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		StampDuty: slices.Clone(NSWStampDuty),
		ScenarioGrowthPercent: map[domain.Scenario]float64{
			domain.Conservative: 3,
			domain.Moderate:     6,
			domain.Optimistic:   9,
		},
		IncomeMultiple:             5,
		MaxLVRPercent:              80,
		LMIThresholdPercent:        20,
		RentalReturnPercent:        2.5,
		DefaultDepositPercent:      20,
		DefaultInterestRatePercent: 6.5,
		DefaultLoanTermYears:       30,
	}
}

// Clone returns a deep copy of a.
func (a Assumptions) Clone() Assumptions {
	c := a
	c.StampDuty = slices.Clone(a.StampDuty)
	c.ScenarioGrowthPercent = maps.Clone(a.ScenarioGrowthPercent)
	return c
}

// Validate checks that the assumptions keep every calculator well defined.
func (a Assumptions) Validate() error {
	if err := validateStampDuty(a.StampDuty); err != nil {
		return err
	}
	for _, s := range domain.Scenarios {
		g, ok := a.ScenarioGrowthPercent[s]
		if !ok {
			return fmt.Errorf("assumptions: missing growth rate for scenario %q", s)
		}
		if !(g > 0) || math.IsInf(g, 0) {
			return fmt.Errorf("assumptions: growth rate for %q must be positive, got %v", s, g)
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"income multiple", a.IncomeMultiple},
		{"max LVR", a.MaxLVRPercent},
		{"LMI threshold", a.LMIThresholdPercent},
		{"rental return", a.RentalReturnPercent},
		{"default deposit", a.DefaultDepositPercent},
		{"default interest rate", a.DefaultInterestRatePercent},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("assumptions: %s must be a finite number, got %v", f.name, f.v)
		}
	}
	if !(a.IncomeMultiple > 0) {
		return fmt.Errorf("assumptions: income multiple must be positive, got %v", a.IncomeMultiple)
	}
	if !(a.MaxLVRPercent > 0) || a.MaxLVRPercent > 100 {
		return fmt.Errorf("assumptions: max LVR must be within (0, 100], got %v", a.MaxLVRPercent)
	}
	if a.LMIThresholdPercent < 0 || a.LMIThresholdPercent > 100 {
		return fmt.Errorf("assumptions: LMI threshold must be within [0, 100], got %v", a.LMIThresholdPercent)
	}
	if a.RentalReturnPercent < 0 {
		return fmt.Errorf("assumptions: rental return must not be negative, got %v", a.RentalReturnPercent)
	}
	if a.DefaultDepositPercent < 0 || a.DefaultDepositPercent >= 100 {
		return fmt.Errorf("assumptions: default deposit must be within [0, 100), got %v", a.DefaultDepositPercent)
	}
	if a.DefaultInterestRatePercent < 0 || a.DefaultInterestRatePercent > MaxInterestRatePercent {
		return fmt.Errorf("assumptions: default interest rate out of range: %v", a.DefaultInterestRatePercent)
	}
	if a.DefaultLoanTermYears < 1 || a.DefaultLoanTermYears > MaxLoanTermYears {
		return fmt.Errorf("assumptions: default loan term out of range: %d", a.DefaultLoanTermYears)
	}
	return nil
}

func validateStampDuty(table []StampDutyBracket) error {
	if len(table) == 0 {
		return fmt.Errorf("assumptions: stamp duty table is empty")
	}
	if table[0].Threshold != 0 || table[0].Base != 0 {
		return fmt.Errorf("assumptions: first stamp duty bracket must start at 0 with no base")
	}
	for i, b := range table {
		for _, v := range []float64{b.Threshold, b.Base, b.RatePercent} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("assumptions: stamp duty bracket %d must hold finite numbers", i)
			}
		}
		if b.RatePercent < 0 || b.RatePercent > 100 {
			return fmt.Errorf("assumptions: stamp duty bracket %d has rate %v%%", i, b.RatePercent)
		}
		if i == 0 {
			continue
		}
		prev := table[i-1]
		if b.Threshold <= prev.Threshold {
			return fmt.Errorf("assumptions: stamp duty thresholds must ascend (bracket %d)", i)
		}
		// The base must equal the previous tier's duty at the threshold.
		want := prev.Base + (b.Threshold-prev.Threshold)*prev.RatePercent/100
		if math.Abs(want-b.Base) > 0.01 {
			return fmt.Errorf("assumptions: stamp duty bracket %d base %.2f, expected %.2f", i, b.Base, want)
		}
	}
	return nil
}
