package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
)

func TestDefaultAssumptions_Valid(t *testing.T) {
	require.NoError(t, DefaultAssumptions().Validate())
}

func TestAssumptions_CloneIsDeep(t *testing.T) {
	a := DefaultAssumptions()
	c := a.Clone()
	c.StampDuty[0].RatePercent = 99
	c.ScenarioGrowthPercent[domain.Moderate] = 42

	assert.Equal(t, 1.25, a.StampDuty[0].RatePercent)
	assert.Equal(t, 6.0, a.ScenarioGrowthPercent[domain.Moderate])
}

func TestAssumptions_ValidateRejects(t *testing.T) {
	cases := map[string]func(*Assumptions){
		"empty table":         func(a *Assumptions) { a.StampDuty = nil },
		"discontinuous table": func(a *Assumptions) { a.StampDuty[2].Base = 500 },
		"unsorted table":      func(a *Assumptions) { a.StampDuty[2].Threshold = 10_000 },
		"missing scenario":    func(a *Assumptions) { delete(a.ScenarioGrowthPercent, domain.Optimistic) },
		"flat growth":         func(a *Assumptions) { a.ScenarioGrowthPercent[domain.Conservative] = 0 },
		"zero multiple":       func(a *Assumptions) { a.IncomeMultiple = 0 },
		"lvr over 100":        func(a *Assumptions) { a.MaxLVRPercent = 120 },
		"deposit 100":         func(a *Assumptions) { a.DefaultDepositPercent = 100 },
		"no default term":     func(a *Assumptions) { a.DefaultLoanTermYears = 0 },
		"nan bracket rate":    func(a *Assumptions) { a.StampDuty[len(a.StampDuty)-1].RatePercent = math.NaN() },
		"nan lmi threshold":   func(a *Assumptions) { a.LMIThresholdPercent = math.NaN() },
		"nan rental return":   func(a *Assumptions) { a.RentalReturnPercent = math.NaN() },
		"inf rental return":   func(a *Assumptions) { a.RentalReturnPercent = math.Inf(1) },
		"inf multiple":        func(a *Assumptions) { a.IncomeMultiple = math.Inf(1) },
		"nan default deposit": func(a *Assumptions) { a.DefaultDepositPercent = math.NaN() },
		"nan default rate":    func(a *Assumptions) { a.DefaultInterestRatePercent = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := DefaultAssumptions()
			mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}
