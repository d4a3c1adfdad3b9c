package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
)

func TestRentalYield(t *testing.T) {
	r, err := RentalYield(domain.RentalYieldInputs{
		PropertyPrice:        800_000,
		WeeklyRent:           650,
		ManagementFeePercent: 7,
		VacancyRatePercent:   2,
		AnnualExpenses:       5_000,
	})
	require.NoError(t, err)

	assert.Equal(t, 33_800.0, r.AnnualRent)
	assert.Equal(t, 2_366.0, r.ManagementCost)
	assert.Equal(t, 676.0, r.VacancyCost)
	assert.Equal(t, 8_042.0, r.TotalAnnualCosts)
	assert.Equal(t, 25_758.0, r.NetAnnualIncome)
	assert.InDelta(t, 4.225, r.GrossYieldPercent, 0.006)
	assert.InDelta(t, 3.22, r.NetYieldPercent, 0.006)
	assert.Equal(t, 105.66, r.BreakEvenWeeklyRent)
	assert.Equal(t, 495.35, r.WeeklyCashflow)
}

func TestRentalYield_BreakEvenZeroesNetIncome(t *testing.T) {
	in := domain.RentalYieldInputs{
		PropertyPrice:        650_000,
		WeeklyRent:           500,
		ManagementFeePercent: 8,
		VacancyRatePercent:   3,
		AnnualExpenses:       7_500,
	}
	r, err := RentalYield(in)
	require.NoError(t, err)

	in.WeeklyRent = r.BreakEvenWeeklyRent
	atBreakEven, err := RentalYield(in)
	require.NoError(t, err)
	assert.InDelta(t, 0, atBreakEven.NetAnnualIncome, 0.5)
}

func TestRentalYield_NetNeverExceedsGross(t *testing.T) {
	for _, fee := range []float64{0, 5, 8.8, 12} {
		for _, vacancy := range []float64{0, 2, 5} {
			for _, expenses := range []float64{0, 1_000, 12_000} {
				r, err := RentalYield(domain.RentalYieldInputs{
					PropertyPrice:        900_000,
					WeeklyRent:           720,
					ManagementFeePercent: fee,
					VacancyRatePercent:   vacancy,
					AnnualExpenses:       expenses,
				})
				require.NoError(t, err)
				require.LessOrEqual(t, r.NetYieldPercent, r.GrossYieldPercent)
			}
		}
	}
}

func TestRentalYield_Validation(t *testing.T) {
	cases := map[string]struct {
		in    domain.RentalYieldInputs
		field string
	}{
		"zero price":     {domain.RentalYieldInputs{PropertyPrice: 0, WeeklyRent: 500}, "propertyPrice"},
		"negative rent":  {domain.RentalYieldInputs{PropertyPrice: 1, WeeklyRent: -1}, "weeklyRent"},
		"fee over 100":   {domain.RentalYieldInputs{PropertyPrice: 1, ManagementFeePercent: 101}, "managementFeePercent"},
		"costs eat rent": {domain.RentalYieldInputs{PropertyPrice: 1, ManagementFeePercent: 60, VacancyRatePercent: 40}, "vacancyRatePercent"},
		"negative costs": {domain.RentalYieldInputs{PropertyPrice: 1, AnnualExpenses: -10}, "annualExpenses"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RentalYield(tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
