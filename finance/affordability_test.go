package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
)

func TestAffordability_WorkedExample(t *testing.T) {
	r, err := Affordability(domain.AffordabilityInputs{
		AnnualIncome:   300_000,
		LivingExpenses: 80_000,
	}, DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, domain.AffordabilityResult{
		TotalIncome:          300_000,
		TotalExpenses:        80_000,
		DisposableIncome:     220_000,
		MaxBorrowingCapacity: 1_100_000,
		MaxPurchasePrice:     1_375_000,
		RequiredDeposit:      275_000,
	}, r)
}

func TestAffordability_NegativeDisposableBorrowsNothing(t *testing.T) {
	r, err := Affordability(domain.AffordabilityInputs{
		AnnualIncome:        50_000,
		OtherIncome:         5_000,
		LivingExpenses:      60_000,
		OtherLoanRepayments: 25_000,
	}, DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, -30_000.0, r.DisposableIncome)
	assert.Equal(t, 0.0, r.MaxBorrowingCapacity)
	assert.Equal(t, 0.0, r.MaxPurchasePrice)
	assert.Equal(t, 0.0, r.RequiredDeposit)
}

func TestAffordability_UsesAssumptions(t *testing.T) {
	a := DefaultAssumptions()
	a.IncomeMultiple = 6
	a.MaxLVRPercent = 90

	r, err := Affordability(domain.AffordabilityInputs{AnnualIncome: 150_000, LivingExpenses: 60_000}, a)
	require.NoError(t, err)
	assert.Equal(t, 540_000.0, r.MaxBorrowingCapacity)
	assert.Equal(t, 600_000.0, r.MaxPurchasePrice)
}

func TestAffordability_RejectsNegativeInputs(t *testing.T) {
	_, err := Affordability(domain.AffordabilityInputs{AnnualIncome: 100_000, OtherLoanRepayments: -1}, DefaultAssumptions())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "otherLoanRepayments", verr.Field)
}
