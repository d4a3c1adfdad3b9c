package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
)

func termInputs() domain.TermRecommendationInputs {
	return domain.TermRecommendationInputs{
		PropertyPrice:             625_000,
		DepositPercent:            20,
		AnnualInterestRatePercent: 6,
		MinTermYears:              10,
		MaxTermYears:              30,
		MaxPeriodicPayment:        4_000,
		RepaymentFrequency:        domain.Monthly,
		Preference:                domain.MinimizeInterest,
	}
}

func TestRecommendTerm_MinimizeInterestPicksShortestAffordable(t *testing.T) {
	r, err := RecommendTerm(termInputs(), DefaultAssumptions())
	require.NoError(t, err)

	assert.Equal(t, 17, r.RecommendedTermYears)
	require.Len(t, r.Options, 14)
	for i, o := range r.Options {
		assert.LessOrEqual(t, o.PeriodicPayment, 4_000.0)
		assert.NotEmpty(t, o.Reason)
		if i > 0 {
			assert.LessOrEqual(t, o.Score, r.Options[i-1].Score)
		}
	}
}

func TestRecommendTerm_MinimizePaymentPrefersLongTerms(t *testing.T) {
	in := termInputs()
	in.Preference = domain.MinimizePayment

	r, err := RecommendTerm(in, DefaultAssumptions())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.RecommendedTermYears, 25)
}

func TestRecommendTerm_SingleTerm(t *testing.T) {
	in := termInputs()
	in.MinTermYears, in.MaxTermYears = 25, 25
	in.Preference = domain.Balanced

	r, err := RecommendTerm(in, DefaultAssumptions())
	require.NoError(t, err)
	require.Len(t, r.Options, 1)
	assert.Equal(t, 25, r.RecommendedTermYears)
	assert.Equal(t, 10.0, r.Options[0].Score)
}

func TestRecommendTerm_Validation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*domain.TermRecommendationInputs)
		field  string
	}{
		"unaffordable":   {func(in *domain.TermRecommendationInputs) { in.MaxPeriodicPayment = 100 }, "maxPeriodicPayment"},
		"inverted range": {func(in *domain.TermRecommendationInputs) { in.MinTermYears = 31 }, "minTermYears"},
		"too long":       {func(in *domain.TermRecommendationInputs) { in.MaxTermYears = 60 }, "maxTermYears"},
		"preference":     {func(in *domain.TermRecommendationInputs) { in.Preference = "cheapest" }, "preference"},
		"frequency":      {func(in *domain.TermRecommendationInputs) { in.RepaymentFrequency = "yearly" }, "repaymentFrequency"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := termInputs()
			tc.mutate(&in)

			_, err := RecommendTerm(in, DefaultAssumptions())
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNormalise_FavoursLowerValues(t *testing.T) {
	assert.Equal(t, 10.0, normalise(10, 10, 30))
	assert.Equal(t, 5.0, normalise(20, 10, 30))
	assert.Equal(t, 0.0, normalise(30, 10, 30))
	assert.Equal(t, 10.0, normalise(25, 25, 25))
}

func TestRecommendTerm_TermScoreBreaksTies(t *testing.T) {
	// With interest and payment weighted equally the shorter of two terms
	// gains the whole term component.
	in := termInputs()
	in.MinTermYears, in.MaxTermYears = 20, 21
	in.Preference = domain.Balanced

	r, err := RecommendTerm(in, DefaultAssumptions())
	require.NoError(t, err)
	require.Len(t, r.Options, 2)
	assert.Equal(t, 20, r.RecommendedTermYears)
	assert.Equal(t, 6.0, r.Options[0].Score)
	assert.Equal(t, 4.0, r.Options[1].Score)
}
