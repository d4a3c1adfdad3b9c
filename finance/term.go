package finance

import (
	"sort"

	"haus-finance/domain"
)

func validateTermRecommendation(in domain.TermRecommendationInputs) error {
	if err := requirePositive("propertyPrice", in.PropertyPrice); err != nil {
		return err
	}
	if in.MinTermYears < 1 || in.MaxTermYears < 1 {
		return invalid("minTermYears", "terms must be at least one year")
	}
	if in.MinTermYears > in.MaxTermYears {
		return invalid("minTermYears", "minimum term is greater than maximum term")
	}
	if in.MaxTermYears > MaxLoanTermYears {
		return invalid("maxTermYears", "exceeds the limit of %d years", MaxLoanTermYears)
	}
	if in.MaxTermYears-in.MinTermYears > MaxTermRangeYears {
		return invalid("maxTermYears", "term range exceeds %d years", MaxTermRangeYears)
	}
	if err := requirePositive("maxPeriodicPayment", in.MaxPeriodicPayment); err != nil {
		return err
	}
	switch in.Preference {
	case domain.MinimizeInterest, domain.MinimizePayment, domain.Balanced:
	default:
		return invalid("preference", "unknown preference %q", in.Preference)
	}
	return nil
}

// RecommendTerm prices every whole-year term in [MinTermYears, MaxTermYears],
// drops those whose repayment exceeds MaxPeriodicPayment and ranks the rest
// by preference. Options are sorted best first; ties go to the shorter term.
func RecommendTerm(in domain.TermRecommendationInputs, a Assumptions) (domain.TermRecommendationResult, error) {
	if err := validateTermRecommendation(in); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	options := []domain.TermOption{}
	for term := in.MinTermYears; term <= in.MaxTermYears; term++ {
		m, err := Mortgage(domain.MortgageInputs{
			PropertyPrice:             in.PropertyPrice,
			DepositPercent:            in.DepositPercent,
			AnnualInterestRatePercent: in.AnnualInterestRatePercent,
			LoanTermYears:             term,
			RepaymentFrequency:        in.RepaymentFrequency,
		}, a)
		if err != nil {
			return domain.TermRecommendationResult{}, err
		}
		if m.PeriodicPayment > in.MaxPeriodicPayment {
			continue
		}
		options = append(options, domain.TermOption{
			TermYears:       term,
			PeriodicPayment: m.PeriodicPayment,
			TotalInterest:   m.TotalInterest,
		})
	}

	if len(options) == 0 {
		return domain.TermRecommendationResult{}, invalid("maxPeriodicPayment", "no term keeps the repayment within the maximum")
	}

	scoreOptions(options, in)

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	return domain.TermRecommendationResult{
		RecommendedTermYears: options[0].TermYears,
		Options:              options,
	}, nil
}

// scoreOptions normalises interest, repayment and term length to 0–10 over
// the affordable candidates and weights them by preference.
func scoreOptions(options []domain.TermOption, in domain.TermRecommendationInputs) {
	minInterest, maxInterest := options[0].TotalInterest, options[0].TotalInterest
	minPayment, maxPayment := options[0].PeriodicPayment, options[0].PeriodicPayment
	minTerm, maxTerm := options[0].TermYears, options[0].TermYears
	for _, o := range options[1:] {
		minInterest = min(minInterest, o.TotalInterest)
		maxInterest = max(maxInterest, o.TotalInterest)
		minPayment = min(minPayment, o.PeriodicPayment)
		maxPayment = max(maxPayment, o.PeriodicPayment)
		minTerm = min(minTerm, o.TermYears)
		maxTerm = max(maxTerm, o.TermYears)
	}

	for i := range options {
		o := &options[i]
		interestScore := normalise(o.TotalInterest, minInterest, maxInterest)
		paymentScore := normalise(o.PeriodicPayment, minPayment, maxPayment)
		termScore := normalise(float64(o.TermYears), float64(minTerm), float64(maxTerm))

		var score float64
		switch in.Preference {
		case domain.MinimizeInterest:
			score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
			o.Reason = "Term chosen to minimise the total interest paid"
		case domain.MinimizePayment:
			score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
			o.Reason = "Term chosen to minimise each repayment"
		default:
			score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
			o.Reason = "Balance between repayment size and total interest"
		}
		o.Score = roundCents(score)
	}
}

// normalise maps v in [lo, hi] to 10 (at lo) .. 0 (at hi).
func normalise(v, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - (v-lo)/(hi-lo))
}
