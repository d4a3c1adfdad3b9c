package finance

import "haus-finance/domain"

// Affordability estimates borrowing power as a fixed multiple of disposable
// income. It is a rule of thumb, not a lender serviceability model.
// Negative disposable income is reported as-is but borrows nothing.
func Affordability(in domain.AffordabilityInputs, a Assumptions) (domain.AffordabilityResult, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"annualIncome", in.AnnualIncome},
		{"otherIncome", in.OtherIncome},
		{"livingExpenses", in.LivingExpenses},
		{"otherLoanRepayments", in.OtherLoanRepayments},
	}
	for _, f := range fields {
		if err := requireNonNegative(f.name, f.value); err != nil {
			return domain.AffordabilityResult{}, err
		}
	}

	income := in.AnnualIncome + in.OtherIncome
	expenses := in.LivingExpenses + in.OtherLoanRepayments
	disposable := income - expenses

	capacity := disposable * a.IncomeMultiple
	if capacity < 0 {
		capacity = 0
	}
	// At 80% LVR the loan funds four fifths of the price: ×1.25.
	price := capacity * (100 / a.MaxLVRPercent)

	return domain.AffordabilityResult{
		TotalIncome:          roundCents(income),
		TotalExpenses:        roundCents(expenses),
		DisposableIncome:     roundCents(disposable),
		MaxBorrowingCapacity: roundCents(capacity),
		MaxPurchasePrice:     roundCents(price),
		RequiredDeposit:      roundCents(price - capacity),
	}, nil
}
