package domain

type AffordabilityInputs struct {
	AnnualIncome        float64 `json:"annualIncome"`
	OtherIncome         float64 `json:"otherIncome"`
	LivingExpenses      float64 `json:"livingExpenses"`
	OtherLoanRepayments float64 `json:"otherLoanRepayments"`
}

type AffordabilityResult struct {
	TotalIncome          float64 `json:"totalIncome"`
	TotalExpenses        float64 `json:"totalExpenses"`
	DisposableIncome     float64 `json:"disposableIncome"`
	MaxBorrowingCapacity float64 `json:"maxBorrowingCapacity"`
	MaxPurchasePrice     float64 `json:"maxPurchasePrice"`
	RequiredDeposit      float64 `json:"requiredDeposit"`
}
