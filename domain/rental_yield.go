package domain

type RentalYieldInputs struct {
	PropertyPrice        float64 `json:"propertyPrice"`
	WeeklyRent           float64 `json:"weeklyRent"`
	ManagementFeePercent float64 `json:"managementFeePercent"`
	VacancyRatePercent   float64 `json:"vacancyRatePercent"`
	AnnualExpenses       float64 `json:"annualExpenses"`
}

type RentalYieldResult struct {
	AnnualRent          float64 `json:"annualRent"`
	ManagementCost      float64 `json:"managementCost"`
	VacancyCost         float64 `json:"vacancyCost"`
	TotalAnnualCosts    float64 `json:"totalAnnualCosts"`
	NetAnnualIncome     float64 `json:"netAnnualIncome"`
	GrossYieldPercent   float64 `json:"grossYieldPercent"`
	NetYieldPercent     float64 `json:"netYieldPercent"`
	BreakEvenWeeklyRent float64 `json:"breakEvenWeeklyRent"`
	WeeklyCashflow      float64 `json:"weeklyCashflow"`
}
