package finance

import "haus-finance/domain"

func validateRentalYield(in domain.RentalYieldInputs) error {
	if err := requirePositive("propertyPrice", in.PropertyPrice); err != nil {
		return err
	}
	if in.PropertyPrice > MaxPropertyPrice {
		return invalid("propertyPrice", "exceeds the maximum of %.0f", MaxPropertyPrice)
	}
	if err := requireNonNegative("weeklyRent", in.WeeklyRent); err != nil {
		return err
	}
	if err := requirePercent("managementFeePercent", in.ManagementFeePercent); err != nil {
		return err
	}
	if err := requirePercent("vacancyRatePercent", in.VacancyRatePercent); err != nil {
		return err
	}
	if in.ManagementFeePercent+in.VacancyRatePercent >= 100 {
		return invalid("vacancyRatePercent", "management fee and vacancy rate together must stay below 100%%")
	}
	return requireNonNegative("annualExpenses", in.AnnualExpenses)
}

// RentalYield computes gross and net yield of an investment property.
// BreakEvenWeeklyRent is the weekly rent at which net income is zero once
// management fees, vacancy and the flat annual expenses are paid.
func RentalYield(in domain.RentalYieldInputs) (domain.RentalYieldResult, error) {
	if err := validateRentalYield(in); err != nil {
		return domain.RentalYieldResult{}, err
	}

	annualRent := in.WeeklyRent * weeksPerYear
	management := annualRent * in.ManagementFeePercent / 100
	vacancy := annualRent * in.VacancyRatePercent / 100
	costs := management + vacancy + in.AnnualExpenses
	net := annualRent - costs

	retained := 1 - (in.ManagementFeePercent+in.VacancyRatePercent)/100
	breakEven := in.AnnualExpenses / (weeksPerYear * retained)

	return domain.RentalYieldResult{
		AnnualRent:          roundCents(annualRent),
		ManagementCost:      roundCents(management),
		VacancyCost:         roundCents(vacancy),
		TotalAnnualCosts:    roundCents(costs),
		NetAnnualIncome:     roundCents(net),
		GrossYieldPercent:   roundCents(annualRent / in.PropertyPrice * 100),
		NetYieldPercent:     roundCents(net / in.PropertyPrice * 100),
		BreakEvenWeeklyRent: roundCents(breakEven),
		WeeklyCashflow:      roundCents(net / weeksPerYear),
	}, nil
}
