package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"haus-finance/domain"
)

// withBackends runs fn against a calculator wired from the configuration.
func withBackends(cmd *cobra.Command, fn func(b *backends) error) error {
	b, err := newBackends(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

var stampDutyIn domain.StampDutyInputs

var stampDutyCmd = &cobra.Command{
	Use:   "stamp-duty",
	Short: "NSW transfer duty payable on a purchase",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.StampDuty(cmd.Context(), stampDutyIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return renderTable(cmd.OutOrStdout(), "Stamp duty", []row{
				line("Property price", wholeDollars(r.PropertyPrice)),
				highlight("Stamp duty", currency(r.StampDuty)),
			})
		})
	},
}

var mortgageIn domain.MortgageInputs
var mortgageFrequency string

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Mortgage repayments, interest and upfront costs",
	RunE: func(cmd *cobra.Command, args []string) error {
		mortgageIn.RepaymentFrequency = domain.RepaymentFrequency(mortgageFrequency)
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.Mortgage(cmd.Context(), mortgageIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			rows := []row{
				line("Deposit", currency(r.DepositAmount)),
				line("Loan amount", currency(r.LoanAmount)),
				line("LVR", percent(r.LVRPercent)),
				highlight(fmt.Sprintf("Repayment (%s)", r.Frequency), currency(r.PeriodicPayment)),
				line("Annual repayments", currency(r.AnnualPayment)),
				line("Total interest", currency(r.TotalInterest)),
				line("Total repayment", currency(r.TotalRepayment)),
				line("Stamp duty", currency(r.StampDuty)),
				line("Upfront costs", currency(r.UpfrontCosts)),
			}
			if r.LMIRequired {
				rows = append(rows, warning("LMI", "likely required (deposit under 20%)"))
			}
			return renderTable(cmd.OutOrStdout(), "Mortgage repayments", rows)
		})
	},
}

var rentalYieldIn domain.RentalYieldInputs

var rentalYieldCmd = &cobra.Command{
	Use:   "rental-yield",
	Short: "Gross and net rental yield with break-even rent",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.RentalYield(cmd.Context(), rentalYieldIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return renderTable(cmd.OutOrStdout(), "Rental yield", []row{
				line("Annual rent", currency(r.AnnualRent)),
				line("Management", currency(r.ManagementCost)),
				line("Vacancy", currency(r.VacancyCost)),
				line("Total costs", currency(r.TotalAnnualCosts)),
				line("Net annual income", currency(r.NetAnnualIncome)),
				highlight("Gross yield", percent(r.GrossYieldPercent)),
				highlight("Net yield", percent(r.NetYieldPercent)),
				line("Break-even rent", currency(r.BreakEvenWeeklyRent)+"/wk"),
				line("Weekly cashflow", currency(r.WeeklyCashflow)),
			})
		})
	},
}

var (
	projectionIn       domain.ProjectionInputs
	projectionScenario string
	projectionDeposit  float64
	projectionRate     float64
)

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Year by year property value, loan balance and equity",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectionIn.Scenario = domain.Scenario(projectionScenario)
		if cmd.Flags().Changed("deposit") {
			projectionIn.DepositPercent = &projectionDeposit
		}
		if cmd.Flags().Changed("rate") {
			projectionIn.AnnualInterestRatePercent = &projectionRate
		}
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.Projection(cmd.Context(), projectionIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			rows := make([][]string, 0, len(r.Rows))
			for _, p := range r.Rows {
				rows = append(rows, []string{
					strconv.Itoa(p.Year),
					wholeDollars(p.PropertyValue),
					wholeDollars(p.LoanBalance),
					wholeDollars(p.Equity),
					wholeDollars(p.RentalIncome),
				})
			}
			title := fmt.Sprintf("%s projection (%s growth)", r.Scenario, percent(r.GrowthRatePercent))
			if err := renderColumns(cmd.OutOrStdout(), title,
				[]string{"Year", "Value", "Loan", "Equity", "Rent"}, rows); err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), "Summary", []row{
				line("Initial loan", wholeDollars(r.InitialLoan)),
				line("Capital growth", wholeDollars(r.CapitalGrowth)),
				line("Rental income", wholeDollars(r.CumulativeRentalIncome)),
				highlight("Final equity", wholeDollars(r.FinalEquity)),
			})
		})
	},
}

var affordabilityIn domain.AffordabilityInputs

var affordabilityCmd = &cobra.Command{
	Use:   "affordability",
	Short: "Borrowing power and maximum purchase price",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.Affordability(cmd.Context(), affordabilityIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return renderTable(cmd.OutOrStdout(), "Affordability", []row{
				line("Total income", currency(r.TotalIncome)),
				line("Total expenses", currency(r.TotalExpenses)),
				line("Disposable income", currency(r.DisposableIncome)),
				highlight("Borrowing capacity", wholeDollars(r.MaxBorrowingCapacity)),
				highlight("Max purchase price", wholeDollars(r.MaxPurchasePrice)),
				line("Deposit needed", wholeDollars(r.RequiredDeposit)),
			})
		})
	},
}

var (
	termIn         domain.TermRecommendationInputs
	termFrequency  string
	termPreference string
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Recommend a loan term under a repayment ceiling",
	RunE: func(cmd *cobra.Command, args []string) error {
		termIn.RepaymentFrequency = domain.RepaymentFrequency(termFrequency)
		termIn.Preference = domain.TermPreference(termPreference)
		return withBackends(cmd, func(b *backends) error {
			r, err := b.calc.RecommendTerm(cmd.Context(), termIn)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), r)
			}
			rows := make([][]string, 0, len(r.Options))
			for _, o := range r.Options {
				rows = append(rows, []string{
					strconv.Itoa(o.TermYears),
					currency(o.PeriodicPayment),
					wholeDollars(o.TotalInterest),
					fmt.Sprintf("%.2f", o.Score),
				})
			}
			title := fmt.Sprintf("Recommended term: %d years", r.RecommendedTermYears)
			return renderColumns(cmd.OutOrStdout(), title, []string{"Years", "Repayment", "Interest", "Score"}, rows)
		})
	},
}

func init() {
	f := stampDutyCmd.Flags()
	f.Float64Var(&stampDutyIn.PropertyPrice, "price", 0, "property price")

	f = mortgageCmd.Flags()
	f.Float64Var(&mortgageIn.PropertyPrice, "price", 0, "property price")
	f.Float64Var(&mortgageIn.DepositPercent, "deposit", 20, "deposit as a percentage of the price")
	f.Float64Var(&mortgageIn.AnnualInterestRatePercent, "rate", 6.5, "annual interest rate (%)")
	f.IntVar(&mortgageIn.LoanTermYears, "term", 30, "loan term in years")
	f.StringVar(&mortgageFrequency, "frequency", string(domain.Monthly), "repayment frequency: monthly, fortnightly or weekly")
	f.BoolVar(&mortgageIn.Reamortize, "reamortize", false, "compute non-monthly repayments at their own periodic rate")

	f = rentalYieldCmd.Flags()
	f.Float64Var(&rentalYieldIn.PropertyPrice, "price", 0, "property price")
	f.Float64Var(&rentalYieldIn.WeeklyRent, "rent", 0, "weekly rent")
	f.Float64Var(&rentalYieldIn.ManagementFeePercent, "management", 7, "management fee (% of rent)")
	f.Float64Var(&rentalYieldIn.VacancyRatePercent, "vacancy", 2, "vacancy rate (% of rent)")
	f.Float64Var(&rentalYieldIn.AnnualExpenses, "expenses", 0, "other annual expenses")

	f = projectionCmd.Flags()
	f.Float64Var(&projectionIn.PropertyPrice, "price", 0, "property price")
	f.StringVar(&projectionScenario, "scenario", string(domain.Moderate), "growth scenario: conservative, moderate or optimistic")
	f.IntVar(&projectionIn.Years, "years", 10, "years to project")
	f.Float64Var(&projectionDeposit, "deposit", 20, "deposit as a percentage of the price")
	f.Float64Var(&projectionRate, "rate", 6.5, "annual interest rate (%)")
	f.IntVar(&projectionIn.LoanTermYears, "term", 0, "loan term in years (default from assumptions)")

	f = affordabilityCmd.Flags()
	f.Float64Var(&affordabilityIn.AnnualIncome, "income", 0, "annual income")
	f.Float64Var(&affordabilityIn.OtherIncome, "other-income", 0, "other annual income")
	f.Float64Var(&affordabilityIn.LivingExpenses, "expenses", 0, "annual living expenses")
	f.Float64Var(&affordabilityIn.OtherLoanRepayments, "loans", 0, "annual repayments on other loans")

	f = termCmd.Flags()
	f.Float64Var(&termIn.PropertyPrice, "price", 0, "property price")
	f.Float64Var(&termIn.DepositPercent, "deposit", 20, "deposit as a percentage of the price")
	f.Float64Var(&termIn.AnnualInterestRatePercent, "rate", 6.5, "annual interest rate (%)")
	f.IntVar(&termIn.MinTermYears, "min-term", 10, "shortest term to consider (years)")
	f.IntVar(&termIn.MaxTermYears, "max-term", 30, "longest term to consider (years)")
	f.Float64Var(&termIn.MaxPeriodicPayment, "max-repayment", 0, "highest acceptable repayment per period")
	f.StringVar(&termFrequency, "frequency", string(domain.Monthly), "repayment frequency: monthly, fortnightly or weekly")
	f.StringVar(&termPreference, "preference", string(domain.Balanced), "minimize_interest, minimize_payment or balanced")

	for _, c := range []*cobra.Command{stampDutyCmd, mortgageCmd, rentalYieldCmd, projectionCmd, termCmd} {
		_ = c.MarkFlagRequired("price")
	}
	_ = rentalYieldCmd.MarkFlagRequired("rent")
	_ = affordabilityCmd.MarkFlagRequired("income")
	_ = termCmd.MarkFlagRequired("max-repayment")
}
