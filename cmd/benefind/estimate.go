package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/observability"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate SNAP eligibility for a household",
	Long:  "Evaluate a household's SNAP eligibility from the command line and print the verdict as formatted output or JSON.",
	RunE:  runEstimate,
}

var (
	estimateState         string
	estimateSize          int
	estimateIncome        float64
	estimateElderly       bool
	estimateMedical       float64
	estimateDependentCare float64
	estimateHousing       float64
	estimateMode          string
	estimateJSON          bool
)

func init() {
	estimateCmd.Flags().StringVar(&estimateState, "state", "", "US state name or 2-letter abbreviation (required)")
	estimateCmd.Flags().IntVar(&estimateSize, "size", 0, "Household size (required)")
	estimateCmd.Flags().Float64Var(&estimateIncome, "income", 0, "Gross monthly income in dollars")
	estimateCmd.Flags().BoolVar(&estimateElderly, "elderly-or-disabled", false, "Household includes an elderly or disabled member")
	estimateCmd.Flags().Float64Var(&estimateMedical, "medical", 0, "Monthly out-of-pocket medical expenses")
	estimateCmd.Flags().Float64Var(&estimateDependentCare, "dependent-care", 0, "Monthly dependent care costs")
	estimateCmd.Flags().Float64Var(&estimateHousing, "housing", 0, "Monthly housing cost")
	estimateCmd.Flags().StringVar(&estimateMode, "mode", "", "Estimation strategy: detailed (default) or quick")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "Print the verdict as JSON")

	_ = estimateCmd.MarkFlagRequired("state")
	_ = estimateCmd.MarkFlagRequired("size")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, _ []string) error {
	est, err := eligibility.ForMode(eligibility.Mode(estimateMode))
	if err != nil {
		return err
	}

	profile := eligibility.HouseholdProfile{
		State:              estimateState,
		HouseholdSize:      estimateSize,
		MonthlyIncome:      estimateIncome,
		ElderlyOrDisabled:  estimateElderly,
		MedicalExpenses:    estimateMedical,
		DependentCareCosts: estimateDependentCare,
		HousingCost:        estimateHousing,
	}

	verdict, err := est.Evaluate(profile)
	if err != nil {
		return err
	}

	if estimateJSON {
		out, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal verdict: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintVerdict(verdict, profile)
	fmt.Println(verdict.Reasoning)
	return nil
}
