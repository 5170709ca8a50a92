// Package cmd provides CLI commands for loancalc.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/loan-engine/factory"
	"github.com/warp/loan-engine/loan"
)

var defFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "loancalc",
	Short: "Compute loan amortization schedules",
	Long: `loancalc computes amortization schedules for annuity, linear and
interest-only loans from a JSON definition file.

It supports:
- Annuity, linear and interest-only repayment
- Monthly, quarterly, semiannual and annual payment frequencies
- One-off and recurring special payments (reduce term or installment)
- Day-count conventions: 30E/360 ISDA, 30E/360, ACT/360, ACT/365F, ACT/ACT ISDA

Example:
  loancalc schedule -f loan.json
  loancalc summary -f loan.json
  cat loan.json | loancalc schedule -f -`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&defFile, "file", "f", "", "loan definition JSON file (\"-\" for stdin)")

	// Add subcommands
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(summaryCmd)
}

// loadDefinition reads the loan definition from the -f flag, or stdin for "-".
func loadDefinition() (string, error) {
	switch defFile {
	case "":
		return "", fmt.Errorf("no definition given, use -f loan.json")
	case "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	default:
		b, err := os.ReadFile(defFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", defFile, err)
		}
		return string(b), nil
	}
}

// computeSchedule parses the definition and runs the generator.
func computeSchedule() (loan.LoanConfiguration, []loan.Payment, error) {
	jsonStr, err := loadDefinition()
	if err != nil {
		return loan.LoanConfiguration{}, nil, err
	}

	cfg, registry, err := factory.NewLoanFactory().ParseLoan(jsonStr)
	if err != nil {
		return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid loan definition: %w", err)
	}

	var gen loan.ScheduleGenerator
	payments, err := gen.Generate(cfg, registry)
	if err != nil {
		return loan.LoanConfiguration{}, nil, err
	}

	return cfg, payments, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
