package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/loan-engine/loan"
)

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print loan totals and the effective rate",
	Long: `Print the cost summary for a loan definition.

Shows:
- Loan amount, total paid, total interest
- Principal repaid through installments and special payments
- Residual balance, payoff date and periods run
- Effective annual rate of the actual payment stream

Example:
  loancalc summary -f loan.json`,
	Run: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) {
	cfg, payments, err := computeSchedule()
	exitOnError(err, "failed to compute schedule")

	s, err := loan.Summarize(payments)
	exitOnError(err, "failed to summarize schedule")

	rateLine := "(n/a)"
	if rate, err := loan.InternalRateOfReturn(cfg, payments); err == nil {
		rateLine = fmt.Sprintf("%.2f%%", rate)
	}

	fmt.Println("\n=== Loan Summary ===")
	fmt.Printf("Loan amount:            %s\n", s.LoanAmount)
	fmt.Printf("Total paid:             %s\n", s.TotalPayment)
	fmt.Printf("Total interest:         %s\n", s.TotalInterest)
	fmt.Printf("Scheduled principal:    %s\n", s.TotalPrincipal)
	fmt.Printf("Special payments:       %s\n", s.TotalSpecial)
	fmt.Printf("Residual balance:       %s\n", s.ResidualBalance)
	fmt.Printf("Periods run:            %d\n", s.PeriodsRun)
	fmt.Printf("Payoff date:            %s\n", s.PayoffDate)
	fmt.Printf("Paid per unit borrowed: %s\n", s.RepaymentToPrincipal.StringFixed(2))
	fmt.Printf("Effective annual rate:  %s\n", rateLine)
	fmt.Println()
}
