package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// scheduleCmd represents the schedule command.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the full amortization table",
	Long: `Print the amortization table for a loan definition, one row per
payment period.

Columns:
- Payment date, interest, scheduled principal, extra principal
- Total payment for the period and the balance carried forward

Example:
  loancalc schedule -f loan.json`,
	Run: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) {
	_, payments, err := computeSchedule()
	exitOnError(err, "failed to compute schedule")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tDate\tInterest\tPrincipal\tExtra\tPayment\tBalance\t")
	for _, p := range payments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.Period, p.End, p.Interest, p.Principal, p.SpecialPrincipal, p.TotalPayment, p.Balance)
	}
	w.Flush()
}
