package loan

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// LOAN SUMMARY - Aggregates over a generated schedule
// =============================================================================

// LoanSummary folds a payment sequence into its lifetime totals.
type LoanSummary struct {
	// LoanAmount is the principal the schedule repays: every principal
	// component plus whatever balance remains after the last row.
	LoanAmount Money

	TotalPayment  Money
	TotalInterest Money

	// TotalPrincipal covers the scheduled installment components only;
	// TotalSpecial covers the ad-hoc special payments.
	TotalPrincipal Money
	TotalSpecial   Money

	// ResidualBalance is the balance after the final row, zero for any
	// schedule that ran to payoff.
	ResidualBalance Money

	// RepaymentToPrincipal is TotalPayment divided by all principal repaid,
	// rounded to two decimals. It reads as "cents paid per cent borrowed".
	RepaymentToPrincipal decimal.Decimal

	PeriodsRun int
	PayoffDate Date
}

// Summarize reduces a schedule to its LoanSummary. The sequence must be
// non-empty and in generation order.
func Summarize(payments []Payment) (*LoanSummary, error) {
	if len(payments) == 0 {
		return nil, ErrEmptySchedule
	}

	s := &LoanSummary{
		TotalPayment:   ZeroMoney(),
		TotalInterest:  ZeroMoney(),
		TotalPrincipal: ZeroMoney(),
		TotalSpecial:   ZeroMoney(),
	}
	for _, p := range payments {
		s.TotalPayment = s.TotalPayment.Add(p.TotalPayment)
		s.TotalInterest = s.TotalInterest.Add(p.Interest)
		s.TotalPrincipal = s.TotalPrincipal.Add(p.Principal)
		s.TotalSpecial = s.TotalSpecial.Add(p.SpecialPrincipal)
	}

	last := payments[len(payments)-1]
	s.ResidualBalance = last.Balance
	s.PeriodsRun = len(payments)
	s.PayoffDate = last.End
	s.LoanAmount = s.TotalPrincipal.Add(s.TotalSpecial).Add(s.ResidualBalance)

	repaid := s.TotalPrincipal.Add(s.TotalSpecial)
	if repaid.IsPositive() {
		s.RepaymentToPrincipal = s.TotalPayment.Value.Div(repaid.Value).Round(2)
	} else {
		s.RepaymentToPrincipal = decimal.Zero
	}

	return s, nil
}
