/*
Package loan computes amortization schedules for loans and mortgages.

PURPOSE:
  Given a loan configuration (principal, rate, term, repayment type,
  day-count convention) and a registry of ad-hoc special payments, the
  schedule generator deterministically produces the ordered sequence of
  periodic payments with correct interest accrual, principal amortization,
  and balance tracking across irregular period lengths and early payoff.

KEY CONCEPTS IN THIS FILE (schedule.go):
  - Payment: One immutable row of the output sequence
  - ScheduleGenerator: The period-by-period amortization driver
  - Installment policy: How annuity, linear, and interest-only loans split
    a payment into interest and principal

DESIGN PRINCIPLES:
  1. Purity: Generate is a pure function of configuration + registry state;
     identical inputs always yield the identical sequence
  2. Precision: decimal.Decimal everywhere, components rounded to cents at
     emission, the rounded balance feeding forward so that the sum of all
     principal components reproduces the original principal exactly
  3. Closed tag sets: loan type and special-payment policy are enumerated
     variants dispatched with exhaustive switches, not subclassing
  4. Fail loudly: negative amortization surfaces as an error, never as a
     silently growing balance

USAGE:
  cfg := loan.LoanConfiguration{...}
  registry := loan.NewSpecialPaymentRegistry(cfg)
  _ = registry.Add(loan.SpecialPayment{...})

  gen := &loan.ScheduleGenerator{}
  payments, err := gen.Generate(cfg, registry)

SEE ALSO:
  - daycount.go: Year fractions for interest accrual
  - special.go: The special-payment registry
  - summary.go: Folds the sequence into totals
*/
package loan

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT - One row of the schedule
// =============================================================================

// Payment is one emitted period. Balance equals the previous balance minus
// Principal minus SpecialPrincipal, floored at zero; all amounts are at
// cent precision.
type Payment struct {
	Period int
	Start  Date
	End    Date

	Interest         Money
	Principal        Money
	SpecialPrincipal Money

	// TotalPrincipal is Principal + SpecialPrincipal; TotalPayment adds
	// Interest on top.
	TotalPrincipal Money
	TotalPayment   Money

	Balance Money
}

// residualSweep is the threshold under which a leftover end balance is
// folded into the period's principal so the payoff row closes on zero.
var residualSweep = decimal.NewFromFloat(0.01)

// =============================================================================
// SCHEDULE GENERATOR - The amortization driver
// =============================================================================

type ScheduleGenerator struct{}

// Generate produces the ordered payment sequence for the configuration.
// The registry may be nil when there are no special payments. Generation
// halts the moment the balance reaches zero; remaining configured periods
// are not emitted.
func (g *ScheduleGenerator) Generate(c LoanConfiguration, registry *SpecialPaymentRegistry) ([]Payment, error) {
	dates := PaymentDates(c)
	n := len(dates)
	if n == 0 {
		return nil, nil
	}

	var (
		balance          = c.Principal.RoundCents()
		rate             = c.annualRateFraction()
		periodicRate     = c.PeriodicRate()
		interestOnlyLeft = c.InterestOnlyPeriods
		currentPayment   = g.regularPayment(c, balance, c.AmortizingPeriods())
	)

	payments := make([]Payment, 0, n)
	periodStart := c.StartDate

	for i, payDate := range dates {
		if !balance.IsPositive() {
			break
		}

		fraction, err := YearFraction(c.Convention, periodStart, payDate)
		if err != nil {
			return nil, err
		}
		interest := balance.Mul(rate).Mul(fraction)

		interestOnly := interestOnlyLeft > 0
		if interestOnly {
			interestOnlyLeft--
		}

		principal, err := g.scheduledPrincipal(c, scheduledPrincipalInput{
			period:       i + 1,
			finalPeriod:  i == n-1,
			interestOnly: interestOnly,
			balance:      balance,
			interest:     interest,
			payment:      currentPayment,
		})
		if err != nil {
			return nil, err
		}

		// Special payments dated inside this period apply on top of the
		// scheduled principal, capped at the remaining balance.
		var (
			special    = ZeroMoney()
			reamortize = false
		)
		if registry != nil {
			remaining := balance.Sub(principal)
			for _, sp := range registry.PaymentsInRange(periodStart, payDate) {
				if !remaining.IsPositive() {
					break
				}
				applied := sp.Amount.Min(remaining)
				special = special.Add(applied)
				remaining = remaining.Sub(applied)
				if sp.Policy == ReduceInstallment {
					reamortize = true
				}
			}
		}

		// Sweep a sub-cent residue into the principal so the payoff row
		// lands on exactly zero.
		endBalance := balance.Sub(principal).Sub(special)
		if endBalance.IsPositive() && endBalance.Value.LessThan(residualSweep) {
			principal = principal.Add(endBalance)
		}

		interestR := interest.RoundCents()
		principalR := principal.RoundCents()
		specialR := special.RoundCents()

		endBalanceR := balance.Sub(principalR).Sub(specialR)
		if endBalanceR.IsNegative() {
			// Rounding each component up can overshoot by a cent; shave it
			// off the scheduled principal to keep the row identity exact.
			principalR = principalR.Add(endBalanceR)
			endBalanceR = ZeroMoney()
		}

		totalPrincipal := principalR.Add(specialR)
		payments = append(payments, Payment{
			Period:           i + 1,
			Start:            periodStart,
			End:              payDate,
			Interest:         interestR,
			Principal:        principalR,
			SpecialPrincipal: specialR,
			TotalPrincipal:   totalPrincipal,
			TotalPayment:     totalPrincipal.Add(interestR),
			Balance:          endBalanceR,
		})

		balance = endBalanceR
		periodStart = payDate

		if reamortize && balance.IsPositive() && c.PaymentOverride == nil {
			remaining := n - (i + 1) - interestOnlyLeft
			if remaining > 0 {
				currentPayment = g.regularPayment(c, balance, remaining)
			}
		}
	}

	return payments, nil
}

// scheduledPrincipalInput carries the per-period state for the installment
// policy dispatch.
type scheduledPrincipalInput struct {
	period       int
	finalPeriod  bool
	interestOnly bool
	balance      Money
	interest     Money
	payment      Money
}

// scheduledPrincipal determines the principal component of the regular
// installment for one period, before special payments.
func (g *ScheduleGenerator) scheduledPrincipal(c LoanConfiguration, in scheduledPrincipalInput) (Money, error) {
	// The final configured period pays off whatever is left, absorbing
	// day-count and rounding drift. An explicit payment override keeps its
	// own schedule instead; any shortfall stays as residual balance.
	if in.finalPeriod && c.PaymentOverride == nil {
		return in.balance, nil
	}

	if in.interestOnly {
		return ZeroMoney(), nil
	}

	var principal Money
	switch c.Type {
	case LoanAnnuity:
		principal = in.payment.Sub(in.interest)
	case LoanLinear:
		principal = in.payment
	case LoanInterestOnly:
		return ZeroMoney(), nil
	}

	if principal.IsNegative() {
		return ZeroMoney(), &NegativeAmortizationError{
			Period:      in.period,
			Interest:    in.interest.RoundCents(),
			Installment: in.payment.RoundCents(),
		}
	}
	return principal.Min(in.balance), nil
}

// regularPayment computes the constant regular payment for the given
// balance over the given number of amortizing periods: the total
// installment for annuity loans, the principal component for linear loans,
// zero for interest-only loans.
func (g *ScheduleGenerator) regularPayment(c LoanConfiguration, balance Money, periods int) Money {
	if c.PaymentOverride != nil {
		return *c.PaymentOverride
	}
	if periods <= 0 {
		return ZeroMoney()
	}

	switch c.Type {
	case LoanAnnuity:
		return annuityInstallment(balance, c.PeriodicRate(), periods)
	case LoanLinear:
		return balance.Div(decimal.NewFromInt(int64(periods)))
	case LoanInterestOnly:
		return ZeroMoney()
	default:
		return ZeroMoney()
	}
}

// annuityInstallment is the standard amortization formula
// B*r*(1+r)^n / ((1+r)^n - 1), with the zero-rate case degrading to
// straight division.
func annuityInstallment(balance Money, periodicRate decimal.Decimal, periods int) Money {
	n := decimal.NewFromInt(int64(periods))
	if periodicRate.IsZero() {
		return balance.Div(n)
	}
	compound := decimal.NewFromInt(1).Add(periodicRate).Pow(n)
	factor := periodicRate.Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))
	return balance.Mul(factor)
}
