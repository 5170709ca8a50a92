/*
config.go - Loan configuration and its closed tag sets

PURPOSE:
  Defines the immutable description of a loan that the schedule generator
  consumes: principal, rate, term, payment frequency, repayment type, and
  day-count convention. Each enumerated aspect is a closed tag set handled
  with exhaustive switches; adding a variant means the compiler walks you
  to every decision point.

KEY CONCEPTS:
  - LoanType: how each installment splits into interest and principal
  - PaymentFrequency: how many payments per year (and the month step)
  - TermUnit: a term stated in years or months
  - SpecialPaymentPolicy: what an extra payment does to the rest of the
    schedule (shorten the term vs. lower the installment)

VALIDATION:
  LoanConfiguration.Validate is the contract for collaborators (factory,
  api) that construct configurations. The generator itself assumes a
  validated configuration and only raises the deterministic computation
  errors from errors.go.

SEE ALSO:
  - schedule.go: Consumes the configuration
  - timeline.go: Derives payment dates from it
  - factory/: Builds configurations from JSON definitions
*/
package loan

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LOAN TYPE - Repayment convention
// =============================================================================

type LoanType string

const (
	// LoanAnnuity keeps the total installment constant; the interest share
	// shrinks and the principal share grows over the term.
	LoanAnnuity LoanType = "annuity"

	// LoanLinear keeps the principal component constant; the total
	// installment declines as interest falls.
	LoanLinear LoanType = "linear"

	// LoanInterestOnly pays only interest until the final period, which
	// carries the entire balance as a balloon payment.
	LoanInterestOnly LoanType = "interest_only"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanAnnuity, LoanLinear, LoanInterestOnly:
		return true
	default:
		return false
	}
}

// =============================================================================
// PAYMENT FREQUENCY
// =============================================================================

type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiannual PaymentFrequency = "semiannual"
	FrequencyAnnual     PaymentFrequency = "annual"
)

func (f PaymentFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual:
		return true
	default:
		return false
	}
}

// PaymentsPerYear returns 12, 4, 2 or 1.
func (f PaymentFrequency) PaymentsPerYear() int {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencySemiannual:
		return 2
	case FrequencyAnnual:
		return 1
	default:
		return 0
	}
}

// MonthStep returns the number of months between consecutive payments.
func (f PaymentFrequency) MonthStep() int {
	per := f.PaymentsPerYear()
	if per == 0 {
		return 0
	}
	return 12 / per
}

// =============================================================================
// TERM
// =============================================================================

type TermUnit string

const (
	TermYears  TermUnit = "years"
	TermMonths TermUnit = "months"
)

func (u TermUnit) Valid() bool {
	return u == TermYears || u == TermMonths
}

// =============================================================================
// SPECIAL PAYMENT POLICY
// =============================================================================

type SpecialPaymentPolicy string

const (
	// ReduceTerm keeps the installment unchanged; the balance draws down
	// faster and the loan pays off early.
	ReduceTerm SpecialPaymentPolicy = "reduce_term"

	// ReduceInstallment re-amortizes the remaining balance over the
	// remaining periods, lowering every future installment.
	ReduceInstallment SpecialPaymentPolicy = "reduce_installment"
)

func (p SpecialPaymentPolicy) Valid() bool {
	return p == ReduceTerm || p == ReduceInstallment
}

// =============================================================================
// LOAN CONFIGURATION
// =============================================================================

// LoanConfiguration fully describes a loan. Immutable once constructed;
// each schedule generation owns the configuration it was invoked with.
type LoanConfiguration struct {
	Principal  Money
	AnnualRate decimal.Decimal // nominal annual rate in percent, e.g. 6 for 6%
	StartDate  Date

	TermLength int
	TermUnit   TermUnit
	Frequency  PaymentFrequency

	Type       LoanType
	Convention Convention

	// FirstPaymentDate overrides the derived first payment date, creating a
	// stub first period. Zero value means derived.
	FirstPaymentDate Date

	// PaymentAtMonthEnd snaps every payment date to the end of its month.
	PaymentAtMonthEnd bool

	// InterestOnlyPeriods makes the first N regular payments interest-only;
	// the loan then amortizes over the remaining periods.
	InterestOnlyPeriods int

	// PaymentOverride replaces the computed regular payment: the total
	// installment for annuity loans, the principal component for linear
	// loans. Ignored for interest-only loans. Nil means computed.
	PaymentOverride *Money
}

// termInMonths returns the term normalized to months.
func (c LoanConfiguration) termInMonths() int {
	if c.TermUnit == TermMonths {
		return c.TermLength
	}
	return c.TermLength * 12
}

// PeriodCount returns the configured number of payments. A term that does
// not divide evenly by the payment step truncates.
func (c LoanConfiguration) PeriodCount() int {
	step := c.Frequency.MonthStep()
	if step == 0 {
		return 0
	}
	return c.termInMonths() / step
}

// AmortizingPeriods returns the number of payments that carry principal.
func (c LoanConfiguration) AmortizingPeriods() int {
	return c.PeriodCount() - c.InterestOnlyPeriods
}

// PeriodicRate returns the per-period interest rate as a fraction:
// annual rate / 100 / payments per year.
func (c LoanConfiguration) PeriodicRate() decimal.Decimal {
	per := c.Frequency.PaymentsPerYear()
	if per == 0 {
		return decimal.Zero
	}
	return c.AnnualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(per)))
}

// annualRateFraction returns the annual rate as a fraction, e.g. 0.06.
func (c LoanConfiguration) annualRateFraction() decimal.Decimal {
	return c.AnnualRate.Div(decimal.NewFromInt(100))
}

// Validate checks the configuration the way the input boundary is expected
// to before handing it to the generator.
func (c LoanConfiguration) Validate() error {
	if !c.Principal.IsPositive() {
		return fmt.Errorf("principal must be positive, got %s", c.Principal)
	}
	if c.AnnualRate.IsNegative() {
		return fmt.Errorf("annual rate must not be negative, got %s", c.AnnualRate)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if c.TermLength <= 0 {
		return fmt.Errorf("term length must be positive, got %d", c.TermLength)
	}
	if !c.TermUnit.Valid() {
		return fmt.Errorf("unknown term unit %q", c.TermUnit)
	}
	if !c.Frequency.Valid() {
		return fmt.Errorf("unknown payment frequency %q", c.Frequency)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown loan type %q", c.Type)
	}
	if !c.Convention.Valid() {
		return fmt.Errorf("unknown day-count convention %q", c.Convention)
	}
	if c.PeriodCount() < 1 {
		return fmt.Errorf("term of %d %s yields no %s payments", c.TermLength, c.TermUnit, c.Frequency)
	}
	if !c.FirstPaymentDate.IsZero() && !c.FirstPaymentDate.After(c.StartDate) {
		return fmt.Errorf("first payment date %s must be after start date %s", c.FirstPaymentDate, c.StartDate)
	}
	if c.InterestOnlyPeriods < 0 || c.InterestOnlyPeriods > c.PeriodCount() {
		return fmt.Errorf("interest-only periods %d outside 0..%d", c.InterestOnlyPeriods, c.PeriodCount())
	}
	if c.PaymentOverride != nil && !c.PaymentOverride.IsPositive() {
		return fmt.Errorf("payment override must be positive, got %s", *c.PaymentOverride)
	}
	return nil
}
