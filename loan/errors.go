/*
errors.go - Centralized error types for the amortization engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer layers (factory, api, cli) should wrap these errors with
  additional context.

ERROR CATEGORIES:
  1. Date errors - Malformed date ranges handed to the day-count engine
  2. Special payment errors - Rejected registry insertions
  3. Schedule errors - Misconfigured loans detected during generation

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, loan.ErrNegativeAmortization) {
        // rate/term misconfiguration, surface to the user
    }

SEE ALSO:
  - daycount.go: Raises ErrInvalidDateRange
  - special.go: Raises ErrInvalidSpecialPayment
  - schedule.go: Raises ErrNegativeAmortization
  - summary.go: Raises ErrEmptySchedule
*/
package loan

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDateRange is returned when a period's end date is not strictly
	// after its start date.
	ErrInvalidDateRange = errors.New("invalid date range: end not after start")

	// ErrInvalidSpecialPayment is returned when a special payment has a
	// non-positive amount or falls outside the loan lifetime.
	ErrInvalidSpecialPayment = errors.New("invalid special payment")

	// ErrNegativeAmortization is returned when accrued interest exceeds the
	// scheduled installment, which would grow the balance. This indicates a
	// rate/term misconfiguration and is surfaced, never absorbed.
	ErrNegativeAmortization = errors.New("negative amortization")

	// ErrEmptySchedule is returned when summarization is attempted on a
	// schedule with zero payments.
	ErrEmptySchedule = errors.New("empty schedule")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateRangeError reports the offending date pair.
type InvalidDateRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s, end %s", e.Start, e.End)
}

func (e *InvalidDateRangeError) Unwrap() error {
	return ErrInvalidDateRange
}

// InvalidSpecialPaymentError reports why a special payment was rejected.
type InvalidSpecialPaymentError struct {
	Amount Money
	Date   Date
	Reason string
}

func (e *InvalidSpecialPaymentError) Error() string {
	return fmt.Sprintf("invalid special payment of %s on %s: %s", e.Amount, e.Date, e.Reason)
}

func (e *InvalidSpecialPaymentError) Unwrap() error {
	return ErrInvalidSpecialPayment
}

// NegativeAmortizationError reports the period where interest outgrew the
// scheduled installment.
type NegativeAmortizationError struct {
	Period      int
	Interest    Money
	Installment Money
}

func (e *NegativeAmortizationError) Error() string {
	return fmt.Sprintf("negative amortization in period %d: interest %s exceeds installment %s",
		e.Period, e.Interest, e.Installment)
}

func (e *NegativeAmortizationError) Unwrap() error {
	return ErrNegativeAmortization
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is a deterministic input or
// configuration problem. These never succeed on retry.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidSpecialPayment) ||
		errors.Is(err, ErrNegativeAmortization) ||
		errors.Is(err, ErrEmptySchedule)
}
