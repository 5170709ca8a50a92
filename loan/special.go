package loan

import (
	"sort"
)

// =============================================================================
// SPECIAL PAYMENT - Ad-hoc extra principal payment
// =============================================================================

type SpecialPayment struct {
	Amount Money
	Date   Date
	Policy SpecialPaymentPolicy
}

// RecurringSpecialPayment describes a series of equal extra payments, e.g.
// "5000 every December for 10 years". It expands into individual
// SpecialPayments at registry population time.
type RecurringSpecialPayment struct {
	Amount           Money
	FirstPaymentDate Date
	TermLength       int
	TermUnit         TermUnit
	Frequency        PaymentFrequency
	Policy           SpecialPaymentPolicy
}

// =============================================================================
// REGISTRY - Date-ordered, append-only collection
// =============================================================================

// SpecialPaymentRegistry holds the extra payments for one schedule
// computation, ordered by date ascending with insertion order breaking
// ties. Append-only: populated before generation, read-only during it.
type SpecialPaymentRegistry struct {
	lifetime Period
	payments []SpecialPayment
}

// NewSpecialPaymentRegistry builds a registry scoped to the configuration's
// lifetime: payments must land after disbursement and no later than the
// final regular payment date.
func NewSpecialPaymentRegistry(c LoanConfiguration) *SpecialPaymentRegistry {
	return &SpecialPaymentRegistry{lifetime: Lifetime(c)}
}

// Add validates and inserts a payment, preserving date order with a stable
// tie-break by insertion sequence.
func (r *SpecialPaymentRegistry) Add(p SpecialPayment) error {
	if !p.Amount.IsPositive() {
		return &InvalidSpecialPaymentError{Amount: p.Amount, Date: p.Date, Reason: "amount must be positive"}
	}
	if !r.lifetime.Contains(p.Date) {
		return &InvalidSpecialPaymentError{Amount: p.Amount, Date: p.Date,
			Reason: "date outside loan lifetime " + r.lifetime.String()}
	}
	if !p.Policy.Valid() {
		return &InvalidSpecialPaymentError{Amount: p.Amount, Date: p.Date,
			Reason: "unknown policy " + string(p.Policy)}
	}

	// First index whose date is strictly later; inserting there keeps equal
	// dates in insertion order.
	i := sort.Search(len(r.payments), func(i int) bool {
		return r.payments[i].Date.After(p.Date)
	})
	r.payments = append(r.payments, SpecialPayment{})
	copy(r.payments[i+1:], r.payments[i:])
	r.payments[i] = p
	return nil
}

// AddRecurring expands a recurring series into individual payments. The
// first occurrence must fall within the loan lifetime; occurrences past
// maturity are skipped rather than rejected.
func (r *SpecialPaymentRegistry) AddRecurring(rec RecurringSpecialPayment) error {
	if !rec.Amount.IsPositive() {
		return &InvalidSpecialPaymentError{Amount: rec.Amount, Date: rec.FirstPaymentDate,
			Reason: "amount must be positive"}
	}
	if !r.lifetime.Contains(rec.FirstPaymentDate) {
		return &InvalidSpecialPaymentError{Amount: rec.Amount, Date: rec.FirstPaymentDate,
			Reason: "first payment date outside loan lifetime " + r.lifetime.String()}
	}

	step := rec.Frequency.MonthStep()
	if step == 0 {
		return &InvalidSpecialPaymentError{Amount: rec.Amount, Date: rec.FirstPaymentDate,
			Reason: "unknown frequency " + string(rec.Frequency)}
	}
	months := rec.TermLength
	if rec.TermUnit == TermYears {
		months = rec.TermLength * 12
	}
	occurrences := months / step
	if occurrences < 1 {
		return &InvalidSpecialPaymentError{Amount: rec.Amount, Date: rec.FirstPaymentDate,
			Reason: "term yields no occurrences"}
	}

	for i := 0; i < occurrences; i++ {
		date := rec.FirstPaymentDate.AddMonths(i * step)
		if date.After(r.lifetime.End) {
			break
		}
		if err := r.Add(SpecialPayment{Amount: rec.Amount, Date: date, Policy: rec.Policy}); err != nil {
			return err
		}
	}
	return nil
}

// PaymentsOn returns all payments dated exactly on the given date, in
// insertion order. Empty slice if none.
func (r *SpecialPaymentRegistry) PaymentsOn(date Date) []SpecialPayment {
	var out []SpecialPayment
	for _, p := range r.payments {
		if p.Date.Equal(date) {
			out = append(out, p)
		}
	}
	return out
}

// PaymentsInRange returns payments with after < date <= through, ordered by
// date then insertion sequence. The generator uses this to fold payments
// dated inside a period into that period's row.
func (r *SpecialPaymentRegistry) PaymentsInRange(after, through Date) []SpecialPayment {
	var out []SpecialPayment
	for _, p := range r.payments {
		if p.Date.After(after) && p.Date.BeforeOrEqual(through) {
			out = append(out, p)
		}
	}
	return out
}

// All returns a copy of every registered payment in order.
func (r *SpecialPaymentRegistry) All() []SpecialPayment {
	out := make([]SpecialPayment, len(r.payments))
	copy(out, r.payments)
	return out
}

// Len returns the number of registered payments.
func (r *SpecialPaymentRegistry) Len() int { return len(r.payments) }
