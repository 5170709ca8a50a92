package loan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/loan-engine/loan"
)

func TestRegistry_Add_KeepsDateOrder(t *testing.T) {
	// GIVEN: Payments added out of date order
	// WHEN: Reading the registry back
	// THEN: They come out ordered by date

	r := loan.NewSpecialPaymentRegistry(annuity120k())

	for _, d := range []loan.Date{
		day(2026, time.July, 15),
		day(2026, time.March, 15),
		day(2026, time.May, 15),
	} {
		if err := r.Add(loan.SpecialPayment{Amount: amount("1000"), Date: d, Policy: loan.ReduceTerm}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(all))
	}
	if !all[0].Date.Equal(day(2026, time.March, 15)) ||
		!all[1].Date.Equal(day(2026, time.May, 15)) ||
		!all[2].Date.Equal(day(2026, time.July, 15)) {
		t.Errorf("expected March, May, July order, got %s, %s, %s", all[0].Date, all[1].Date, all[2].Date)
	}
}

func TestRegistry_SameDate_KeepsInsertionOrder(t *testing.T) {
	// GIVEN: Two payments on the same date with different policies
	// WHEN: Reading them back
	// THEN: Insertion order is preserved, so processing is deterministic

	r := loan.NewSpecialPaymentRegistry(annuity120k())
	d := day(2026, time.July, 15)

	first := loan.SpecialPayment{Amount: amount("1000"), Date: d, Policy: loan.ReduceTerm}
	second := loan.SpecialPayment{Amount: amount("2000"), Date: d, Policy: loan.ReduceInstallment}
	if err := r.Add(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Add(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	on := r.PaymentsOn(d)
	if len(on) != 2 {
		t.Fatalf("expected 2 payments on %s, got %d", d, len(on))
	}
	if !on[0].Amount.Equal(first.Amount) || !on[1].Amount.Equal(second.Amount) {
		t.Errorf("expected insertion order preserved, got %s then %s", on[0].Amount, on[1].Amount)
	}
}

func TestRegistry_Add_RejectsNonPositiveAmounts(t *testing.T) {
	r := loan.NewSpecialPaymentRegistry(annuity120k())
	d := day(2026, time.July, 15)

	for _, bad := range []loan.Money{loan.ZeroMoney(), amount("-100")} {
		err := r.Add(loan.SpecialPayment{Amount: bad, Date: d, Policy: loan.ReduceTerm})
		if !errors.Is(err, loan.ErrInvalidSpecialPayment) {
			t.Errorf("amount %s: expected ErrInvalidSpecialPayment, got: %v", bad, err)
		}
	}
	if r.Len() != 0 {
		t.Errorf("expected rejected payments not to be stored, got %d", r.Len())
	}
}

func TestRegistry_Add_EnforcesLoanLifetime(t *testing.T) {
	// GIVEN: The reference loan living over (2026-01-15, 2027-01-15]
	// WHEN: Adding payments on and around the boundaries
	// THEN: The disbursement date and anything past maturity are rejected;
	//       the maturity date itself is accepted

	r := loan.NewSpecialPaymentRegistry(annuity120k())
	pay := func(d loan.Date) error {
		return r.Add(loan.SpecialPayment{Amount: amount("1000"), Date: d, Policy: loan.ReduceTerm})
	}

	if err := pay(day(2026, time.January, 15)); !errors.Is(err, loan.ErrInvalidSpecialPayment) {
		t.Errorf("disbursement date: expected rejection, got: %v", err)
	}
	if err := pay(day(2027, time.February, 15)); !errors.Is(err, loan.ErrInvalidSpecialPayment) {
		t.Errorf("past maturity: expected rejection, got: %v", err)
	}
	if err := pay(day(2027, time.January, 15)); err != nil {
		t.Errorf("maturity date: expected acceptance, got: %v", err)
	}

	var payErr *loan.InvalidSpecialPaymentError
	if err := pay(day(2020, time.January, 1)); !errors.As(err, &payErr) {
		t.Fatalf("expected *InvalidSpecialPaymentError, got: %T", err)
	}
}

func TestRegistry_Add_RejectsUnknownPolicy(t *testing.T) {
	r := loan.NewSpecialPaymentRegistry(annuity120k())

	err := r.Add(loan.SpecialPayment{
		Amount: amount("1000"),
		Date:   day(2026, time.July, 15),
		Policy: loan.SpecialPaymentPolicy("pay_faster"),
	})
	if !errors.Is(err, loan.ErrInvalidSpecialPayment) {
		t.Errorf("expected ErrInvalidSpecialPayment, got: %v", err)
	}
}

func TestRegistry_PaymentsInRange_StartExclusiveEndInclusive(t *testing.T) {
	// GIVEN: Payments on the boundaries of a period
	// WHEN: Querying the period's range
	// THEN: The payment on the range start is excluded, the one on the
	//       range end included

	r := loan.NewSpecialPaymentRegistry(annuity120k())
	onStart := day(2026, time.June, 15)
	onEnd := day(2026, time.July, 15)

	for _, d := range []loan.Date{onStart, day(2026, time.June, 20), onEnd} {
		if err := r.Add(loan.SpecialPayment{Amount: amount("1000"), Date: d, Policy: loan.ReduceTerm}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := r.PaymentsInRange(onStart, onEnd)
	if len(got) != 2 {
		t.Fatalf("expected 2 payments in range, got %d", len(got))
	}
	if !got[0].Date.Equal(day(2026, time.June, 20)) || !got[1].Date.Equal(onEnd) {
		t.Errorf("expected the mid-period and end payments, got %s and %s", got[0].Date, got[1].Date)
	}
}

func TestRegistry_AddRecurring_ExpandsAndSkipsPastMaturity(t *testing.T) {
	// GIVEN: A monthly 1000 series starting April 2026 and running 24
	//        months, far past the loan's January 2027 maturity
	// WHEN: Adding the series
	// THEN: Only the 10 occurrences inside the lifetime are registered

	r := loan.NewSpecialPaymentRegistry(annuity120k())

	err := r.AddRecurring(loan.RecurringSpecialPayment{
		Amount:           amount("1000"),
		FirstPaymentDate: day(2026, time.April, 15),
		TermLength:       24,
		TermUnit:         loan.TermMonths,
		Frequency:        loan.FrequencyMonthly,
		Policy:           loan.ReduceTerm,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Len() != 10 {
		t.Fatalf("expected 10 occurrences inside the lifetime, got %d", r.Len())
	}
	all := r.All()
	if !all[0].Date.Equal(day(2026, time.April, 15)) {
		t.Errorf("expected the series to open 2026-04-15, got %s", all[0].Date)
	}
	if !all[9].Date.Equal(day(2027, time.January, 15)) {
		t.Errorf("expected the series to stop at maturity, got %s", all[9].Date)
	}
}

func TestRegistry_AddRecurring_QuarterlySeries(t *testing.T) {
	r := loan.NewSpecialPaymentRegistry(annuity120k())

	err := r.AddRecurring(loan.RecurringSpecialPayment{
		Amount:           amount("2500"),
		FirstPaymentDate: day(2026, time.April, 15),
		TermLength:       1,
		TermUnit:         loan.TermYears,
		Frequency:        loan.FrequencyQuarterly,
		Policy:           loan.ReduceInstallment,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Len() != 4 {
		t.Fatalf("expected 4 quarterly occurrences, got %d", r.Len())
	}
}

func TestRegistry_AddRecurring_FirstDateMustBeInsideLifetime(t *testing.T) {
	r := loan.NewSpecialPaymentRegistry(annuity120k())

	err := r.AddRecurring(loan.RecurringSpecialPayment{
		Amount:           amount("1000"),
		FirstPaymentDate: day(2026, time.January, 10),
		TermLength:       12,
		TermUnit:         loan.TermMonths,
		Frequency:        loan.FrequencyMonthly,
		Policy:           loan.ReduceTerm,
	})
	if !errors.Is(err, loan.ErrInvalidSpecialPayment) {
		t.Errorf("expected ErrInvalidSpecialPayment, got: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected nothing registered, got %d", r.Len())
	}
}
