package loan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

// approxFraction checks two year fractions to 10 decimal places.
func approxFraction(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(decimal.New(1, -10))
}

func mustFraction(t *testing.T, c loan.Convention, start, end loan.Date) decimal.Decimal {
	t.Helper()
	f, err := loan.YearFraction(c, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestYearFraction_30E360ISDA_SixMonthsIsExactlyHalf(t *testing.T) {
	// GIVEN: January 1 to July 1 of the same year
	// WHEN: Computing the 30E/360 ISDA year fraction
	// THEN: The result is exactly 0.5, independent of actual month lengths

	f := mustFraction(t, loan.Conv30E360ISDA, day(2026, time.January, 1), day(2026, time.July, 1))
	if !f.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("expected exactly 0.5, got %s", f)
	}
}

func TestDayCount_30E360Flavors_DisagreeOnFebruaryEnd(t *testing.T) {
	// GIVEN: January 31 to February 28 in a non-leap year
	// WHEN: Counting days under both 30E/360 flavors
	// THEN: ISDA treats the end of February as day 30 and counts 30 days;
	//       the plain flavor keeps day 28 and counts 28

	start, end := day(2026, time.January, 31), day(2026, time.February, 28)

	isda, err := loan.DayCount(loan.Conv30E360ISDA, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plain, err := loan.DayCount(loan.Conv30E360, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if isda != 30 {
		t.Errorf("expected 30 days under ISDA, got %d", isda)
	}
	if plain != 28 {
		t.Errorf("expected 28 days under the plain flavor, got %d", plain)
	}
}

func TestDayCount_30E360_CapsTheThirtyFirst(t *testing.T) {
	// GIVEN: A span ending on the 31st
	// WHEN: Counting days under plain 30E/360
	// THEN: The 31st counts as the 30th

	got, err := loan.DayCount(loan.Conv30E360, day(2026, time.July, 15), day(2026, time.July, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 15 {
		t.Errorf("expected 15 days, got %d", got)
	}
}

func TestYearFraction_ActualConventions_UseCalendarDays(t *testing.T) {
	// GIVEN: January 1 to February 1, 31 actual days
	// WHEN: Computing ACT/360 and ACT/365F fractions
	// THEN: The same 31 days land over different denominators

	start, end := day(2026, time.January, 1), day(2026, time.February, 1)

	act360 := mustFraction(t, loan.ConvAct360, start, end)
	want := decimal.NewFromInt(31).Div(decimal.NewFromInt(360))
	if !act360.Equal(want) {
		t.Errorf("ACT/360: expected %s, got %s", want, act360)
	}

	act365 := mustFraction(t, loan.ConvAct365F, start, end)
	want = decimal.NewFromInt(31).Div(decimal.NewFromInt(365))
	if !act365.Equal(want) {
		t.Errorf("ACT/365F: expected %s, got %s", want, act365)
	}
}

func TestYearFraction_ActActISDA_FullNonLeapYearIsOne(t *testing.T) {
	// GIVEN: A full year not touching February 29
	// WHEN: Computing the ACT/ACT ISDA fraction
	// THEN: The two calendar-year slices sum to exactly one year

	f := mustFraction(t, loan.ConvActActISDA, day(2025, time.June, 1), day(2026, time.June, 1))
	if !approxFraction(f, decimal.NewFromInt(1)) {
		t.Errorf("expected a full year, got %s", f)
	}
}

func TestYearFraction_ActActISDA_SplitsAtYearBoundary(t *testing.T) {
	// GIVEN: December 2027 into March of leap year 2028
	// WHEN: Computing the ACT/ACT ISDA fraction
	// THEN: 31 days weigh over 365 and the 60 leap-year days over 366

	f := mustFraction(t, loan.ConvActActISDA, day(2027, time.December, 1), day(2028, time.March, 1))

	want := decimal.NewFromInt(31).Div(decimal.NewFromInt(365)).
		Add(decimal.NewFromInt(60).Div(decimal.NewFromInt(366)))
	if !f.Equal(want) {
		t.Errorf("expected %s, got %s", want, f)
	}
}

func TestYearFraction_RejectsNonIncreasingRange(t *testing.T) {
	// GIVEN: A span whose end does not follow its start
	// WHEN: Computing a year fraction
	// THEN: The range is rejected with the date range error

	d := day(2026, time.March, 1)

	_, err := loan.YearFraction(loan.Conv30E360ISDA, d, d)
	if !errors.Is(err, loan.ErrInvalidDateRange) {
		t.Errorf("same-day span: expected ErrInvalidDateRange, got: %v", err)
	}

	_, err = loan.DayCount(loan.ConvAct360, d, day(2026, time.February, 1))
	if !errors.Is(err, loan.ErrInvalidDateRange) {
		t.Errorf("inverted span: expected ErrInvalidDateRange, got: %v", err)
	}

	var rangeErr *loan.InvalidDateRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *InvalidDateRangeError, got: %T", err)
	}
	if !rangeErr.Start.Equal(d) {
		t.Errorf("expected the offending start %s, got %s", d, rangeErr.Start)
	}
}

func TestConvention_Valid_ClosedSet(t *testing.T) {
	valid := []loan.Convention{
		loan.Conv30E360ISDA, loan.Conv30E360, loan.ConvAct360, loan.ConvAct365F, loan.ConvActActISDA,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if loan.Convention("30/360 US").Valid() {
		t.Error("expected an unknown convention to be invalid")
	}
}
