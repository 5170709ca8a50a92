package loan_test

import (
	"testing"
	"time"

	"github.com/warp/loan-engine/loan"
)

func TestDate_AddMonths_ClampsToMonthLength(t *testing.T) {
	// GIVEN: Month-end dates that would spill into the next month under
	//        naive date arithmetic
	// WHEN: Adding months
	// THEN: The day clamps to the target month's last day

	cases := []struct {
		start  loan.Date
		months int
		want   loan.Date
	}{
		{day(2026, time.January, 31), 1, day(2026, time.February, 28)},
		{day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{day(2025, time.August, 31), 1, day(2025, time.September, 30)},
		{day(2025, time.November, 30), 3, day(2026, time.February, 28)},
		{day(2026, time.February, 28), 1, day(2026, time.March, 28)},
		{day(2026, time.January, 15), 1, day(2026, time.February, 15)},
		{day(2026, time.January, 15), 12, day(2027, time.January, 15)},
	}
	for _, c := range cases {
		if got := c.start.AddMonths(c.months); !got.Equal(c.want) {
			t.Errorf("%s + %d months: expected %s, got %s", c.start, c.months, c.want, got)
		}
	}
}

func TestDate_EndOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2026, time.February, 28},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, c := range cases {
		if got := loan.EndOfMonth(c.year, c.month); got.Day() != c.want {
			t.Errorf("end of %v %d: expected day %d, got %d", c.month, c.year, c.want, got.Day())
		}
	}
}

func TestDate_IsLastDayOfMonth(t *testing.T) {
	if !day(2026, time.February, 28).IsLastDayOfMonth() {
		t.Error("2026-02-28 is the last day of a non-leap February")
	}
	if day(2024, time.February, 28).IsLastDayOfMonth() {
		t.Error("2024-02-28 is not the last day of a leap February")
	}
	if !day(2026, time.January, 31).IsLastDayOfMonth() {
		t.Error("the 31st is always the last day")
	}
}

func TestDate_DaysBetween(t *testing.T) {
	if got := loan.DaysBetween(day(2025, time.January, 1), day(2026, time.January, 1)); got != 365 {
		t.Errorf("non-leap year: expected 365 days, got %d", got)
	}
	if got := loan.DaysBetween(day(2024, time.January, 1), day(2025, time.January, 1)); got != 366 {
		t.Errorf("leap year: expected 366 days, got %d", got)
	}
	if got := loan.DaysBetween(day(2026, time.March, 1), day(2026, time.March, 1)); got != 0 {
		t.Errorf("same day: expected 0 days, got %d", got)
	}
}

func TestDate_ParseDate(t *testing.T) {
	d, err := loan.ParseDate("2026-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(day(2026, time.January, 15)) {
		t.Errorf("expected 2026-01-15, got %s", d)
	}

	if _, err := loan.ParseDate("15/01/2026"); err == nil {
		t.Error("expected a format error for a non ISO date")
	}
}

func TestPeriod_Contains_StartExclusiveEndInclusive(t *testing.T) {
	// GIVEN: A period spanning (Jan 15, Feb 15]
	// THEN: The start date is outside, the end date inside

	p := loan.Period{Start: day(2026, time.January, 15), End: day(2026, time.February, 15)}

	if p.Contains(p.Start) {
		t.Error("the period start itself must be excluded")
	}
	if !p.Contains(p.End) {
		t.Error("the period end must be included")
	}
	if !p.Contains(day(2026, time.January, 16)) {
		t.Error("the day after the start must be included")
	}
	if p.Contains(day(2026, time.February, 16)) {
		t.Error("the day after the end must be excluded")
	}
}
