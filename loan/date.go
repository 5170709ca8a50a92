package loan

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a calendar date. Schedules care about days, never clock time;
// all dates normalize to midnight UTC.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.normalize().AddDate(0, 0, n)} }

// AddMonths behaves like a spreadsheet EDATE: the day-of-month is clamped to
// the target month's length, never normalized into the following month.
// Jan 31 + 1 month is Feb 28 (or 29), not Mar 2/3. Payment timelines depend
// on this; time.AddDate alone would drift month-end dates.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

func (d Date) AddYears(n int) Date { return d.AddMonths(12 * n) }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) IsLastDayOfMonth() bool {
	return d.Day() == daysInMonth(d.Year(), d.Month())
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// DATE UTILITIES
// =============================================================================

func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Date{Time: t}
}

func daysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month).Day()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// =============================================================================
// PERIOD - A date span, start exclusive, end inclusive
// =============================================================================

// Period is one accrual span of the schedule: interest accrues over
// (Start, End] and the payment lands on End.
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date falls within (Start, End].
func (p Period) Contains(d Date) bool {
	return d.After(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "(" + p.Start.String() + ", " + p.End.String() + "]"
}
