/*
daycount.go - Day-count conventions for interest accrual

PURPOSE:
  Converts a calendar date span into the fraction of a year over which
  interest accrues. Every period of every schedule runs through here, so
  the functions are pure: identical inputs always yield identical outputs.

CONVENTIONS:
  30E/360 ISDA  - day-of-month capped at 30; the last day of February also
                  counts as 30. The usual convention for European mortgages
                  and the default for loan definitions.
  30E/360       - day-of-month capped at 30 (only the 31st moves).
  ACT/360       - actual days over a 360-day year (money-market basis).
  ACT/365F      - actual days over a fixed 365-day year.
  ACT/ACT ISDA  - actual days over the actual year length; spans crossing
                  year boundaries are split and each slice is divided by
                  its own year's length (365 or 366).

USAGE:
  fraction, err := loan.YearFraction(loan.Conv30E360ISDA, start, end)
  interest := balance.Mul(annualRate).Mul(fraction)

SEE ALSO:
  - schedule.go: Calls YearFraction once per period
  - config.go: Carries the Convention tag on LoanConfiguration
*/
package loan

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONVENTION - Closed day-count tag set
// =============================================================================

type Convention string

const (
	Conv30E360ISDA Convention = "30E/360 ISDA"
	Conv30E360     Convention = "30E/360"
	ConvAct360     Convention = "ACT/360"
	ConvAct365F    Convention = "ACT/365F"
	ConvActActISDA Convention = "ACT/ACT ISDA"
)

func (c Convention) Valid() bool {
	switch c {
	case Conv30E360ISDA, Conv30E360, ConvAct360, ConvAct365F, ConvActActISDA:
		return true
	default:
		return false
	}
}

// =============================================================================
// DAY COUNT
// =============================================================================

// DayCount returns the coupon-period day count for the convention: the
// adjusted 30/360 count for the 30E variants, actual calendar days for the
// ACT variants. Fails unless start < end.
func DayCount(c Convention, start, end Date) (int, error) {
	if !start.Before(end) {
		return 0, &InvalidDateRangeError{Start: start, End: end}
	}

	switch c {
	case Conv30E360ISDA:
		return days30E360(start, end, true), nil
	case Conv30E360:
		return days30E360(start, end, false), nil
	default:
		return DaysBetween(start, end), nil
	}
}

// days30E360 computes the 30/360 day count. Under the ISDA flavor the last
// day of any month counts as 30; under the plain flavor only the 31st moves.
func days30E360(start, end Date, isda bool) int {
	d1, d2 := start.Day(), end.Day()
	if isda {
		if start.IsLastDayOfMonth() {
			d1 = 30
		}
		if end.IsLastDayOfMonth() {
			d2 = 30
		}
	} else {
		if d1 > 30 {
			d1 = 30
		}
		if d2 > 30 {
			d2 = 30
		}
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}

// =============================================================================
// YEAR FRACTION
// =============================================================================

// YearFraction returns the non-negative fraction of a year between two dates
// under the given convention. Fails unless start < end.
func YearFraction(c Convention, start, end Date) (decimal.Decimal, error) {
	if !start.Before(end) {
		return decimal.Zero, &InvalidDateRangeError{Start: start, End: end}
	}

	switch c {
	case Conv30E360ISDA, Conv30E360:
		days, err := DayCount(c, start, end)
		if err != nil {
			return decimal.Zero, err
		}
		return ratio(days, 360), nil

	case ConvAct360:
		return ratio(DaysBetween(start, end), 360), nil

	case ConvAct365F:
		return ratio(DaysBetween(start, end), 365), nil

	case ConvActActISDA:
		return actActISDA(start, end), nil

	default:
		return ratio(DaysBetween(start, end), 365), nil
	}
}

// actActISDA splits the span at calendar-year boundaries and divides each
// slice by its own year's length, so leap years weigh in at 366.
func actActISDA(start, end Date) decimal.Decimal {
	if start.Year() == end.Year() {
		return ratio(DaysBetween(start, end), yearLength(start.Year()))
	}

	fraction := decimal.Zero
	cursor := start
	for cursor.Year() < end.Year() {
		nextYear := NewDate(cursor.Year()+1, 1, 1)
		fraction = fraction.Add(ratio(DaysBetween(cursor, nextYear), yearLength(cursor.Year())))
		cursor = nextYear
	}
	if cursor.Before(end) {
		fraction = fraction.Add(ratio(DaysBetween(cursor, end), yearLength(end.Year())))
	}
	return fraction
}

func yearLength(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func ratio(num, den int) decimal.Decimal {
	return decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(den)))
}
