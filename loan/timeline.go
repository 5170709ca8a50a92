package loan

// =============================================================================
// PAYMENT TIMELINE - Regular payment dates for a configuration
// =============================================================================

// PaymentDates returns the ordered regular payment dates for the
// configuration. Period i spans (date i-1, date i] with date 0 being the
// start date; the first and last periods may be stubs.
func PaymentDates(c LoanConfiguration) []Date {
	n := c.PeriodCount()
	if n < 1 {
		return nil
	}
	step := c.Frequency.MonthStep()
	dates := make([]Date, 0, n)

	switch {
	case !c.FirstPaymentDate.IsZero():
		current := c.FirstPaymentDate
		dates = append(dates, current)
		for i := 1; i < n; i++ {
			current = current.AddMonths(step)
			if c.PaymentAtMonthEnd {
				current = EndOfMonth(current.Year(), current.Month())
			}
			dates = append(dates, current)
		}

	case c.PaymentAtMonthEnd:
		// A start on the last day of its month pays at the end of the next
		// step; any other start pays at the end of its own month, making a
		// short first stub.
		first := c.StartDate
		if c.StartDate.IsLastDayOfMonth() {
			first = c.StartDate.AddMonths(step)
		}
		current := EndOfMonth(first.Year(), first.Month())
		dates = append(dates, current)
		for i := 1; i < n; i++ {
			current = current.AddMonths(step)
			current = EndOfMonth(current.Year(), current.Month())
			dates = append(dates, current)
		}

	default:
		current := c.StartDate
		for i := 0; i < n; i++ {
			current = current.AddMonths(step)
			dates = append(dates, current)
		}
	}

	return dates
}

// MaturityDate returns the final regular payment date.
func MaturityDate(c LoanConfiguration) Date {
	dates := PaymentDates(c)
	if len(dates) == 0 {
		return Date{}
	}
	return dates[len(dates)-1]
}

// Lifetime returns the span special payments must fall within: after
// disbursement, no later than maturity.
func Lifetime(c LoanConfiguration) Period {
	return Period{Start: c.StartDate, End: MaturityDate(c)}
}
