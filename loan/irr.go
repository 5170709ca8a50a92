package loan

import (
	"math"
)

// =============================================================================
// INTERNAL RATE OF RETURN - Annualized yield of the payment stream
// =============================================================================

const (
	irrInitialGuess  = 0.1
	irrMaxIterations = 100
	irrTolerance     = 1e-6
)

// cashflow is one dated amount of the loan's money stream: the disbursement
// as an outflow, every payment as an inflow.
type cashflow struct {
	date   Date
	amount float64
}

// InternalRateOfReturn computes the annualized internal rate of return of
// the loan's cash flows, as a percentage. The disbursement at the start
// date counts as an outflow of the principal; every payment counts as an
// inflow on its date. Returns zero when the stream has no sign change or
// when the root search does not converge.
func InternalRateOfReturn(c LoanConfiguration, payments []Payment) (float64, error) {
	if len(payments) == 0 {
		return 0, ErrEmptySchedule
	}

	flows := make([]cashflow, 0, len(payments)+1)
	flows = append(flows, cashflow{date: c.StartDate, amount: -c.Principal.Float64()})
	for _, p := range payments {
		flows = append(flows, cashflow{date: p.End, amount: p.TotalPayment.Float64()})
	}

	if !mixedSigns(flows) {
		return 0, nil
	}

	rate := irrInitialGuess
	for i := 0; i < irrMaxIterations; i++ {
		value, derivative := netPresentValue(rate, flows)
		if derivative == 0 || math.IsNaN(value) || math.IsNaN(derivative) {
			return 0, nil
		}
		next := rate - value/derivative
		if math.Abs(next-rate) < irrTolerance {
			return next * 100, nil
		}
		rate = next
	}
	return 0, nil
}

// netPresentValue discounts every flow to the first date at the given rate
// and also returns the derivative with respect to the rate, both needed by
// the Newton step.
func netPresentValue(rate float64, flows []cashflow) (value, derivative float64) {
	anchor := flows[0].date
	for _, f := range flows {
		exponent := float64(DaysBetween(anchor, f.date)) / 365.0
		discount := math.Pow(1+rate, exponent)
		value += f.amount / discount
		derivative -= exponent * f.amount / (discount * (1 + rate))
	}
	return value, derivative
}

func mixedSigns(flows []cashflow) bool {
	var positive, negative bool
	for _, f := range flows {
		switch {
		case f.amount > 0:
			positive = true
		case f.amount < 0:
			negative = true
		}
	}
	return positive && negative
}
