/*
presets.go - Ready-made loan definitions for common loan shapes

These construct JSON strings rather than configurations directly, so preset
loans flow through exactly the same parsing and validation as user input.

USAGE:
  jsonStr := factory.StandardMortgageJSON(350000, 3.9, 30, "2026-03-01")
  cfg, registry, err := factory.NewLoanFactory().ParseLoan(jsonStr)
*/
package factory

import (
	"encoding/json"
)

// StandardMortgageJSON returns JSON for a plain annuity mortgage: monthly
// payments at month end, 30E/360 ISDA accrual.
func StandardMortgageJSON(principal, annualRate float64, years int, startDate string) string {
	lj := map[string]interface{}{
		"principal":            principal,
		"annual_rate":          annualRate,
		"start_date":           startDate,
		"term":                 years,
		"term_unit":            "years",
		"frequency":            "monthly",
		"loan_type":            "annuity",
		"convention":           "30E/360 ISDA",
		"payment_at_month_end": true,
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}

// ConsumerLoanJSON returns JSON for a linear consumer loan accruing on
// actual days, paid on the monthly anniversary of the start date.
func ConsumerLoanJSON(principal, annualRate float64, months int, startDate string) string {
	lj := map[string]interface{}{
		"principal":            principal,
		"annual_rate":          annualRate,
		"start_date":           startDate,
		"term":                 months,
		"term_unit":            "months",
		"frequency":            "monthly",
		"loan_type":            "linear",
		"convention":           "ACT/365F",
		"payment_at_month_end": false,
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}

// BridgeLoanJSON returns JSON for a short interest-only bridge loan with
// the balance due as a balloon at maturity.
func BridgeLoanJSON(principal, annualRate float64, months int, startDate string) string {
	lj := map[string]interface{}{
		"principal":            principal,
		"annual_rate":          annualRate,
		"start_date":           startDate,
		"term":                 months,
		"term_unit":            "months",
		"frequency":            "monthly",
		"loan_type":            "interest_only",
		"convention":           "ACT/360",
		"payment_at_month_end": false,
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}

// AcceleratedMortgageJSON returns JSON for an annuity mortgage with a
// recurring extra payment that shortens the term.
func AcceleratedMortgageJSON(principal, annualRate float64, years int, startDate string,
	extraMonthly float64, extraFrom string) string {
	lj := map[string]interface{}{
		"principal":            principal,
		"annual_rate":          annualRate,
		"start_date":           startDate,
		"term":                 years,
		"term_unit":            "years",
		"frequency":            "monthly",
		"loan_type":            "annuity",
		"convention":           "30E/360 ISDA",
		"payment_at_month_end": true,
		"recurring_special_payments": []map[string]interface{}{{
			"amount":             extraMonthly,
			"first_payment_date": extraFrom,
			"term":               years,
			"term_unit":          "years",
			"frequency":          "monthly",
			"policy":             "reduce_term",
		}},
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}
