/*
Package factory provides JSON to Go loan conversion.

PURPOSE:
  Converts JSON loan definitions into loan.LoanConfiguration and a
  populated loan.SpecialPaymentRegistry. This enables loan setup without
  code changes - definitions can live in request bodies, config files, or
  database rows.

WHY JSON?
  - One definition format across the HTTP API, the CLI, and storage
  - Version control for loan definitions
  - Round-trips: ToJSON(FromJSON(x)) preserves the definition

JSON SCHEMA:
  {
    "principal": 120000,
    "annual_rate": 6,
    "start_date": "2026-01-15",
    "term": 12,
    "term_unit": "months",
    "frequency": "monthly",
    "loan_type": "annuity",
    "convention": "30E/360 ISDA",
    "payment_at_month_end": false,
    "interest_only_periods": 0,
    "special_payments": [
      {"amount": 20000, "date": "2026-07-15", "policy": "reduce_term"}
    ],
    "recurring_special_payments": [
      {"amount": 1000, "first_payment_date": "2026-04-15",
       "term": 24, "term_unit": "months", "frequency": "monthly",
       "policy": "reduce_installment"}
    ]
  }

DEFAULTS:
  Omitted enum fields fall back to the common case: annuity, monthly,
  30E/360 ISDA, a term stated in years, month-end payments on. An
  explicitly wrong value is NOT defaulted; it flows through so validation
  can name it.

USAGE:
  factory := factory.NewLoanFactory()

  cfg, registry, err := factory.ParseLoan(jsonString)
  if err != nil { ... }

  gen := &loan.ScheduleGenerator{}
  payments, err := gen.Generate(cfg, registry)

SEE ALSO:
  - loan/config.go: LoanConfiguration and its validation
  - loan/special.go: The registry the factory populates
  - factory/presets.go: Ready-made definitions for common loan shapes
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LoanJSON is the JSON representation of a loan definition.
type LoanJSON struct {
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	StartDate  string          `json:"start_date"`

	Term     int    `json:"term"`
	TermUnit string `json:"term_unit,omitempty"`

	Frequency  string `json:"frequency,omitempty"`
	LoanType   string `json:"loan_type,omitempty"`
	Convention string `json:"convention,omitempty"`

	FirstPaymentDate    string           `json:"first_payment_date,omitempty"`
	PaymentAtMonthEnd   *bool            `json:"payment_at_month_end,omitempty"` // Default true
	InterestOnlyPeriods int              `json:"interest_only_periods,omitempty"`
	PaymentOverride     *decimal.Decimal `json:"payment_override,omitempty"`

	SpecialPayments          []SpecialPaymentJSON          `json:"special_payments,omitempty"`
	RecurringSpecialPayments []RecurringSpecialPaymentJSON `json:"recurring_special_payments,omitempty"`
}

// SpecialPaymentJSON represents one ad-hoc extra payment.
type SpecialPaymentJSON struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Policy string          `json:"policy,omitempty"`
}

// RecurringSpecialPaymentJSON represents a repeating extra payment series.
type RecurringSpecialPaymentJSON struct {
	Amount           decimal.Decimal `json:"amount"`
	FirstPaymentDate string          `json:"first_payment_date"`
	Term             int             `json:"term"`
	TermUnit         string          `json:"term_unit,omitempty"`
	Frequency        string          `json:"frequency,omitempty"`
	Policy           string          `json:"policy,omitempty"`
}

// =============================================================================
// LOAN FACTORY
// =============================================================================

// LoanFactory converts JSON loan definitions to Go structs.
type LoanFactory struct{}

// NewLoanFactory creates a new loan factory.
func NewLoanFactory() *LoanFactory {
	return &LoanFactory{}
}

// ParseLoan parses a JSON string into a validated configuration and a
// populated special payment registry.
func (f *LoanFactory) ParseLoan(jsonStr string) (loan.LoanConfiguration, *loan.SpecialPaymentRegistry, error) {
	var lj LoanJSON
	if err := json.Unmarshal([]byte(jsonStr), &lj); err != nil {
		return loan.LoanConfiguration{}, nil, fmt.Errorf("failed to parse loan JSON: %w", err)
	}
	return f.FromJSON(lj)
}

// FromJSON converts LoanJSON to a validated LoanConfiguration and registry.
func (f *LoanFactory) FromJSON(lj LoanJSON) (loan.LoanConfiguration, *loan.SpecialPaymentRegistry, error) {
	cfg := loan.LoanConfiguration{
		Principal:           loan.NewMoneyFromDecimal(lj.Principal),
		AnnualRate:          lj.AnnualRate,
		TermLength:          lj.Term,
		TermUnit:            parseTermUnit(lj.TermUnit),
		Frequency:           parseFrequency(lj.Frequency),
		Type:                parseLoanType(lj.LoanType),
		Convention:          parseConvention(lj.Convention),
		InterestOnlyPeriods: lj.InterestOnlyPeriods,
	}

	var err error
	cfg.StartDate, err = loan.ParseDate(lj.StartDate)
	if err != nil {
		return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid start_date %q: %w", lj.StartDate, err)
	}
	if lj.FirstPaymentDate != "" {
		cfg.FirstPaymentDate, err = loan.ParseDate(lj.FirstPaymentDate)
		if err != nil {
			return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid first_payment_date %q: %w", lj.FirstPaymentDate, err)
		}
	}

	// Month-end payment snapping defaults on, the way most mortgage
	// schedules are quoted.
	cfg.PaymentAtMonthEnd = true
	if lj.PaymentAtMonthEnd != nil {
		cfg.PaymentAtMonthEnd = *lj.PaymentAtMonthEnd
	}

	if lj.PaymentOverride != nil {
		m := loan.NewMoneyFromDecimal(*lj.PaymentOverride)
		cfg.PaymentOverride = &m
	}

	if err := cfg.Validate(); err != nil {
		return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid loan definition: %w", err)
	}

	registry := loan.NewSpecialPaymentRegistry(cfg)
	for _, sj := range lj.SpecialPayments {
		date, err := loan.ParseDate(sj.Date)
		if err != nil {
			return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid special payment date %q: %w", sj.Date, err)
		}
		err = registry.Add(loan.SpecialPayment{
			Amount: loan.NewMoneyFromDecimal(sj.Amount),
			Date:   date,
			Policy: parsePolicy(sj.Policy),
		})
		if err != nil {
			return loan.LoanConfiguration{}, nil, err
		}
	}
	for _, rj := range lj.RecurringSpecialPayments {
		first, err := loan.ParseDate(rj.FirstPaymentDate)
		if err != nil {
			return loan.LoanConfiguration{}, nil, fmt.Errorf("invalid recurring payment date %q: %w", rj.FirstPaymentDate, err)
		}
		err = registry.AddRecurring(loan.RecurringSpecialPayment{
			Amount:           loan.NewMoneyFromDecimal(rj.Amount),
			FirstPaymentDate: first,
			TermLength:       rj.Term,
			TermUnit:         parseTermUnit(rj.TermUnit),
			Frequency:        parseFrequency(rj.Frequency),
			Policy:           parsePolicy(rj.Policy),
		})
		if err != nil {
			return loan.LoanConfiguration{}, nil, err
		}
	}

	return cfg, registry, nil
}

// ToJSON converts a configuration and registry back to LoanJSON.
func (f *LoanFactory) ToJSON(cfg loan.LoanConfiguration, registry *loan.SpecialPaymentRegistry) LoanJSON {
	eom := cfg.PaymentAtMonthEnd
	lj := LoanJSON{
		Principal:           cfg.Principal.Value,
		AnnualRate:          cfg.AnnualRate,
		StartDate:           cfg.StartDate.String(),
		Term:                cfg.TermLength,
		TermUnit:            string(cfg.TermUnit),
		Frequency:           string(cfg.Frequency),
		LoanType:            string(cfg.Type),
		Convention:          string(cfg.Convention),
		PaymentAtMonthEnd:   &eom,
		InterestOnlyPeriods: cfg.InterestOnlyPeriods,
	}
	if !cfg.FirstPaymentDate.IsZero() {
		lj.FirstPaymentDate = cfg.FirstPaymentDate.String()
	}
	if cfg.PaymentOverride != nil {
		v := cfg.PaymentOverride.Value
		lj.PaymentOverride = &v
	}
	if registry != nil {
		for _, sp := range registry.All() {
			lj.SpecialPayments = append(lj.SpecialPayments, SpecialPaymentJSON{
				Amount: sp.Amount.Value,
				Date:   sp.Date.String(),
				Policy: string(sp.Policy),
			})
		}
	}
	return lj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================
// Empty values fall back to the default; unknown values flow through so
// Validate can report them instead of silently rewriting the definition.

func parseTermUnit(s string) loan.TermUnit {
	if s == "" {
		return loan.TermYears
	}
	return loan.TermUnit(s)
}

func parseFrequency(s string) loan.PaymentFrequency {
	if s == "" {
		return loan.FrequencyMonthly
	}
	return loan.PaymentFrequency(s)
}

func parseLoanType(s string) loan.LoanType {
	if s == "" {
		return loan.LoanAnnuity
	}
	return loan.LoanType(s)
}

func parseConvention(s string) loan.Convention {
	if s == "" {
		return loan.Conv30E360ISDA
	}
	return loan.Convention(s)
}

func parsePolicy(s string) loan.SpecialPaymentPolicy {
	if s == "" {
		return loan.ReduceTerm
	}
	return loan.SpecialPaymentPolicy(s)
}
