/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

AMOUNTS:
  All monetary amounts are string-formatted decimals with two places
  ("10327.97"), never floats. Dates are YYYY-MM-DD strings.

VALIDATION:
  Request types carry go-playground/validator tags for shape validation.
  Loan semantics (rates, dates, policies) are validated by the factory.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/loan.go: LoanJSON definition format
*/
package api

import (
	"time"

	"github.com/warp/loan-engine/factory"
	"github.com/warp/loan-engine/loan"
	"github.com/warp/loan-engine/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateLoanRequest is the request to create and persist a loan.
type CreateLoanRequest struct {
	Name       string           `json:"name" validate:"required,max=200"`
	Definition factory.LoanJSON `json:"definition" validate:"required"`
}

// ComputeScheduleRequest is the request for a stateless schedule computation.
type ComputeScheduleRequest struct {
	Definition factory.LoanJSON `json:"definition" validate:"required"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoanDTO represents a stored loan in API responses.
type LoanDTO struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Definition factory.LoanJSON `json:"definition"`
	Version    int              `json:"version"`
	CreatedAt  string           `json:"created_at,omitempty"`
	UpdatedAt  string           `json:"updated_at,omitempty"`
}

// PaymentDTO is one schedule row.
type PaymentDTO struct {
	Period           int    `json:"period"`
	PeriodStart      string `json:"period_start"`
	PaymentDate      string `json:"payment_date"`
	Interest         string `json:"interest"`
	Principal        string `json:"principal"`
	SpecialPrincipal string `json:"special_principal"`
	TotalPrincipal   string `json:"total_principal"`
	TotalPayment     string `json:"total_payment"`
	Balance          string `json:"balance"`
}

// ScheduleDTO is a full amortization schedule.
type ScheduleDTO struct {
	LoanID   string       `json:"loan_id,omitempty"`
	Periods  int          `json:"periods"`
	Payments []PaymentDTO `json:"payments"`
}

// SummaryDTO aggregates a schedule.
type SummaryDTO struct {
	LoanAmount           string  `json:"loan_amount"`
	TotalPayment         string  `json:"total_payment"`
	TotalInterest        string  `json:"total_interest"`
	TotalPrincipal       string  `json:"total_principal"`
	TotalSpecial         string  `json:"total_special"`
	ResidualBalance      string  `json:"residual_balance"`
	RepaymentToPrincipal string  `json:"repayment_to_principal"`
	PeriodsRun           int     `json:"periods_run"`
	PayoffDate           string  `json:"payoff_date"`
	EffectiveAnnualRate  float64 `json:"effective_annual_rate"`
}

// ComputeScheduleResponse is the stateless compute result.
type ComputeScheduleResponse struct {
	Schedule ScheduleDTO `json:"schedule"`
	Summary  SummaryDTO  `json:"summary"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the error body for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toLoanDTO(rec *sqlite.LoanRecord, def factory.LoanJSON) LoanDTO {
	return LoanDTO{
		ID:         rec.ID,
		Name:       rec.Name,
		Definition: def,
		Version:    rec.Version,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	}
}

func toPaymentDTO(p loan.Payment) PaymentDTO {
	return PaymentDTO{
		Period:           p.Period,
		PeriodStart:      p.Start.String(),
		PaymentDate:      p.End.String(),
		Interest:         p.Interest.String(),
		Principal:        p.Principal.String(),
		SpecialPrincipal: p.SpecialPrincipal.String(),
		TotalPrincipal:   p.TotalPrincipal.String(),
		TotalPayment:     p.TotalPayment.String(),
		Balance:          p.Balance.String(),
	}
}

func toScheduleDTO(loanID string, payments []loan.Payment) ScheduleDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return ScheduleDTO{LoanID: loanID, Periods: len(payments), Payments: dtos}
}

func toSummaryDTO(s *loan.LoanSummary, effectiveRate float64) SummaryDTO {
	return SummaryDTO{
		LoanAmount:           s.LoanAmount.String(),
		TotalPayment:         s.TotalPayment.String(),
		TotalInterest:        s.TotalInterest.String(),
		TotalPrincipal:       s.TotalPrincipal.String(),
		TotalSpecial:         s.TotalSpecial.String(),
		ResidualBalance:      s.ResidualBalance.String(),
		RepaymentToPrincipal: s.RepaymentToPrincipal.StringFixed(2),
		PeriodsRun:           s.PeriodsRun,
		PayoffDate:           s.PayoffDate.String(),
		EffectiveAnnualRate:  effectiveRate,
	}
}
