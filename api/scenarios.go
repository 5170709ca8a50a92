/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	loans for testing and demos. Each scenario creates one or more loans
	from the factory presets, with schedules computed and persisted.

AVAILABLE SCENARIOS:

	first-home:          Single 30-year annuity mortgage
	accelerated-payoff:  Same mortgage plus a recurring extra payment
	bridge-and-buy:      Interest-only bridge loan alongside the mortgage
	consumer-credit:     Linear consumer loan on actual-day accrual

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Build definitions from factory presets
 3. Parse, compute, persist loan + schedule

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "first-home"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context and helpers
  - factory/presets.go: The preset definitions loaded here
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/loan-engine/factory"
	"github.com/warp/loan-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "first-home",
		Name:        "First Home",
		Description: "380000 @ 3.9% over 30 years, month-end annuity payments",
		Category:    "mortgage",
	},
	{
		ID:          "accelerated-payoff",
		Name:        "Accelerated Payoff",
		Description: "The first-home mortgage with 500 extra every month shortening the term",
		Category:    "mortgage",
	},
	{
		ID:          "bridge-and-buy",
		Name:        "Bridge and Buy",
		Description: "Interest-only bridge loan running alongside the new mortgage",
		Category:    "portfolio",
	},
	{
		ID:          "consumer-credit",
		Name:        "Consumer Credit",
		Description: "15000 @ 4.5% over 48 months, linear on actual-day accrual",
		Category:    "consumer",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "first-home":
		err = h.loadFirstHomeScenario(ctx)
	case "accelerated-payoff":
		err = h.loadAcceleratedPayoffScenario(ctx)
	case "bridge-and-buy":
		err = h.loadBridgeAndBuyScenario(ctx)
	case "consumer-credit":
		err = h.loadConsumerCreditScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all stored loans.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadFirstHomeScenario(ctx context.Context) error {
	return h.createLoanFromJSON(ctx, "loan-001", "First home",
		factory.StandardMortgageJSON(380000, 3.9, 30, "2026-03-01"))
}

func (h *Handler) loadAcceleratedPayoffScenario(ctx context.Context) error {
	return h.createLoanFromJSON(ctx, "loan-001", "First home, accelerated",
		factory.AcceleratedMortgageJSON(380000, 3.9, 30, "2026-03-01", 500, "2026-06-30"))
}

func (h *Handler) loadBridgeAndBuyScenario(ctx context.Context) error {
	if err := h.createLoanFromJSON(ctx, "loan-001", "First home",
		factory.StandardMortgageJSON(380000, 3.9, 30, "2026-03-01")); err != nil {
		return err
	}
	return h.createLoanFromJSON(ctx, "loan-002", "Bridge until the old house sells",
		factory.BridgeLoanJSON(250000, 8.5, 9, "2026-03-01"))
}

func (h *Handler) loadConsumerCreditScenario(ctx context.Context) error {
	return h.createLoanFromJSON(ctx, "loan-001", "Kitchen renovation",
		factory.ConsumerLoanJSON(15000, 4.5, 48, "2026-02-10"))
}

// createLoanFromJSON parses a preset definition, computes its schedule, and
// persists both under a fixed id for reproducible demos.
func (h *Handler) createLoanFromJSON(ctx context.Context, id, name, definitionJSON string) error {
	cfg, registry, err := h.Factory.ParseLoan(definitionJSON)
	if err != nil {
		return fmt.Errorf("scenario definition %s: %w", id, err)
	}

	payments, err := h.generator.Generate(cfg, registry)
	if err != nil {
		return fmt.Errorf("scenario schedule %s: %w", id, err)
	}

	if err := h.Store.SaveLoan(ctx, sqlite.LoanRecord{ID: id, Name: name, DefinitionJSON: definitionJSON}); err != nil {
		return err
	}
	return h.Store.SaveSchedule(ctx, id, payments)
}
