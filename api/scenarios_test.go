/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario correctly sets up the expected state:
	- Loans are created with the preset definitions
	- Schedules are computed and persisted
	- Loading replaces previously loaded data

These tests ensure scenarios work correctly and can be used as integration tests.
*/
package api

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/warp/loan-engine/store/sqlite"
)

func setupTestHandler(t *testing.T) *Handler {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "loans.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewHandler(store, nil, nil)
}

func TestScenario_FirstHome(t *testing.T) {
	// GIVEN: The first-home scenario
	// WHEN: Loading it
	// THEN: One mortgage exists with a full 360-row schedule closing at zero

	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadFirstHomeScenario(ctx); err != nil {
		t.Fatalf("Failed to load first-home scenario: %v", err)
	}

	loans, err := handler.Store.ListLoans(ctx)
	if err != nil {
		t.Fatalf("Failed to list loans: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("Expected 1 loan, got %d", len(loans))
	}
	if loans[0].Name != "First home" {
		t.Errorf("Expected name 'First home', got %q", loans[0].Name)
	}

	payments, err := handler.Store.GetSchedule(ctx, "loan-001")
	if err != nil {
		t.Fatalf("Failed to get schedule: %v", err)
	}
	if len(payments) != 360 {
		t.Fatalf("Expected 360 schedule rows, got %d", len(payments))
	}
	if got := payments[len(payments)-1].Balance.String(); got != "0.00" {
		t.Errorf("Expected final balance 0.00, got %s", got)
	}
}

func TestScenario_AcceleratedPayoffShortensTerm(t *testing.T) {
	// GIVEN: The accelerated-payoff scenario
	handler := setupTestHandler(t)
	ctx := context.Background()

	// WHEN: Loading it
	if err := handler.loadAcceleratedPayoffScenario(ctx); err != nil {
		t.Fatalf("Failed to load accelerated-payoff scenario: %v", err)
	}

	// THEN: The extra payments finish the loan before 360 periods
	payments, err := handler.Store.GetSchedule(ctx, "loan-001")
	if err != nil {
		t.Fatalf("Failed to get schedule: %v", err)
	}
	if len(payments) == 0 || len(payments) >= 360 {
		t.Fatalf("Expected a shortened schedule, got %d rows", len(payments))
	}
	if got := payments[len(payments)-1].Balance.String(); got != "0.00" {
		t.Errorf("Expected final balance 0.00, got %s", got)
	}
}

func TestScenario_BridgeAndBuyCreatesTwoLoans(t *testing.T) {
	handler := setupTestHandler(t)
	ctx := context.Background()

	if err := handler.loadBridgeAndBuyScenario(ctx); err != nil {
		t.Fatalf("Failed to load bridge-and-buy scenario: %v", err)
	}

	loans, err := handler.Store.ListLoans(ctx)
	if err != nil {
		t.Fatalf("Failed to list loans: %v", err)
	}
	if len(loans) != 2 {
		t.Fatalf("Expected 2 loans, got %d", len(loans))
	}

	// The bridge loan pays interest only until the balloon
	payments, err := handler.Store.GetSchedule(ctx, "loan-002")
	if err != nil {
		t.Fatalf("Failed to get bridge schedule: %v", err)
	}
	if len(payments) != 9 {
		t.Fatalf("Expected 9 bridge periods, got %d", len(payments))
	}
	for _, p := range payments[:8] {
		if !p.Principal.IsZero() {
			t.Errorf("Period %d: expected zero principal before the balloon, got %s", p.Period, p.Principal)
		}
	}
	if got := payments[8].Principal.String(); got != "250000.00" {
		t.Errorf("Expected balloon principal 250000.00, got %s", got)
	}
}

func TestLoadScenario_ViaAPI(t *testing.T) {
	// GIVEN: A running server
	handler := setupTestHandler(t)
	router := NewRouter(handler)

	// WHEN: Loading consumer-credit, then first-home
	rr := doRequest(t, router, "POST", "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "consumer-credit"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, router, "POST", "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "first-home"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// THEN: Only the last scenario's data remains
	rr = doRequest(t, router, "GET", "/api/loans", nil)
	loans := decodeBody[[]LoanDTO](t, rr)
	if len(loans) != 1 || loans[0].Name != "First home" {
		t.Fatalf("Expected only the first-home loan, got %+v", loans)
	}

	// AND: The current scenario endpoint reports it
	rr = doRequest(t, router, "GET", "/api/scenarios/current", nil)
	current := decodeBody[ScenarioDTO](t, rr)
	if current.ID != "first-home" {
		t.Errorf("Expected current scenario first-home, got %q", current.ID)
	}
}

func TestLoadScenario_UnknownRejected(t *testing.T) {
	handler := setupTestHandler(t)
	router := NewRouter(handler)

	rr := doRequest(t, router, "POST", "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "lottery-win"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
}

func TestResetDatabase_ClearsLoans(t *testing.T) {
	handler := setupTestHandler(t)
	router := NewRouter(handler)

	rr := doRequest(t, router, "POST", "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "first-home"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Failed to load scenario: %d", rr.Code)
	}

	rr = doRequest(t, router, "POST", "/api/scenarios/reset", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = doRequest(t, router, "GET", "/api/loans", nil)
	if loans := decodeBody[[]LoanDTO](t, rr); len(loans) != 0 {
		t.Errorf("Expected no loans after reset, got %d", len(loans))
	}
}
