/*
handlers.go - HTTP API handlers for the loan engine

PURPOSE:
  Exposes the amortization engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Loans:
    GET    /api/loans                  List stored loans
    POST   /api/loans                  Create loan (computes + persists schedule)
    GET    /api/loans/{id}             Get loan definition
    DELETE /api/loans/{id}             Delete loan and its schedule
    GET    /api/loans/{id}/schedule    Amortization schedule
    GET    /api/loans/{id}/summary     Totals, payoff date, effective rate

  Compute:
    POST   /api/schedule               Stateless schedule + summary

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    GET    /api/scenarios/current      Currently loaded scenario
    POST   /api/scenarios/load         Load a demo portfolio
    POST   /api/scenarios/reset        Clear all stored loans

  Health:
    GET    /health                     Liveness + cache state

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:   SQLite persistence
  - Cache:   Optional Redis schedule cache (nil disables caching)
  - Factory: JSON definition to configuration conversion

  Schedules are derived data. The read path is cache -> sqlite -> recompute,
  with each miss filling the layer above it. Cache keys hash the definition
  JSON, so an edited definition can never serve a stale schedule.

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate shape (validator tags), then semantics (factory)
  3. Call domain logic (generator, summary, rate)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid definitions, negative amortization
  - 404: Loan not found
  - 500: Storage and internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/loan-engine/factory"
	"github.com/warp/loan-engine/loan"
	"github.com/warp/loan-engine/store/rediscache"
	"github.com/warp/loan-engine/store/sqlite"
)

var validate = validator.New()

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Cache   *rediscache.ScheduleCache
	Factory *factory.LoanFactory
	Logger  *zap.Logger

	generator loan.ScheduleGenerator

	// Track currently loaded demo scenario
	currentScenario string
}

// NewHandler creates a new handler. Cache may be nil to disable caching;
// a nil logger disables logging.
func NewHandler(store *sqlite.Store, cache *rediscache.ScheduleCache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:   store,
		Cache:   cache,
		Factory: factory.NewLoanFactory(),
		Logger:  logger,
	}
}

// =============================================================================
// LOAN HANDLERS
// =============================================================================

// ListLoans returns all stored loans.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListLoans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list loans", err)
		return
	}

	dtos := make([]LoanDTO, len(records))
	for i := range records {
		dtos[i] = toLoanDTO(&records[i], decodeDefinition(records[i].DefinitionJSON))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetLoan returns a single stored loan.
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, toLoanDTO(rec, decodeDefinition(rec.DefinitionJSON)))
}

// CreateLoan validates a definition, computes its schedule, and persists both.
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	definitionJSON, err := encodeDefinition(req.Definition)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan definition", err)
		return
	}

	cfg, registry, err := h.Factory.ParseLoan(definitionJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan definition", err)
		return
	}

	payments, err := h.generator.Generate(cfg, registry)
	if err != nil {
		writeError(w, statusForError(err), "Failed to compute schedule", err)
		return
	}

	ctx := r.Context()
	id := uuid.NewString()
	rec := sqlite.LoanRecord{ID: id, Name: req.Name, DefinitionJSON: definitionJSON}

	if err := h.Store.SaveLoan(ctx, rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save loan", err)
		return
	}
	if err := h.Store.SaveSchedule(ctx, id, payments); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	if h.Cache != nil {
		_ = h.Cache.SetSchedule(ctx, rediscache.Key(definitionJSON), payments)
	}

	h.Logger.Info("loan created",
		zap.String("id", id),
		zap.String("name", req.Name),
		zap.Int("periods", len(payments)),
	)

	saved, err := h.Store.GetLoan(ctx, id)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load saved loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, toLoanDTO(saved, req.Definition))
}

// DeleteLoan removes a loan, its schedule rows, and its cache entry.
func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.Store.DeleteLoan(ctx, rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete loan", err)
		return
	}
	if h.Cache != nil {
		_ = h.Cache.Invalidate(ctx, rediscache.Key(rec.DefinitionJSON))
	}

	h.Logger.Info("loan deleted", zap.String("id", rec.ID))

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": rec.ID})
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns the amortization schedule of a stored loan.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	payments, err := h.loadSchedule(r.Context(), rec)
	if err != nil {
		writeError(w, statusForError(err), "Failed to load schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(rec.ID, payments))
}

// GetSummary returns the aggregate view of a stored loan's schedule.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	payments, err := h.loadSchedule(ctx, rec)
	if err != nil {
		writeError(w, statusForError(err), "Failed to load schedule", err)
		return
	}

	cfg, _, err := h.Factory.ParseLoan(rec.DefinitionJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored definition no longer parses", err)
		return
	}

	summary, err := loan.Summarize(payments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize schedule", err)
		return
	}

	rate, err := loan.InternalRateOfReturn(cfg, payments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute effective rate", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(summary, rate))
}

// ComputeSchedule computes a schedule and summary without persisting anything.
func (h *Handler) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	var req ComputeScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	definitionJSON, err := encodeDefinition(req.Definition)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan definition", err)
		return
	}

	cfg, registry, err := h.Factory.ParseLoan(definitionJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan definition", err)
		return
	}

	ctx := r.Context()
	key := rediscache.Key(definitionJSON)

	payments, cached := h.cachedSchedule(ctx, key)
	if !cached {
		payments, err = h.generator.Generate(cfg, registry)
		if err != nil {
			writeError(w, statusForError(err), "Failed to compute schedule", err)
			return
		}
		if h.Cache != nil {
			_ = h.Cache.SetSchedule(ctx, key, payments)
		}
	}

	summary, err := loan.Summarize(payments)
	if err != nil {
		writeError(w, statusForError(err), "Failed to summarize schedule", err)
		return
	}

	rate, err := loan.InternalRateOfReturn(cfg, payments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute effective rate", err)
		return
	}

	writeJSON(w, http.StatusOK, ComputeScheduleResponse{
		Schedule: toScheduleDTO("", payments),
		Summary:  toSummaryDTO(summary, rate),
	})
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and the cache connection state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cache := "disabled"
	if h.Cache != nil {
		cache = "ok"
		if err := h.Cache.Ping(r.Context()); err != nil {
			cache = "down"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "cache": cache})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadLoan resolves the {id} URL parameter to a stored loan, writing the
// 404/500 response itself when that fails.
func (h *Handler) loadLoan(w http.ResponseWriter, r *http.Request) (*sqlite.LoanRecord, bool) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get loan", err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Loan not found", nil)
		return nil, false
	}
	return rec, true
}

// loadSchedule reads a stored loan's schedule: cache, then sqlite, then a
// recompute that backfills both.
func (h *Handler) loadSchedule(ctx context.Context, rec *sqlite.LoanRecord) ([]loan.Payment, error) {
	key := rediscache.Key(rec.DefinitionJSON)

	if payments, ok := h.cachedSchedule(ctx, key); ok {
		return payments, nil
	}

	payments, err := h.Store.GetSchedule(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	if len(payments) == 0 {
		cfg, registry, err := h.Factory.ParseLoan(rec.DefinitionJSON)
		if err != nil {
			return nil, err
		}
		payments, err = h.generator.Generate(cfg, registry)
		if err != nil {
			return nil, err
		}
		if err := h.Store.SaveSchedule(ctx, rec.ID, payments); err != nil {
			return nil, err
		}
		h.Logger.Info("schedule recomputed", zap.String("id", rec.ID), zap.Int("periods", len(payments)))
	}

	if h.Cache != nil {
		_ = h.Cache.SetSchedule(ctx, key, payments)
	}
	return payments, nil
}

func (h *Handler) cachedSchedule(ctx context.Context, key string) ([]loan.Payment, bool) {
	if h.Cache == nil {
		return nil, false
	}
	return h.Cache.GetSchedule(ctx, key)
}

// encodeDefinition canonicalizes a definition so equal definitions always
// produce the same stored JSON and the same cache key.
func encodeDefinition(def factory.LoanJSON) (string, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeDefinition(jsonStr string) factory.LoanJSON {
	var def factory.LoanJSON
	_ = json.Unmarshal([]byte(jsonStr), &def)
	return def
}

func statusForError(err error) int {
	if loan.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
