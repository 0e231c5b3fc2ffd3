package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
)

// ApplicationProcessor runs a new application through the decision pipeline.
type ApplicationProcessor interface {
	Execute(ctx context.Context, req dto.ApplyLoanRequest) (dto.DecisionResponse, error)
}

// DecisionReader retrieves a stored decision.
type DecisionReader interface {
	Execute(ctx context.Context, req dto.GetDecisionRequest) (dto.DecisionResponse, error)
}

// LoanHandler serves the loan application endpoints.
type LoanHandler struct {
	processor ApplicationProcessor
	decisions DecisionReader
	logger    *slog.Logger
}

// NewLoanHandler creates the loan HTTP handler.
func NewLoanHandler(processor ApplicationProcessor, decisions DecisionReader, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		processor: processor,
		decisions: decisions,
		logger:    logger,
	}
}

// RegisterRoutes attaches loan routes to the given mux.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/loans/apply", h.apply)
	mux.HandleFunc("GET /api/v1/loans/{id}/decision", h.decision)
	mux.HandleFunc("GET /api/v1/loans/{id}/status", h.status)
}

func (h *LoanHandler) apply(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	defer func() { requestDuration.WithLabelValues("apply").Observe(time.Since(timer).Seconds()) }()

	var req dto.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateApplyRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.processor.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("process application failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to process application")
		return
	}

	decisionsTotal.WithLabelValues(resp.Status, resp.RiskCategory).Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) decision(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	defer func() { requestDuration.WithLabelValues("decision").Observe(time.Since(timer).Seconds()) }()

	resp, err := h.decisions.Execute(r.Context(), dto.GetDecisionRequest{ApplicationID: r.PathValue("id")})
	if err != nil {
		h.respondLookupError(w, r.PathValue("id"), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) status(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	defer func() { requestDuration.WithLabelValues("status").Observe(time.Since(timer).Seconds()) }()

	resp, err := h.decisions.Execute(r.Context(), dto.GetDecisionRequest{ApplicationID: r.PathValue("id")})
	if err != nil {
		h.respondLookupError(w, r.PathValue("id"), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"application_id": resp.ApplicationID,
		"status":         resp.Status,
	})
}

func (h *LoanHandler) respondLookupError(w http.ResponseWriter, applicationID string, err error) {
	if errors.Is(err, port.ErrNotFound) {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	h.logger.Error("decision lookup failed", "application_id", applicationID, "error", err.Error())
	writeError(w, http.StatusInternalServerError, "failed to load decision")
}

// validateApplyRequest guards the numeric ranges the decision engine relies on.
func validateApplyRequest(req dto.ApplyLoanRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("name is required")
	case req.Age <= 0 || req.Age > 120:
		return fmt.Errorf("age must be in range 1-120")
	case req.Salary.IsNegative():
		return fmt.Errorf("salary must not be negative")
	case req.CreditScore < 300 || req.CreditScore > 850:
		return fmt.Errorf("credit score must be in range 300-850")
	case req.LoanAmount.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("loan amount must be positive")
	case req.ExistingLoans < 0:
		return fmt.Errorf("existing loans must not be negative")
	case req.MonthlyIncome.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("monthly income must be positive")
	case req.EmploymentYears < 0:
		return fmt.Errorf("employment years must not be negative")
	case req.PreferredTenureYears < 0:
		return fmt.Errorf("preferred tenure must not be negative")
	default:
		return nil
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
