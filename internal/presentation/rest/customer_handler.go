package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
)

// LoanHistoryReader lists a customer's applications.
type LoanHistoryReader interface {
	Execute(ctx context.Context, req dto.GetCustomerLoansRequest) (dto.CustomerLoanHistoryResponse, error)
}

// CustomerHandler serves the customer endpoints.
type CustomerHandler struct {
	history LoanHistoryReader
	logger  *slog.Logger
}

// NewCustomerHandler creates the customer HTTP handler.
func NewCustomerHandler(history LoanHistoryReader, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{history: history, logger: logger}
}

// RegisterRoutes attaches customer routes to the given mux.
func (h *CustomerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/customers/{id}/loans", h.loans)
}

func (h *CustomerHandler) loans(w http.ResponseWriter, r *http.Request) {
	resp, err := h.history.Execute(r.Context(), dto.GetCustomerLoansRequest{CustomerID: r.PathValue("id")})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("loan history lookup failed", "customer_id", r.PathValue("id"), "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to load loan history")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
