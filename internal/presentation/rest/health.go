package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessChecker reports whether a downstream dependency is reachable.
type ReadinessChecker func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	serviceName string
	checkers    map[string]ReadinessChecker
	logger      *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. Checkers are probed
// on every readiness request.
func NewHealthHandler(serviceName string, checkers map[string]ReadinessChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		checkers:    checkers,
		logger:      logger,
	}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checkers))
	ready := true
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", name, "error", err.Error())
			checks[name] = "unavailable"
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	writeJSON(w, status, map[string]any{
		"status":  state,
		"service": h.serviceName,
		"checks":  checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
