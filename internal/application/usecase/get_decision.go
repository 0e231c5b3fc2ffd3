package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// GetDecisionUseCase retrieves a stored decision, serving repeat lookups from
// the cache.
type GetDecisionUseCase struct {
	appRepo        port.LoanApplicationRepository
	termsRepo      port.LoanTermsRepository
	predictionRepo port.PredictionRepository
	cache          port.DecisionCache
	cacheTTL       time.Duration
	logger         *slog.Logger
}

// NewGetDecisionUseCase wires dependencies. The cache may be nil, in which
// case every lookup goes to the repositories.
func NewGetDecisionUseCase(
	appRepo port.LoanApplicationRepository,
	termsRepo port.LoanTermsRepository,
	predictionRepo port.PredictionRepository,
	cache port.DecisionCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *GetDecisionUseCase {
	return &GetDecisionUseCase{
		appRepo:        appRepo,
		termsRepo:      termsRepo,
		predictionRepo: predictionRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// Execute returns the decision for one application.
func (uc *GetDecisionUseCase) Execute(
	ctx context.Context,
	req dto.GetDecisionRequest,
) (dto.DecisionResponse, error) {
	if req.ApplicationID == "" {
		return dto.DecisionResponse{}, fmt.Errorf("application ID is required")
	}

	cacheKey := decisionCacheKey(req.ApplicationID)
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, cacheKey); ok {
			var resp dto.DecisionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			uc.logger.Warn("corrupt cached decision, falling through",
				slog.String("application_id", req.ApplicationID))
		}
	}

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("find application: %w", err)
	}

	resp := dto.DecisionResponse{
		ApplicationID: app.ID(),
		CustomerID:    app.CustomerID(),
		Status:        app.Status().String(),
		RiskCategory:  app.RiskCategory().String(),
		Reason:        app.DecisionReason(),
		CreatedAt:     app.CreatedAt(),
		UpdatedAt:     app.UpdatedAt(),
	}

	if app.Status().Equal(valueobject.DecisionStatusApproved) {
		terms, err := uc.termsRepo.FindByApplicationID(ctx, app.ID())
		switch {
		case err == nil:
			resp.Terms = toTermsResponse(&terms)
		case !errors.Is(err, port.ErrNotFound):
			return dto.DecisionResponse{}, fmt.Errorf("find loan terms: %w", err)
		}
	}

	// Predictions are optional audit data.
	if predictions, err := uc.predictionRepo.FindByApplicationID(ctx, app.ID()); err == nil {
		resp.Predictions = toPredictionResponses(predictions)
	} else if !errors.Is(err, port.ErrNotFound) {
		uc.logger.Warn("load model predictions failed",
			slog.String("application_id", app.ID()),
			slog.String("error", err.Error()))
	}

	if uc.cache != nil && app.Status().IsTerminal() {
		if payload, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, string(payload), uc.cacheTTL); err != nil {
				uc.logger.Warn("cache decision failed",
					slog.String("application_id", app.ID()),
					slog.String("error", err.Error()))
			}
		}
	}

	return resp, nil
}

func decisionCacheKey(applicationID string) string {
	return "decision:" + applicationID
}
