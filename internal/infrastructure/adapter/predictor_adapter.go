package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/rand"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
)

// ---------------------------------------------------------------------------
// Predictor adapter - structured for real inference-service integration
// ---------------------------------------------------------------------------

// Sub-model names reported by the inference service (and by the simulator).
const (
	ModelRandomForest       = "random_forest"
	ModelGradientBoost      = "gradient_boost"
	ModelLogisticRegression = "logistic_regression"
)

// PredictorConfig holds configuration for the predictor adapter.
type PredictorConfig struct {
	// BaseURL is the base URL of the inference service API.
	BaseURL string
	// APIKey is the authentication credential for the inference API.
	APIKey string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoffMs is the base backoff duration in milliseconds between retries.
	RetryBackoffMs int
}

// DefaultPredictorConfig returns sensible defaults for development.
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		BaseURL:        "http://localhost:8500",
		TimeoutSeconds: 10,
		MaxRetries:     3,
		RetryBackoffMs: 200,
	}
}

// InferenceClient defines the interface for calling the inference service.
// This enables testing with mock implementations.
type InferenceClient interface {
	FetchPrediction(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error)
}

// PredictorAdapter implements port.Predictor. When a real InferenceClient is
// provided it calls the inference service with retry logic; otherwise it
// returns a deterministic simulated prediction (suitable for development and
// testing).
type PredictorAdapter struct {
	config PredictorConfig
	client InferenceClient // nil = use simulated responses
}

// NewPredictorAdapter creates a new adapter with the given configuration.
func NewPredictorAdapter(config PredictorConfig, client InferenceClient) *PredictorAdapter {
	return &PredictorAdapter{
		config: config,
		client: client,
	}
}

// Predict obtains the predictive signal for an application profile.
func (a *PredictorAdapter) Predict(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error) {
	if a.client != nil {
		outcome, err := a.fetchWithRetry(ctx, profile)
		if err != nil {
			return model.PredictionOutcome{}, fmt.Errorf("%w: %v", port.ErrPredictorUnavailable, err)
		}
		return outcome, nil
	}

	return a.simulatePrediction(profile), nil
}

// fetchWithRetry calls the inference service with exponential backoff.
func (a *PredictorAdapter) fetchWithRetry(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(a.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return model.PredictionOutcome{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		outcome, err := a.client.FetchPrediction(ctx, profile)
		if err == nil {
			return outcome, nil
		}
		lastErr = err
	}

	return model.PredictionOutcome{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}

// simulatePrediction generates a deterministic prediction from the profile.
// Each simulated sub-model starts from the applicant's fundamentals and adds
// a small model-specific offset derived from a hash of the profile, making
// results reproducible for testing.
func (a *PredictorAdapter) simulatePrediction(profile model.ApplicationProfile) model.PredictionOutcome {
	base := baseApprovalProbability(profile)
	seed := profileHash(profile)

	names := []string{ModelRandomForest, ModelGradientBoost, ModelLogisticRegression}
	models := make([]model.ModelPrediction, len(names))

	var sum float64
	approvals := 0
	for i, name := range names {
		// Offset in [-0.05, +0.05], distinct per model.
		offset := (float64(seed[i]%101)/100 - 0.5) * 0.1
		p := clampProbability(base + offset)

		prediction := model.PredictionRejected
		if p >= 0.5 {
			prediction = model.PredictionApproved
			approvals++
		}

		models[i] = model.ModelPrediction{
			ModelName:   name,
			Prediction:  prediction,
			Probability: p,
			Confidence:  clampProbability(0.6 + float64(seed[i+8]%36)/100),
		}
		sum += p
	}

	decision := model.PredictionRejected
	if approvals*2 > len(models) {
		decision = model.PredictionApproved
	}

	return model.PredictionOutcome{
		Decision:           decision,
		Consensus:          approvals == 0 || approvals == len(models),
		AverageProbability: sum / float64(len(models)),
		Models:             models,
	}
}

// baseApprovalProbability maps the core financials into [0.05, 0.95].
func baseApprovalProbability(profile model.ApplicationProfile) float64 {
	creditPart := float64(profile.CreditScore-300) / 550 // [0,1]

	loanToIncome := 0.0
	if salary := profile.AnnualSalary.InexactFloat64(); salary > 0 {
		loanToIncome = profile.LoanAmount.InexactFloat64() / salary
	}
	burdenPart := 1.0 - loanToIncome/6
	if burdenPart < 0 {
		burdenPart = 0
	}

	return clampProbability(0.6*creditPart + 0.4*burdenPart)
}

func clampProbability(p float64) float64 {
	if p < 0.05 {
		return 0.05
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}

func profileHash(profile model.ApplicationProfile) [32]byte {
	payload := fmt.Sprintf("%d|%s|%d|%s|%d|%s|%.2f",
		profile.Age, profile.AnnualSalary.String(), profile.CreditScore,
		profile.LoanAmount.String(), profile.ExistingLoans,
		profile.MonthlyIncome.String(), profile.EmploymentYears,
	)
	return sha256.Sum256([]byte(payload))
}

// UnavailablePredictor is a development adapter for running without any
// inference backend: it reports the signal as absent on every call, which
// routes clean applications to manual review.
type UnavailablePredictor struct{}

// NewUnavailablePredictor creates the always-absent predictor.
func NewUnavailablePredictor() *UnavailablePredictor {
	return &UnavailablePredictor{}
}

// Predict implements port.Predictor.
func (p *UnavailablePredictor) Predict(_ context.Context, _ model.ApplicationProfile) (model.PredictionOutcome, error) {
	return model.PredictionOutcome{}, port.ErrPredictorUnavailable
}
