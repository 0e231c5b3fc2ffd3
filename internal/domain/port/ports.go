package port

import (
	"context"
	"errors"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/event"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository persists and retrieves customers.
type CustomerRepository interface {
	Save(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id string) (model.Customer, error)
	// FindByDetails locates an existing customer by the identity fields the
	// intake form carries (name, age, credit score).
	FindByDetails(ctx context.Context, name string, age, creditScore int) (model.Customer, error)
}

// LoanApplicationRepository persists and retrieves loan applications.
type LoanApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.LoanApplication, error)
}

// LoanTermsRepository persists and retrieves offered loan terms.
type LoanTermsRepository interface {
	Save(ctx context.Context, applicationID string, terms model.LoanTerms) error
	FindByApplicationID(ctx context.Context, applicationID string) (model.LoanTerms, error)
}

// PredictionRepository persists the sub-model predictions attached to an
// application for later audit.
type PredictionRepository interface {
	Save(ctx context.Context, applicationID string, predictions []model.ModelPrediction) error
	FindByApplicationID(ctx context.Context, applicationID string) ([]model.ModelPrediction, error)
}

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// ErrPredictorUnavailable signals that the external predictive service could
// not produce a signal. The decision engine treats it (and any other
// predictor error) as the absent-signal case, never as a fatal failure.
var ErrPredictorUnavailable = errors.New("predictor unavailable")

// Predictor obtains an external predictive signal for an application profile.
// Implementations may be remote inference services or local stubs.
type Predictor interface {
	Predict(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error)
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// DecisionCache stores serialized decision payloads for repeat lookups.
type DecisionCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
