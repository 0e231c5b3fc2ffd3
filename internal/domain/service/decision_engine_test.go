package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/service"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockPredictor struct {
	predictFunc func(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error)
}

func (m *mockPredictor) Predict(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error) {
	if m.predictFunc != nil {
		return m.predictFunc(ctx, profile)
	}
	return model.PredictionOutcome{}, port.ErrPredictorUnavailable
}

func approvingPredictor(probability float64, consensus bool) *mockPredictor {
	return &mockPredictor{
		predictFunc: func(_ context.Context, _ model.ApplicationProfile) (model.PredictionOutcome, error) {
			return model.PredictionOutcome{
				Decision:           model.PredictionApproved,
				Consensus:          consensus,
				AverageProbability: probability,
			}, nil
		},
	}
}

func newEngine(predictor port.Predictor) *service.DecisionEngine {
	return service.NewDecisionEngine(
		service.NewRuleEngine(service.DefaultRuleConfig()),
		service.NewRiskScorer(service.DefaultScorerConfig()),
		service.NewTermsCalculator(),
		predictor,
	)
}

// --- Tests ---

func TestDecisionEngine_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("critical rule failure rejects without scoring", func(t *testing.T) {
		engine := newEngine(approvingPredictor(0.9, true))
		profile := model.ApplicationProfile{
			Age:             25,
			AnnualSalary:    decimal.NewFromInt(25_000),
			CreditScore:     580,
			LoanAmount:      decimal.NewFromInt(300_000),
			ExistingLoans:   3,
			MonthlyIncome:   decimal.NewFromInt(2_083),
			EmploymentYears: 1,
		}

		result := engine.Evaluate(ctx, profile)

		assert.Equal(t, valueobject.DecisionStatusRejected, result.Status)
		assert.True(t, result.RiskCategory.IsZero())
		assert.Contains(t, result.Reason, "critical rule failures")
		assert.Nil(t, result.Terms)
		assert.Nil(t, result.RiskFactors)
		assert.Nil(t, result.Prediction)
	})

	t.Run("strong approving signal approves with low risk", func(t *testing.T) {
		engine := newEngine(approvingPredictor(0.9, true))

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusApproved, result.Status)
		assert.Equal(t, valueobject.RiskCategoryLow, result.RiskCategory)
		require.NotNil(t, result.Terms)
		assert.LessOrEqual(t, result.Terms.DebtToIncomeRatio.InexactFloat64(), 0.35+1e-4)
		assert.True(t, result.Terms.ApprovedAmount.LessThanOrEqual(decimal.NewFromInt(200_000)))
		require.NotNil(t, result.RiskFactors)
		assert.Positive(t, result.RiskFactors.Overall)
	})

	t.Run("moderate approving signal approves with medium risk", func(t *testing.T) {
		engine := newEngine(approvingPredictor(0.75, true))

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusApproved, result.Status)
		assert.Equal(t, valueobject.RiskCategoryMedium, result.RiskCategory)
		require.NotNil(t, result.Terms)
		assert.LessOrEqual(t, result.Terms.DebtToIncomeRatio.InexactFloat64(), 0.40+1e-4)
	})

	t.Run("confident rejecting signal rejects with high risk", func(t *testing.T) {
		predictor := &mockPredictor{
			predictFunc: func(_ context.Context, _ model.ApplicationProfile) (model.PredictionOutcome, error) {
				return model.PredictionOutcome{
					Decision:           model.PredictionRejected,
					Consensus:          true,
					AverageProbability: 0.2,
				}, nil
			},
		}
		engine := newEngine(predictor)

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusRejected, result.Status)
		assert.Equal(t, valueobject.RiskCategoryHigh, result.RiskCategory)
		assert.Nil(t, result.Terms)
	})

	t.Run("inconclusive signal routes to manual review", func(t *testing.T) {
		t.Run("medium risk above half probability", func(t *testing.T) {
			engine := newEngine(approvingPredictor(0.6, true))

			result := engine.Evaluate(ctx, passingProfile())

			assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
			assert.Equal(t, valueobject.RiskCategoryMedium, result.RiskCategory)
			assert.Contains(t, result.Reason, "manual review")
		})

		t.Run("high risk below half probability", func(t *testing.T) {
			engine := newEngine(approvingPredictor(0.35, false))

			result := engine.Evaluate(ctx, passingProfile())

			assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
			assert.Equal(t, valueobject.RiskCategoryHigh, result.RiskCategory)
		})

		t.Run("no consensus blocks approval", func(t *testing.T) {
			engine := newEngine(approvingPredictor(0.9, false))

			result := engine.Evaluate(ctx, passingProfile())

			assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
			assert.Nil(t, result.Terms)
		})
	})

	t.Run("absent signal with clean rules routes to manual review", func(t *testing.T) {
		engine := newEngine(nil)

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
		assert.Equal(t, valueobject.RiskCategoryMedium, result.RiskCategory)
		assert.Contains(t, result.Reason, "external signal unavailable")
		assert.Nil(t, result.Prediction)
	})

	t.Run("unavailable predictor is treated as absent", func(t *testing.T) {
		engine := newEngine(&mockPredictor{}) // always errors

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
		assert.Nil(t, result.Prediction)
	})

	t.Run("absent signal with non-critical failures rejects", func(t *testing.T) {
		engine := newEngine(nil)
		profile := passingProfile()
		profile.EmploymentYears = 0.3

		result := engine.Evaluate(ctx, profile)

		assert.Equal(t, valueobject.DecisionStatusRejected, result.Status)
		assert.Contains(t, result.Reason, "rule failures and external signal unavailable")
		assert.Nil(t, result.Terms)
	})

	t.Run("panicking collaborator degrades to manual review", func(t *testing.T) {
		predictor := &mockPredictor{
			predictFunc: func(_ context.Context, _ model.ApplicationProfile) (model.PredictionOutcome, error) {
				panic("inference backend exploded")
			},
		}
		engine := newEngine(predictor)

		result := engine.Evaluate(ctx, passingProfile())

		assert.Equal(t, valueobject.DecisionStatusManualReview, result.Status)
		assert.Equal(t, valueobject.RiskCategoryMedium, result.RiskCategory)
		assert.Contains(t, result.Reason, "internal error")
		assert.Contains(t, result.Reason, "inference backend exploded")
	})
}
