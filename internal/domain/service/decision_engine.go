package service

import (
	"context"
	"fmt"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DecisionEngine - combines rules, risk scoring and the predictive signal
// ---------------------------------------------------------------------------

// Probability bounds for the predictive signal.
const (
	approvalProbabilityFloor   = 0.70
	lowRiskProbabilityFloor    = 0.85
	rejectionProbabilityCeil   = 0.30
	mediumReviewProbabilityMin = 0.50
)

// DecisionResult is the engine's complete verdict on one application.
type DecisionResult struct {
	Status valueobject.DecisionStatus
	// RiskCategory is zero when the application was rejected on rules alone.
	RiskCategory valueobject.RiskCategory
	Reason       string
	// Terms is set only when Status is APPROVED.
	Terms      *model.LoanTerms
	RuleResult RuleEngineResult
	// RiskFactors are diagnostic; nil when scoring never ran.
	RiskFactors *RiskFactors
	// Prediction is the external signal, nil when absent or unavailable.
	Prediction *model.PredictionOutcome
}

// DecisionEngine orchestrates one evaluation. It is a pure computation over
// the profile and the (optional) predictive signal; the predictor is the only
// collaborator that may block, and any error from it is treated as the
// absent-signal case.
type DecisionEngine struct {
	rules     *RuleEngine
	scorer    *RiskScorer
	terms     *TermsCalculator
	predictor port.Predictor // may be nil
}

// NewDecisionEngine wires the engine. A nil predictor is valid and routes
// every evaluation through the absent-signal branch.
func NewDecisionEngine(rules *RuleEngine, scorer *RiskScorer, terms *TermsCalculator, predictor port.Predictor) *DecisionEngine {
	return &DecisionEngine{
		rules:     rules,
		scorer:    scorer,
		terms:     terms,
		predictor: predictor,
	}
}

// Evaluate runs the full decision pipeline. It always terminates with a
// decision: any unexpected panic downgrades to MANUAL_REVIEW rather than
// crashing the caller.
func (e *DecisionEngine) Evaluate(ctx context.Context, profile model.ApplicationProfile) (result DecisionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = DecisionResult{
				Status:       valueobject.DecisionStatusManualReview,
				RiskCategory: valueobject.RiskCategoryMedium,
				Reason:       fmt.Sprintf("internal error during decision evaluation: %v", r),
			}
		}
	}()

	ruleResult := e.rules.Evaluate(profile)
	result.RuleResult = ruleResult

	if ruleResult.Decision == RuleDecisionRejected {
		result.Status = valueobject.DecisionStatusRejected
		result.Reason = ruleResult.Reason
		return result
	}

	signal := e.obtainSignal(ctx, profile)
	result.Prediction = signal

	_, factors := e.scorer.Score(profile, signal)
	result.RiskFactors = &factors

	if signal == nil {
		if ruleResult.AllPassed {
			result.Status = valueobject.DecisionStatusManualReview
			result.RiskCategory = valueobject.RiskCategoryMedium
			result.Reason = "external signal unavailable; requires manual review"
		} else {
			result.Status = valueobject.DecisionStatusRejected
			result.Reason = "rule failures and external signal unavailable"
		}
		return result
	}

	switch {
	case signal.Decision == model.PredictionApproved && signal.Consensus && signal.AverageProbability >= approvalProbabilityFloor:
		result.Status = valueobject.DecisionStatusApproved
		if signal.AverageProbability >= lowRiskProbabilityFloor {
			result.RiskCategory = valueobject.RiskCategoryLow
		} else {
			result.RiskCategory = valueobject.RiskCategoryMedium
		}
		result.Reason = fmt.Sprintf("approved with model consensus (average probability %.2f)", signal.AverageProbability)

	case signal.Decision == model.PredictionRejected && signal.Consensus && signal.AverageProbability <= rejectionProbabilityCeil:
		result.Status = valueobject.DecisionStatusRejected
		result.RiskCategory = valueobject.RiskCategoryHigh
		result.Reason = fmt.Sprintf("rejected with model consensus (average probability %.2f)", signal.AverageProbability)

	default:
		result.Status = valueobject.DecisionStatusManualReview
		if signal.AverageProbability >= mediumReviewProbabilityMin {
			result.RiskCategory = valueobject.RiskCategoryMedium
		} else {
			result.RiskCategory = valueobject.RiskCategoryHigh
		}
		result.Reason = fmt.Sprintf("inconclusive model signal (consensus=%t, average probability %.2f); requires manual review", signal.Consensus, signal.AverageProbability)
	}

	if result.Status.Equal(valueobject.DecisionStatusApproved) {
		terms, err := e.terms.Calculate(profile, result.RiskCategory)
		if err != nil {
			result.Status = valueobject.DecisionStatusManualReview
			result.RiskCategory = valueobject.RiskCategoryMedium
			result.Reason = fmt.Sprintf("internal error during decision evaluation: %v", err)
			return result
		}
		result.Terms = &terms
	}

	return result
}

// obtainSignal asks the predictor for an outcome, collapsing every failure
// mode (no predictor configured, unavailable, transport error) into absence.
func (e *DecisionEngine) obtainSignal(ctx context.Context, profile model.ApplicationProfile) *model.PredictionOutcome {
	if e.predictor == nil {
		return nil
	}
	outcome, err := e.predictor.Predict(ctx, profile)
	if err != nil {
		return nil
	}
	return &outcome
}
