package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/service"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// ProcessLoanApplicationUseCase orchestrates the full intake-to-decision
// pipeline: customer resolution, application creation, decision evaluation,
// persistence and event publication.
type ProcessLoanApplicationUseCase struct {
	customerRepo   port.CustomerRepository
	appRepo        port.LoanApplicationRepository
	termsRepo      port.LoanTermsRepository
	predictionRepo port.PredictionRepository
	publisher      port.EventPublisher
	engine         *service.DecisionEngine
	logger         *slog.Logger
}

// NewProcessLoanApplicationUseCase wires dependencies.
func NewProcessLoanApplicationUseCase(
	customerRepo port.CustomerRepository,
	appRepo port.LoanApplicationRepository,
	termsRepo port.LoanTermsRepository,
	predictionRepo port.PredictionRepository,
	publisher port.EventPublisher,
	engine *service.DecisionEngine,
	logger *slog.Logger,
) *ProcessLoanApplicationUseCase {
	return &ProcessLoanApplicationUseCase{
		customerRepo:   customerRepo,
		appRepo:        appRepo,
		termsRepo:      termsRepo,
		predictionRepo: predictionRepo,
		publisher:      publisher,
		engine:         engine,
		logger:         logger,
	}
}

// Execute runs one application through the decision pipeline.
func (uc *ProcessLoanApplicationUseCase) Execute(
	ctx context.Context,
	req dto.ApplyLoanRequest,
) (dto.DecisionResponse, error) {
	now := time.Now().UTC()

	profile := model.ApplicationProfile{
		Age:                  req.Age,
		AnnualSalary:         req.Salary,
		CreditScore:          req.CreditScore,
		LoanAmount:           req.LoanAmount,
		ExistingLoans:        req.ExistingLoans,
		MonthlyIncome:        req.MonthlyIncome,
		EmploymentYears:      req.EmploymentYears,
		PreferredTenureYears: req.PreferredTenureYears,
	}

	// 1. Resolve or create the customer.
	customer, err := uc.resolveCustomer(ctx, req, now)
	if err != nil {
		return dto.DecisionResponse{}, err
	}

	// 2. Create the application aggregate.
	app, err := model.NewLoanApplication(customer.ID(), profile, now)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 3. Evaluate.
	result := uc.engine.Evaluate(ctx, profile)

	// 4. Apply the decision to the aggregate.
	switch {
	case result.Status.Equal(valueobject.DecisionStatusApproved):
		app, err = app.Approve(result.RiskCategory, result.Reason, *result.Terms, now)
	case result.Status.Equal(valueobject.DecisionStatusRejected):
		app, err = app.Reject(result.RiskCategory, result.Reason, now)
	default:
		app, err = app.FlagForReview(result.RiskCategory, result.Reason, now)
	}
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	if result.Terms != nil && result.Terms.MonthlyPayment.InexactFloat64() >= service.MaxMonthlyPayment {
		uc.logger.Warn("monthly payment capped at representable maximum",
			slog.String("application_id", app.ID()),
			slog.String("monthly_payment", result.Terms.MonthlyPayment.String()))
	}

	// 5. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("save application: %w", err)
	}
	if result.Terms != nil {
		if err := uc.termsRepo.Save(ctx, app.ID(), *result.Terms); err != nil {
			return dto.DecisionResponse{}, fmt.Errorf("save loan terms: %w", err)
		}
	}
	// Predictions are audit data; failing to store them must not void the decision.
	if result.Prediction != nil && len(result.Prediction.Models) > 0 {
		if err := uc.predictionRepo.Save(ctx, app.ID(), result.Prediction.Models); err != nil {
			uc.logger.Warn("store model predictions failed",
				slog.String("application_id", app.ID()),
				slog.String("error", err.Error()))
		}
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("loan application decided",
		slog.String("application_id", app.ID()),
		slog.String("customer_id", customer.ID()),
		slog.String("status", app.Status().String()),
		slog.String("risk_category", app.RiskCategory().String()))

	return toDecisionResponse(app, result), nil
}

// resolveCustomer finds an existing customer by the intake identity fields or
// creates a new record.
func (uc *ProcessLoanApplicationUseCase) resolveCustomer(
	ctx context.Context,
	req dto.ApplyLoanRequest,
	now time.Time,
) (model.Customer, error) {
	customer, err := uc.customerRepo.FindByDetails(ctx, req.Name, req.Age, req.CreditScore)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return model.Customer{}, fmt.Errorf("find customer: %w", err)
	}

	customer, err = model.NewCustomer(req.Name, req.Age, req.Salary, req.CreditScore, now)
	if err != nil {
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	if err := uc.customerRepo.Save(ctx, customer); err != nil {
		return model.Customer{}, fmt.Errorf("save customer: %w", err)
	}
	return customer, nil
}

func toDecisionResponse(app model.LoanApplication, result service.DecisionResult) dto.DecisionResponse {
	resp := dto.DecisionResponse{
		ApplicationID: app.ID(),
		CustomerID:    app.CustomerID(),
		Status:        app.Status().String(),
		RiskCategory:  app.RiskCategory().String(),
		Reason:        app.DecisionReason(),
		Terms:         toTermsResponse(app.Terms()),
		RulesPassed:   toRuleOutcomes(result.RuleResult.Passed),
		RulesFailed:   toRuleOutcomes(result.RuleResult.Failed),
		CreatedAt:     app.CreatedAt(),
		UpdatedAt:     app.UpdatedAt(),
	}

	if result.RiskFactors != nil {
		resp.RiskFactors = &dto.RiskFactorsResponse{
			CreditScore:     result.RiskFactors.CreditScore,
			IncomeStability: result.RiskFactors.IncomeStability,
			DebtBurden:      result.RiskFactors.DebtBurden,
			Employment:      result.RiskFactors.Employment,
			LoanSize:        result.RiskFactors.LoanSize,
			Age:             result.RiskFactors.Age,
			Overall:         result.RiskFactors.Overall,
		}
	}
	if result.Prediction != nil {
		resp.Predictions = toPredictionResponses(result.Prediction.Models)
	}
	return resp
}

func toTermsResponse(terms *model.LoanTerms) *dto.LoanTermsResponse {
	if terms == nil {
		return nil
	}
	return &dto.LoanTermsResponse{
		ApprovedAmount:    terms.ApprovedAmount,
		InterestRate:      terms.InterestRate,
		TenureMonths:      terms.TenureMonths,
		MonthlyPayment:    terms.MonthlyPayment,
		DebtToIncomeRatio: terms.DebtToIncomeRatio,
	}
}

func toRuleOutcomes(outcomes []service.RuleOutcome) []dto.RuleOutcomeResponse {
	if len(outcomes) == 0 {
		return nil
	}
	result := make([]dto.RuleOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		result[i] = dto.RuleOutcomeResponse{
			Name:      o.Name,
			Passed:    o.Passed,
			Value:     o.Value,
			Threshold: o.Threshold,
			Message:   o.Message,
		}
	}
	return result
}

func toPredictionResponses(models []model.ModelPrediction) []dto.ModelPredictionResponse {
	if len(models) == 0 {
		return nil
	}
	result := make([]dto.ModelPredictionResponse, len(models))
	for i, m := range models {
		result[i] = dto.ModelPredictionResponse{
			ModelName:   m.ModelName,
			Prediction:  m.Prediction,
			Probability: m.Probability,
			Confidence:  m.Confidence,
		}
	}
	return result
}
