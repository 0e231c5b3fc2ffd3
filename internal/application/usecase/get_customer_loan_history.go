package usecase

import (
	"context"
	"fmt"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
)

// GetCustomerLoanHistoryUseCase lists all applications a customer has filed.
type GetCustomerLoanHistoryUseCase struct {
	customerRepo port.CustomerRepository
	appRepo      port.LoanApplicationRepository
}

// NewGetCustomerLoanHistoryUseCase wires dependencies.
func NewGetCustomerLoanHistoryUseCase(
	customerRepo port.CustomerRepository,
	appRepo port.LoanApplicationRepository,
) *GetCustomerLoanHistoryUseCase {
	return &GetCustomerLoanHistoryUseCase{
		customerRepo: customerRepo,
		appRepo:      appRepo,
	}
}

// Execute returns the customer's application history, newest first as
// returned by the repository.
func (uc *GetCustomerLoanHistoryUseCase) Execute(
	ctx context.Context,
	req dto.GetCustomerLoansRequest,
) (dto.CustomerLoanHistoryResponse, error) {
	if req.CustomerID == "" {
		return dto.CustomerLoanHistoryResponse{}, fmt.Errorf("customer ID is required")
	}

	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CustomerLoanHistoryResponse{}, fmt.Errorf("find customer: %w", err)
	}

	apps, err := uc.appRepo.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return dto.CustomerLoanHistoryResponse{}, fmt.Errorf("find applications: %w", err)
	}

	summaries := make([]dto.ApplicationSummaryResponse, len(apps))
	for i, app := range apps {
		summaries[i] = dto.ApplicationSummaryResponse{
			ApplicationID: app.ID(),
			LoanAmount:    app.Profile().LoanAmount,
			Status:        app.Status().String(),
			RiskCategory:  app.RiskCategory().String(),
			Reason:        app.DecisionReason(),
			CreatedAt:     app.CreatedAt(),
		}
	}

	return dto.CustomerLoanHistoryResponse{
		CustomerID:   customer.ID(),
		Name:         customer.Name(),
		CreditScore:  customer.CreditScore(),
		Applications: summaries,
	}, nil
}
