package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/dto"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/usecase"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

func approvedApplication(id string) model.LoanApplication {
	now := time.Now().UTC()
	return model.ReconstructLoanApplication(
		id, "cust-001",
		model.ApplicationProfile{
			Age:             35,
			AnnualSalary:    decimal.NewFromInt(85_000),
			CreditScore:     750,
			LoanAmount:      decimal.NewFromInt(200_000),
			ExistingLoans:   1,
			MonthlyIncome:   decimal.NewFromInt(7_083),
			EmploymentYears: 8,
		},
		valueobject.DecisionStatusApproved,
		valueobject.RiskCategoryLow,
		"approved with model consensus (average probability 0.90)",
		nil, 1, now, now,
	)
}

func approvedTerms() model.LoanTerms {
	return model.LoanTerms{
		ApprovedAmount:    decimal.NewFromInt(200_000),
		InterestRate:      decimal.NewFromFloat(9.0),
		TenureMonths:      240,
		MonthlyPayment:    decimal.NewFromFloat(1799.45),
		DebtToIncomeRatio: decimal.NewFromFloat(0.254),
	}
}

func TestGetDecision_Execute(t *testing.T) {
	const cacheTTL = 5 * time.Minute

	t.Run("returns a stored approved decision with terms and caches it", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, id string) (model.LoanApplication, error) {
				return approvedApplication(id), nil
			},
		}
		termsRepo := &mockLoanTermsRepository{
			findByApplicationIDFunc: func(_ context.Context, _ string) (model.LoanTerms, error) {
				return approvedTerms(), nil
			},
		}
		cache := &mockDecisionCache{}

		uc := usecase.NewGetDecisionUseCase(appRepo, termsRepo, &mockPredictionRepository{}, cache, cacheTTL, testLogger())
		resp, err := uc.Execute(context.Background(), dto.GetDecisionRequest{ApplicationID: "app-001"})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "LOW", resp.RiskCategory)
		require.NotNil(t, resp.Terms)
		assert.Equal(t, 240, resp.Terms.TenureMonths)
		assert.Contains(t, cache.entries, "decision:app-001")
	})

	t.Run("serves repeat lookups from the cache", func(t *testing.T) {
		cached, err := json.Marshal(dto.DecisionResponse{
			ApplicationID: "app-002",
			Status:        "REJECTED",
			Reason:        "critical rule failures",
		})
		require.NoError(t, err)

		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.LoanApplication, error) {
				t.Fatal("repository must not be hit on a cache hit")
				return model.LoanApplication{}, nil
			},
		}
		cache := &mockDecisionCache{entries: map[string]string{"decision:app-002": string(cached)}}

		uc := usecase.NewGetDecisionUseCase(appRepo, &mockLoanTermsRepository{}, &mockPredictionRepository{}, cache, cacheTTL, testLogger())
		resp, err := uc.Execute(context.Background(), dto.GetDecisionRequest{ApplicationID: "app-002"})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
	})

	t.Run("skips the terms lookup for non-approved decisions", func(t *testing.T) {
		now := time.Now().UTC()
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, id string) (model.LoanApplication, error) {
				return model.ReconstructLoanApplication(
					id, "cust-001", model.ApplicationProfile{},
					valueobject.DecisionStatusRejected, valueobject.RiskCategory{},
					"critical rule failures", nil, 1, now, now,
				), nil
			},
		}
		termsRepo := &mockLoanTermsRepository{
			findByApplicationIDFunc: func(_ context.Context, _ string) (model.LoanTerms, error) {
				t.Fatal("terms must not be looked up for rejected applications")
				return model.LoanTerms{}, nil
			},
		}

		uc := usecase.NewGetDecisionUseCase(appRepo, termsRepo, &mockPredictionRepository{}, nil, cacheTTL, testLogger())
		resp, err := uc.Execute(context.Background(), dto.GetDecisionRequest{ApplicationID: "app-003"})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Empty(t, resp.RiskCategory)
		assert.Nil(t, resp.Terms)
	})

	t.Run("works without a cache", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, id string) (model.LoanApplication, error) {
				return approvedApplication(id), nil
			},
		}
		uc := usecase.NewGetDecisionUseCase(appRepo, &mockLoanTermsRepository{}, &mockPredictionRepository{}, nil, cacheTTL, testLogger())

		resp, err := uc.Execute(context.Background(), dto.GetDecisionRequest{ApplicationID: "app-004"})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Nil(t, resp.Terms) // terms repo has no record
	})

	t.Run("unknown application is an error", func(t *testing.T) {
		uc := usecase.NewGetDecisionUseCase(&mockLoanApplicationRepository{}, &mockLoanTermsRepository{}, &mockPredictionRepository{}, nil, cacheTTL, testLogger())

		_, err := uc.Execute(context.Background(), dto.GetDecisionRequest{ApplicationID: "missing"})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("empty application ID is an error", func(t *testing.T) {
		uc := usecase.NewGetDecisionUseCase(&mockLoanApplicationRepository{}, &mockLoanTermsRepository{}, &mockPredictionRepository{}, nil, cacheTTL, testLogger())

		_, err := uc.Execute(context.Background(), dto.GetDecisionRequest{})

		require.Error(t, err)
	})
}
