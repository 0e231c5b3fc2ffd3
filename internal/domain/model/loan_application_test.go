package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

func validProfile() model.ApplicationProfile {
	return model.ApplicationProfile{
		Age:             35,
		AnnualSalary:    decimal.NewFromInt(85_000),
		CreditScore:     750,
		LoanAmount:      decimal.NewFromInt(200_000),
		ExistingLoans:   1,
		MonthlyIncome:   decimal.NewFromInt(7_083),
		EmploymentYears: 8,
	}
}

func sampleTerms() model.LoanTerms {
	return model.LoanTerms{
		ApprovedAmount:    decimal.NewFromInt(200_000),
		InterestRate:      decimal.NewFromFloat(9.0),
		TenureMonths:      240,
		MonthlyPayment:    decimal.NewFromFloat(1799.45),
		DebtToIncomeRatio: decimal.NewFromFloat(0.2540),
	}
}

func TestNewLoanApplication(t *testing.T) {
	now := time.Now()

	t.Run("creates a pending application with a received event", func(t *testing.T) {
		app, err := model.NewLoanApplication("cust-001", validProfile(), now)
		require.NoError(t, err)

		assert.NotEmpty(t, app.ID())
		assert.Equal(t, "cust-001", app.CustomerID())
		assert.Equal(t, valueobject.DecisionStatusPending, app.Status())
		assert.True(t, app.RiskCategory().IsZero())
		assert.Nil(t, app.Terms())
		assert.Equal(t, 1, app.Version())
		require.Len(t, app.DomainEvents(), 1)
		assert.Equal(t, "lending.application.received", app.DomainEvents()[0].EventType())
	})

	t.Run("requires a customer ID", func(t *testing.T) {
		_, err := model.NewLoanApplication("", validProfile(), now)
		require.Error(t, err)
	})

	t.Run("rejects an invalid profile", func(t *testing.T) {
		profile := validProfile()
		profile.CreditScore = 200
		_, err := model.NewLoanApplication("cust-001", profile, now)
		require.Error(t, err)
	})
}

func TestLoanApplicationTransitions(t *testing.T) {
	now := time.Now()

	newPending := func(t *testing.T) model.LoanApplication {
		t.Helper()
		app, err := model.NewLoanApplication("cust-001", validProfile(), now)
		require.NoError(t, err)
		return app
	}

	t.Run("approve attaches terms and emits an event", func(t *testing.T) {
		app := newPending(t)
		approved, err := app.Approve(valueobject.RiskCategoryLow, "approved with model consensus", sampleTerms(), now.Add(time.Second))
		require.NoError(t, err)

		assert.Equal(t, valueobject.DecisionStatusApproved, approved.Status())
		assert.Equal(t, valueobject.RiskCategoryLow, approved.RiskCategory())
		require.NotNil(t, approved.Terms())
		assert.Equal(t, 240, approved.Terms().TenureMonths)
		require.Len(t, approved.DomainEvents(), 2)
		assert.Equal(t, "lending.application.approved", approved.DomainEvents()[1].EventType())

		// Original copy is untouched.
		assert.Equal(t, valueobject.DecisionStatusPending, app.Status())
		assert.Nil(t, app.Terms())
	})

	t.Run("reject records the reason", func(t *testing.T) {
		app := newPending(t)
		rejected, err := app.Reject(valueobject.RiskCategoryHigh, "critical rule failures: salary below minimum", now)
		require.NoError(t, err)

		assert.Equal(t, valueobject.DecisionStatusRejected, rejected.Status())
		assert.Contains(t, rejected.DecisionReason(), "salary below minimum")
		assert.Nil(t, rejected.Terms())
		require.Len(t, rejected.DomainEvents(), 2)
		assert.Equal(t, "lending.application.rejected", rejected.DomainEvents()[1].EventType())
	})

	t.Run("flag for review assigns a category", func(t *testing.T) {
		app := newPending(t)
		flagged, err := app.FlagForReview(valueobject.RiskCategoryMedium, "external signal unavailable; requires manual review", now)
		require.NoError(t, err)

		assert.Equal(t, valueobject.DecisionStatusManualReview, flagged.Status())
		assert.Equal(t, valueobject.RiskCategoryMedium, flagged.RiskCategory())
		require.Len(t, flagged.DomainEvents(), 2)
		assert.Equal(t, "lending.application.flagged_for_review", flagged.DomainEvents()[1].EventType())
	})

	t.Run("terminal states cannot transition again", func(t *testing.T) {
		app := newPending(t)
		approved, err := app.Approve(valueobject.RiskCategoryLow, "ok", sampleTerms(), now)
		require.NoError(t, err)

		_, err = approved.Reject(valueobject.RiskCategoryHigh, "nope", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		_, err = approved.Approve(valueobject.RiskCategoryLow, "again", sampleTerms(), now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		_, err = approved.FlagForReview(valueobject.RiskCategoryMedium, "review", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("clear events empties the list without losing state", func(t *testing.T) {
		app := newPending(t)
		approved, err := app.Approve(valueobject.RiskCategoryLow, "ok", sampleTerms(), now)
		require.NoError(t, err)

		cleared := approved.ClearEvents()
		assert.Empty(t, cleared.DomainEvents())
		assert.Equal(t, valueobject.DecisionStatusApproved, cleared.Status())
	})

	t.Run("terms accessor returns a copy", func(t *testing.T) {
		app := newPending(t)
		approved, err := app.Approve(valueobject.RiskCategoryLow, "ok", sampleTerms(), now)
		require.NoError(t, err)

		terms := approved.Terms()
		terms.TenureMonths = 1
		assert.Equal(t, 240, approved.Terms().TenureMonths)
	})
}

func TestApplicationProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.ApplicationProfile)
		wantErr string
	}{
		{"valid", func(_ *model.ApplicationProfile) {}, ""},
		{"non-positive age", func(p *model.ApplicationProfile) { p.Age = 0 }, "age"},
		{"negative salary", func(p *model.ApplicationProfile) { p.AnnualSalary = decimal.NewFromInt(-1) }, "salary"},
		{"credit score too low", func(p *model.ApplicationProfile) { p.CreditScore = 299 }, "credit score"},
		{"credit score too high", func(p *model.ApplicationProfile) { p.CreditScore = 851 }, "credit score"},
		{"non-positive loan amount", func(p *model.ApplicationProfile) { p.LoanAmount = decimal.Zero }, "loan amount"},
		{"negative existing loans", func(p *model.ApplicationProfile) { p.ExistingLoans = -1 }, "existing loans"},
		{"non-positive monthly income", func(p *model.ApplicationProfile) { p.MonthlyIncome = decimal.Zero }, "monthly income"},
		{"negative employment years", func(p *model.ApplicationProfile) { p.EmploymentYears = -0.1 }, "employment"},
		{"negative preferred tenure", func(p *model.ApplicationProfile) { p.PreferredTenureYears = -1 }, "preferred tenure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(&profile)
			err := profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
