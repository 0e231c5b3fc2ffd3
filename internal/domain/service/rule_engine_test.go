package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/service"
)

func passingProfile() model.ApplicationProfile {
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

func TestRuleEngine_Evaluate(t *testing.T) {
	engine := service.NewRuleEngine(service.DefaultRuleConfig())

	t.Run("clean profile passes all checks", func(t *testing.T) {
		result := engine.Evaluate(passingProfile())

		assert.True(t, result.AllPassed)
		assert.Len(t, result.Passed, 7)
		assert.Empty(t, result.Failed)
		assert.Equal(t, service.RuleDecisionProceed, result.Decision)
		assert.Contains(t, result.Reason, "all eligibility checks passed")
	})

	t.Run("critical failures reject outright", func(t *testing.T) {
		profile := model.ApplicationProfile{
			Age:             25,
			AnnualSalary:    decimal.NewFromInt(25_000),
			CreditScore:     580,
			LoanAmount:      decimal.NewFromInt(300_000),
			ExistingLoans:   3,
			MonthlyIncome:   decimal.NewFromInt(2_083),
			EmploymentYears: 1,
		}
		result := engine.Evaluate(profile)

		assert.False(t, result.AllPassed)
		assert.Equal(t, service.RuleDecisionRejected, result.Decision)
		assert.Contains(t, result.Reason, "critical rule failures")
		assert.Contains(t, result.Reason, "salary")
		assert.Contains(t, result.Reason, "credit score")

		failedNames := make(map[string]bool)
		for _, outcome := range result.Failed {
			failedNames[outcome.Name] = true
		}
		assert.True(t, failedNames[service.RuleMinimumSalary])
		assert.True(t, failedNames[service.RuleMinimumCreditScore])
		assert.True(t, failedNames[service.RuleDebtToIncomeRatio])
	})

	t.Run("non-critical failures still proceed", func(t *testing.T) {
		profile := passingProfile()
		profile.EmploymentYears = 0.3

		result := engine.Evaluate(profile)

		assert.False(t, result.AllPassed)
		assert.Equal(t, service.RuleDecisionProceed, result.Decision)
		assert.Contains(t, result.Reason, "non-critical rule failures")
		require.Len(t, result.Failed, 1)
		assert.Equal(t, service.RuleEmploymentHistory, result.Failed[0].Name)
	})

	t.Run("age outside the band is non-critical", func(t *testing.T) {
		profile := passingProfile()
		profile.Age = 80

		result := engine.Evaluate(profile)

		assert.Equal(t, service.RuleDecisionProceed, result.Decision)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, service.RuleAgeRequirements, result.Failed[0].Name)
	})

	t.Run("loan amount bounds", func(t *testing.T) {
		tests := []struct {
			name   string
			amount int64
			passed bool
		}{
			{"at lower bound", 1_000, true},
			{"below lower bound", 999, false},
			{"at upper bound", 2_000_000, true},
			{"above upper bound", 2_000_001, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := passingProfile()
				profile.AnnualSalary = decimal.NewFromInt(1_000_000)
				profile.MonthlyIncome = decimal.NewFromInt(83_333)
				profile.LoanAmount = decimal.NewFromInt(tt.amount)

				result := engine.Evaluate(profile)
				var found *service.RuleOutcome
				for i := range result.Passed {
					if result.Passed[i].Name == service.RuleLoanAmountLimits {
						found = &result.Passed[i]
					}
				}
				for i := range result.Failed {
					if result.Failed[i].Name == service.RuleLoanAmountLimits {
						found = &result.Failed[i]
					}
				}
				require.NotNil(t, found)
				assert.Equal(t, tt.passed, found.Passed)
				// The bound check is non-critical: an otherwise strong
				// profile still proceeds to risk scoring.
				assert.Equal(t, service.RuleDecisionProceed, result.Decision)
			})
		}
	})

	t.Run("non-positive monthly income fails the debt ratio check", func(t *testing.T) {
		profile := passingProfile()
		profile.MonthlyIncome = decimal.Zero

		result := engine.Evaluate(profile)

		assert.Equal(t, service.RuleDecisionRejected, result.Decision)
		var dtiOutcome *service.RuleOutcome
		for i := range result.Failed {
			if result.Failed[i].Name == service.RuleDebtToIncomeRatio {
				dtiOutcome = &result.Failed[i]
			}
		}
		require.NotNil(t, dtiOutcome)
		assert.Zero(t, dtiOutcome.Value)
		assert.Equal(t, "invalid monthly income", dtiOutcome.Message)
	})

	t.Run("excessive loan-to-income is non-critical", func(t *testing.T) {
		profile := passingProfile()
		profile.LoanAmount = decimal.NewFromInt(500_000)
		profile.MonthlyIncome = decimal.NewFromInt(20_000) // keeps DTI within bounds

		result := engine.Evaluate(profile)

		assert.Equal(t, service.RuleDecisionProceed, result.Decision)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, service.RuleLoanToIncomeRatio, result.Failed[0].Name)
	})
}
