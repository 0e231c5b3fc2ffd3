package service

import (
	"fmt"
	"strings"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
)

// ---------------------------------------------------------------------------
// RuleEngine - fixed battery of eligibility checks
// ---------------------------------------------------------------------------

// Rule names. Rules 1-3 are critical: any one of them failing rejects the
// application outright. The remaining four only flag caution.
const (
	RuleMinimumSalary      = "minimum_salary"
	RuleMinimumCreditScore = "minimum_credit_score"
	RuleDebtToIncomeRatio  = "debt_to_income_ratio"
	RuleAgeRequirements    = "age_requirements"
	RuleEmploymentHistory  = "employment_history"
	RuleLoanAmountLimits   = "loan_amount_limits"
	RuleLoanToIncomeRatio  = "loan_to_income_ratio"
)

var criticalRules = map[string]bool{
	RuleMinimumSalary:      true,
	RuleMinimumCreditScore: true,
	RuleDebtToIncomeRatio:  true,
}

// RuleDecision is the verdict of the rule battery.
type RuleDecision string

const (
	// RuleDecisionProceed means the application advances to risk scoring,
	// possibly with non-critical failures noted.
	RuleDecisionProceed RuleDecision = "proceed"
	// RuleDecisionRejected means a critical rule failed and the application
	// is rejected without scoring.
	RuleDecisionRejected RuleDecision = "rejected"
)

// RuleOutcome is the result of a single eligibility check.
type RuleOutcome struct {
	Name      string
	Passed    bool
	Value     float64
	Threshold string
	Message   string
}

// RuleEngineResult aggregates all seven rule outcomes.
type RuleEngineResult struct {
	AllPassed bool
	Passed    []RuleOutcome
	Failed    []RuleOutcome
	Decision  RuleDecision
	Reason    string
}

// RuleConfig holds the eligibility thresholds. The first three are
// environment-configurable; the rest are fixed business constants.
type RuleConfig struct {
	MinSalary            float64
	MinCreditScore       int
	MaxDebtToIncomeRatio float64
	MinAge               int
	MaxAge               int
	MinEmploymentYears   float64
	MaxLoanToIncomeRatio float64
	MinLoanAmount        float64
	MaxLoanAmount        float64
}

// DefaultRuleConfig returns the standard thresholds.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		MinSalary:            30_000,
		MinCreditScore:       600,
		MaxDebtToIncomeRatio: 0.4,
		MinAge:               18,
		MaxAge:               75,
		MinEmploymentYears:   0.5,
		MaxLoanToIncomeRatio: 5.0,
		MinLoanAmount:        1_000,
		MaxLoanAmount:        2_000_000,
	}
}

// RuleEngine evaluates the fixed eligibility checks against one application.
// It is a pure function of its inputs and configuration.
type RuleEngine struct {
	cfg RuleConfig
}

// NewRuleEngine returns an engine with the given thresholds.
func NewRuleEngine(cfg RuleConfig) *RuleEngine {
	return &RuleEngine{cfg: cfg}
}

// Evaluate runs all seven checks. Every rule is always evaluated (no
// short-circuit) so the caller gets the complete diagnostic list.
func (e *RuleEngine) Evaluate(profile model.ApplicationProfile) RuleEngineResult {
	outcomes := []RuleOutcome{
		e.checkMinimumSalary(profile),
		e.checkMinimumCreditScore(profile),
		e.checkDebtToIncomeRatio(profile),
		e.checkAgeRequirements(profile),
		e.checkEmploymentHistory(profile),
		e.checkLoanAmountLimits(profile),
		e.checkLoanToIncomeRatio(profile),
	}

	var passed, failed []RuleOutcome
	for _, o := range outcomes {
		if o.Passed {
			passed = append(passed, o)
		} else {
			failed = append(failed, o)
		}
	}

	result := RuleEngineResult{
		AllPassed: len(failed) == 0,
		Passed:    passed,
		Failed:    failed,
	}

	var criticalMessages []string
	for _, o := range failed {
		if criticalRules[o.Name] {
			criticalMessages = append(criticalMessages, o.Message)
		}
	}

	switch {
	case len(criticalMessages) > 0:
		result.Decision = RuleDecisionRejected
		result.Reason = "critical rule failures: " + strings.Join(criticalMessages, "; ")
	case result.AllPassed:
		result.Decision = RuleDecisionProceed
		result.Reason = "all eligibility checks passed; proceeding to risk scoring"
	default:
		result.Decision = RuleDecisionProceed
		result.Reason = "non-critical rule failures; proceeding to risk scoring with caution"
	}

	return result
}

func (e *RuleEngine) checkMinimumSalary(profile model.ApplicationProfile) RuleOutcome {
	salary := profile.AnnualSalary.InexactFloat64()
	passed := salary >= e.cfg.MinSalary
	return RuleOutcome{
		Name:      RuleMinimumSalary,
		Passed:    passed,
		Value:     salary,
		Threshold: fmt.Sprintf("%.2f", e.cfg.MinSalary),
		Message:   fmt.Sprintf("salary %.2f %s minimum requirement of %.2f", salary, meetsOrBelow(passed), e.cfg.MinSalary),
	}
}

func (e *RuleEngine) checkMinimumCreditScore(profile model.ApplicationProfile) RuleOutcome {
	passed := profile.CreditScore >= e.cfg.MinCreditScore
	return RuleOutcome{
		Name:      RuleMinimumCreditScore,
		Passed:    passed,
		Value:     float64(profile.CreditScore),
		Threshold: fmt.Sprintf("%d", e.cfg.MinCreditScore),
		Message:   fmt.Sprintf("credit score %d %s minimum requirement of %d", profile.CreditScore, meetsOrBelow(passed), e.cfg.MinCreditScore),
	}
}

// checkDebtToIncomeRatio estimates the applicant's monthly debt as the
// payment on the requested amount (assumed 30-year loan at 5%) plus 500 per
// existing loan, and compares the ratio against the ceiling.
func (e *RuleEngine) checkDebtToIncomeRatio(profile model.ApplicationProfile) RuleOutcome {
	threshold := fmt.Sprintf("%.2f", e.cfg.MaxDebtToIncomeRatio)

	monthlyIncome := profile.MonthlyIncome.InexactFloat64()
	if monthlyIncome <= 0 {
		return RuleOutcome{
			Name:      RuleDebtToIncomeRatio,
			Passed:    false,
			Value:     0,
			Threshold: threshold,
			Message:   "invalid monthly income",
		}
	}

	estimatedPayment := annuityPayment(profile.LoanAmount.InexactFloat64(), 5.0, 360)
	existingDebt := float64(profile.ExistingLoans) * 500
	ratio := (estimatedPayment + existingDebt) / monthlyIncome

	passed := ratio <= e.cfg.MaxDebtToIncomeRatio
	return RuleOutcome{
		Name:      RuleDebtToIncomeRatio,
		Passed:    passed,
		Value:     ratio,
		Threshold: threshold,
		Message:   fmt.Sprintf("debt-to-income ratio %.2f %s maximum of %.2f", ratio, withinOrExceeds(passed), e.cfg.MaxDebtToIncomeRatio),
	}
}

func (e *RuleEngine) checkAgeRequirements(profile model.ApplicationProfile) RuleOutcome {
	passed := profile.Age >= e.cfg.MinAge && profile.Age <= e.cfg.MaxAge
	return RuleOutcome{
		Name:      RuleAgeRequirements,
		Passed:    passed,
		Value:     float64(profile.Age),
		Threshold: fmt.Sprintf("%d-%d", e.cfg.MinAge, e.cfg.MaxAge),
		Message:   fmt.Sprintf("age %d %s acceptable range of %d-%d", profile.Age, withinOrOutside(passed), e.cfg.MinAge, e.cfg.MaxAge),
	}
}

func (e *RuleEngine) checkEmploymentHistory(profile model.ApplicationProfile) RuleOutcome {
	passed := profile.EmploymentYears >= e.cfg.MinEmploymentYears
	return RuleOutcome{
		Name:      RuleEmploymentHistory,
		Passed:    passed,
		Value:     profile.EmploymentYears,
		Threshold: fmt.Sprintf("%.1f", e.cfg.MinEmploymentYears),
		Message:   fmt.Sprintf("employment history %.1f years %s minimum of %.1f years", profile.EmploymentYears, meetsOrBelow(passed), e.cfg.MinEmploymentYears),
	}
}

func (e *RuleEngine) checkLoanAmountLimits(profile model.ApplicationProfile) RuleOutcome {
	amount := profile.LoanAmount.InexactFloat64()
	passed := amount >= e.cfg.MinLoanAmount && amount <= e.cfg.MaxLoanAmount
	return RuleOutcome{
		Name:      RuleLoanAmountLimits,
		Passed:    passed,
		Value:     amount,
		Threshold: fmt.Sprintf("%.2f-%.2f", e.cfg.MinLoanAmount, e.cfg.MaxLoanAmount),
		Message:   fmt.Sprintf("loan amount %.2f %s acceptable range of %.2f-%.2f", amount, withinOrOutside(passed), e.cfg.MinLoanAmount, e.cfg.MaxLoanAmount),
	}
}

func (e *RuleEngine) checkLoanToIncomeRatio(profile model.ApplicationProfile) RuleOutcome {
	threshold := fmt.Sprintf("%.1f", e.cfg.MaxLoanToIncomeRatio)

	salary := profile.AnnualSalary.InexactFloat64()
	if salary <= 0 {
		return RuleOutcome{
			Name:      RuleLoanToIncomeRatio,
			Passed:    false,
			Value:     0,
			Threshold: threshold,
			Message:   "invalid annual salary",
		}
	}

	ratio := profile.LoanAmount.InexactFloat64() / salary
	passed := ratio <= e.cfg.MaxLoanToIncomeRatio
	return RuleOutcome{
		Name:      RuleLoanToIncomeRatio,
		Passed:    passed,
		Value:     ratio,
		Threshold: threshold,
		Message:   fmt.Sprintf("loan-to-income ratio %.1f %s maximum of %.1f", ratio, withinOrExceeds(passed), e.cfg.MaxLoanToIncomeRatio),
	}
}

func meetsOrBelow(passed bool) string {
	if passed {
		return "meets"
	}
	return "below"
}

func withinOrExceeds(passed bool) string {
	if passed {
		return "within"
	}
	return "exceeds"
}

func withinOrOutside(passed bool) string {
	if passed {
		return "within"
	}
	return "outside"
}
