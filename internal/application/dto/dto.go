package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ApplyLoanRequest carries the intake form for a new loan application.
type ApplyLoanRequest struct {
	Name                 string          `json:"name"`
	Age                  int             `json:"age"`
	Salary               decimal.Decimal `json:"salary"`
	CreditScore          int             `json:"credit_score"`
	LoanAmount           decimal.Decimal `json:"loan_amount"`
	ExistingLoans        int             `json:"existing_loans"`
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	EmploymentYears      float64         `json:"employment_years"`
	PreferredTenureYears int             `json:"preferred_tenure_years,omitempty"`
}

// GetDecisionRequest identifies an application whose decision to retrieve.
type GetDecisionRequest struct {
	ApplicationID string `json:"application_id"`
}

// GetCustomerLoansRequest identifies a customer whose history to retrieve.
type GetCustomerLoansRequest struct {
	CustomerID string `json:"customer_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanTermsResponse is the external representation of offered terms.
type LoanTermsResponse struct {
	ApprovedAmount    decimal.Decimal `json:"approved_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TenureMonths      int             `json:"tenure_months"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	DebtToIncomeRatio decimal.Decimal `json:"debt_to_income_ratio"`
}

// RuleOutcomeResponse is a single eligibility check result.
type RuleOutcomeResponse struct {
	Name      string  `json:"name"`
	Passed    bool    `json:"passed"`
	Value     float64 `json:"value"`
	Threshold string  `json:"threshold"`
	Message   string  `json:"message"`
}

// RiskFactorsResponse carries the diagnostic factor scores.
type RiskFactorsResponse struct {
	CreditScore     float64 `json:"credit_score"`
	IncomeStability float64 `json:"income_stability"`
	DebtBurden      float64 `json:"debt_burden"`
	Employment      float64 `json:"employment"`
	LoanSize        float64 `json:"loan_size"`
	Age             float64 `json:"age"`
	Overall         float64 `json:"overall"`
}

// ModelPredictionResponse is one sub-model's vote.
type ModelPredictionResponse struct {
	ModelName   string  `json:"model_name"`
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
}

// DecisionResponse is the external representation of a loan decision.
// Diagnostic fields are populated only when the decision was just computed;
// lookups of stored decisions carry the persisted core fields.
type DecisionResponse struct {
	ApplicationID string                    `json:"application_id"`
	CustomerID    string                    `json:"customer_id"`
	Status        string                    `json:"status"`
	RiskCategory  string                    `json:"risk_category,omitempty"`
	Reason        string                    `json:"reason"`
	Terms         *LoanTermsResponse        `json:"terms,omitempty"`
	RulesPassed   []RuleOutcomeResponse     `json:"rules_passed,omitempty"`
	RulesFailed   []RuleOutcomeResponse     `json:"rules_failed,omitempty"`
	RiskFactors   *RiskFactorsResponse      `json:"risk_factors,omitempty"`
	Predictions   []ModelPredictionResponse `json:"predictions,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// ApplicationSummaryResponse is one row of a customer's loan history.
type ApplicationSummaryResponse struct {
	ApplicationID string          `json:"application_id"`
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	Status        string          `json:"status"`
	RiskCategory  string          `json:"risk_category,omitempty"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CustomerLoanHistoryResponse is the external representation of a customer's
// application history.
type CustomerLoanHistoryResponse struct {
	CustomerID   string                       `json:"customer_id"`
	Name         string                       `json:"name"`
	CreditScore  int                          `json:"credit_score"`
	Applications []ApplicationSummaryResponse `json:"applications"`
}
