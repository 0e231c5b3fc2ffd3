package service

import (
	"math"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RiskScorer - weighted multi-factor composite score
// ---------------------------------------------------------------------------

// RiskFactors holds the six factor scores (each 0-100) and the weighted
// composite. Higher is better.
type RiskFactors struct {
	CreditScore     float64
	IncomeStability float64
	DebtBurden      float64
	Employment      float64
	LoanSize        float64
	Age             float64
	Overall         float64
}

// Factor weights; they sum to 1.0.
const (
	weightCreditScore     = 0.30
	weightIncomeStability = 0.20
	weightDebtBurden      = 0.20
	weightEmployment      = 0.15
	weightLoanSize        = 0.10
	weightAge             = 0.05
)

// ScorerConfig holds the category thresholds expressed as fractions of the
// 0-100 composite (e.g. 0.8 means a composite of 80).
type ScorerConfig struct {
	LowRiskThreshold  float64
	HighRiskThreshold float64
}

// DefaultScorerConfig returns the standard category thresholds.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		LowRiskThreshold:  0.8,
		HighRiskThreshold: 0.4,
	}
}

// band maps a lower bound on the raw value to a factor score. Bands are
// ordered by descending bound; the first bound the value reaches wins.
type band struct {
	bound float64
	score float64
}

var creditScoreBands = []band{
	{800, 100},
	{750, 90},
	{700, 80},
	{650, 65},
	{600, 50},
}

var salaryBands = []band{
	{100_000, 100},
	{75_000, 85},
	{50_000, 70},
	{35_000, 55},
}

var employmentBands = []band{
	{10, 100},
	{5, 90},
	{2, 75},
	{1, 60},
}

// tenureMultipliers scale the salary score by employment stability.
var tenureMultipliers = []band{
	{10, 1.0},
	{5, 0.95},
	{2, 0.9},
}

// ratioBand maps an upper bound on a ratio to a factor score. Bands are
// ordered by ascending bound; the first bound the ratio stays under wins.
type ratioBand struct {
	bound float64
	score float64
}

var debtRatioBands = []ratioBand{
	{0.1, 100},
	{0.2, 85},
	{0.3, 70},
	{0.4, 50},
}

var loanToIncomeBands = []ratioBand{
	{2, 100},
	{3, 85},
	{4, 70},
	{5, 50},
}

// RiskScorer computes the composite risk score and maps it to a category.
type RiskScorer struct {
	cfg ScorerConfig
}

// NewRiskScorer returns a scorer with the given thresholds.
func NewRiskScorer(cfg ScorerConfig) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// Score computes the six factors and the weighted composite, optionally
// adjusted by the external predictive signal, and maps the result to a risk
// category.
func (s *RiskScorer) Score(profile model.ApplicationProfile, signal *model.PredictionOutcome) (valueobject.RiskCategory, RiskFactors) {
	factors := RiskFactors{
		CreditScore:     creditScoreFactor(profile.CreditScore),
		IncomeStability: incomeStabilityFactor(profile.AnnualSalary.InexactFloat64(), profile.EmploymentYears),
		DebtBurden:      debtBurdenFactor(profile.ExistingLoans, profile.MonthlyIncome.InexactFloat64()),
		Employment:      employmentFactor(profile.EmploymentYears),
		LoanSize:        loanSizeFactor(profile.LoanAmount.InexactFloat64(), profile.AnnualSalary.InexactFloat64()),
		Age:             ageFactor(profile.Age),
	}

	overall := factors.CreditScore*weightCreditScore +
		factors.IncomeStability*weightIncomeStability +
		factors.DebtBurden*weightDebtBurden +
		factors.Employment*weightEmployment +
		factors.LoanSize*weightLoanSize +
		factors.Age*weightAge

	overall *= signalAdjustment(signal)
	factors.Overall = overall

	var category valueobject.RiskCategory
	switch {
	case overall >= s.cfg.LowRiskThreshold*100:
		category = valueobject.RiskCategoryLow
	case overall >= s.cfg.HighRiskThreshold*100:
		category = valueobject.RiskCategoryMedium
	default:
		category = valueobject.RiskCategoryHigh
	}

	return category, factors
}

// signalAdjustment derives a multiplicative score adjustment from the
// predictive signal's average confidence, with a small penalty when the
// sub-models disagree. A nil signal leaves the score unchanged.
func signalAdjustment(signal *model.PredictionOutcome) float64 {
	if signal == nil {
		return 1.0
	}

	var adjustment float64
	switch {
	case signal.AverageProbability >= 0.8:
		adjustment = 1.1
	case signal.AverageProbability >= 0.6:
		adjustment = 1.0
	case signal.AverageProbability >= 0.4:
		adjustment = 0.9
	default:
		adjustment = 0.8
	}

	if !signal.Consensus {
		adjustment *= 0.95
	}
	return adjustment
}

// ---------------------------------------------------------------------------
// Factor functions. The breakpoints are load-bearing business constants.
// ---------------------------------------------------------------------------

func creditScoreFactor(creditScore int) float64 {
	if score, ok := lookupBand(creditScoreBands, float64(creditScore)); ok {
		return score
	}
	return math.Max(0, float64(creditScore-300)/300*30)
}

func incomeStabilityFactor(salary, employmentYears float64) float64 {
	salaryScore, ok := lookupBand(salaryBands, salary)
	if !ok {
		salaryScore = math.Max(20, salary/35_000*55)
	}

	multiplier, ok := lookupBand(tenureMultipliers, employmentYears)
	if !ok {
		multiplier = 0.8
	}

	return math.Min(100, salaryScore*multiplier)
}

func debtBurdenFactor(existingLoans int, monthlyIncome float64) float64 {
	if existingLoans == 0 {
		return 100
	}

	// Rough estimate of 400 per existing loan.
	estimatedPayment := float64(existingLoans) * 400
	ratio := 1.0
	if monthlyIncome > 0 {
		ratio = estimatedPayment / monthlyIncome
	}

	if score, ok := lookupRatioBand(debtRatioBands, ratio); ok {
		return score
	}
	return math.Max(0, 50-(ratio-0.4)*100)
}

func employmentFactor(employmentYears float64) float64 {
	if score, ok := lookupBand(employmentBands, employmentYears); ok {
		return score
	}
	return math.Max(30, employmentYears*60)
}

func loanSizeFactor(loanAmount, salary float64) float64 {
	if salary <= 0 {
		return 0
	}

	ratio := loanAmount / salary
	if score, ok := lookupRatioBand(loanToIncomeBands, ratio); ok {
		return score
	}
	return math.Max(0, 50-(ratio-5)*10)
}

func ageFactor(age int) float64 {
	switch {
	case age >= 30 && age <= 50:
		return 100
	case age >= 25 && age <= 60:
		return 90
	case age >= 22 && age <= 65:
		return 80
	default:
		return 60
	}
}

func lookupBand(bands []band, value float64) (float64, bool) {
	for _, b := range bands {
		if value >= b.bound {
			return b.score, true
		}
	}
	return 0, false
}

func lookupRatioBand(bands []ratioBand, ratio float64) (float64, bool) {
	for _, b := range bands {
		if ratio <= b.bound {
			return b.score, true
		}
	}
	return 0, false
}
