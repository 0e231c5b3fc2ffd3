package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// TermsCalculator - risk-priced loan terms
// ---------------------------------------------------------------------------

// categoryTerms is the static pricing tier for one risk category.
type categoryTerms struct {
	baseRate         float64 // annual percent
	riskPremium      float64 // annual percent, added to base
	amountAdjustment float64 // fraction of the requested amount granted
	maxTenureMonths  int
	maxDTI           float64
}

var termsByCategory = map[valueobject.RiskCategory]categoryTerms{
	valueobject.RiskCategoryLow: {
		baseRate:         8.5,
		riskPremium:      0.5,
		amountAdjustment: 1.0,
		maxTenureMonths:  360,
		maxDTI:           0.35,
	},
	valueobject.RiskCategoryMedium: {
		baseRate:         10.5,
		riskPremium:      2.0,
		amountAdjustment: 0.9,
		maxTenureMonths:  300,
		maxDTI:           0.40,
	},
	valueobject.RiskCategoryHigh: {
		baseRate:         13.5,
		riskPremium:      4.5,
		amountAdjustment: 0.75,
		maxTenureMonths:  240,
		maxDTI:           0.45,
	},
}

// TermsCalculator prices an approved application. It must only be invoked
// once the decision is approved; it never decides, only prices.
type TermsCalculator struct{}

// NewTermsCalculator returns a stateless calculator.
func NewTermsCalculator() *TermsCalculator {
	return &TermsCalculator{}
}

// Calculate computes approved amount, interest rate, tenure and monthly
// payment for the given risk category. If the payment at the chosen tenure
// would breach the category's DTI ceiling, the approved amount is shrunk to
// the largest principal the ceiling allows; this pass runs at most once.
func (c *TermsCalculator) Calculate(profile model.ApplicationProfile, category valueobject.RiskCategory) (model.LoanTerms, error) {
	tier, ok := termsByCategory[category]
	if !ok {
		return model.LoanTerms{}, fmt.Errorf("no pricing tier for risk category %q", category.String())
	}

	monthlyIncome := profile.MonthlyIncome.InexactFloat64()
	if monthlyIncome <= 0 {
		return model.LoanTerms{}, fmt.Errorf("monthly income must be positive")
	}

	requested := profile.LoanAmount.InexactFloat64()
	approved := requested * tier.amountAdjustment
	rate := tier.baseRate + tier.riskPremium + premiumFineTune(category, profile.CreditScore)

	// The shortest tenure at which the DTI ceiling can hold.
	maxPayment := monthlyIncome * tier.maxDTI
	minTenure := tenureFromPayment(approved, rate, maxPayment, tier.maxTenureMonths)

	tenure := c.optimalTenure(profile, approved, rate, monthlyIncome, minTenure, tier)

	payment := annuityPayment(approved, rate, tenure)
	dti := payment / monthlyIncome

	if dti > tier.maxDTI {
		approved = math.Min(principalFromPayment(maxPayment, rate, tenure), requested)
		payment = annuityPayment(approved, rate, tenure)
		dti = payment / monthlyIncome
	}

	return model.LoanTerms{
		ApprovedAmount:    roundMoney(approved),
		InterestRate:      roundMoney(rate),
		TenureMonths:      tenure,
		MonthlyPayment:    roundMoney(payment),
		DebtToIncomeRatio: roundRatio(dti),
	}, nil
}

// optimalTenure honors the applicant's preferred tenure when it fits both the
// tenure bounds and the DTI ceiling, otherwise falls back to the standard
// tenure for the loan size, clipped into [minTenure, maxTenure].
func (c *TermsCalculator) optimalTenure(
	profile model.ApplicationProfile,
	approved, rate, monthlyIncome float64,
	minTenure int,
	tier categoryTerms,
) int {
	if profile.PreferredTenureYears > 0 {
		preferred := profile.PreferredTenureYears * 12
		if preferred >= minTenure && preferred <= tier.maxTenureMonths {
			payment := annuityPayment(approved, rate, preferred)
			if payment/monthlyIncome <= tier.maxDTI {
				return preferred
			}
		}
	}

	standard := 240
	if approved > 200_000 {
		standard = 360
	}

	tenure := standard
	if tenure < minTenure {
		tenure = minTenure
	}
	if tenure > tier.maxTenureMonths {
		tenure = tier.maxTenureMonths
	}
	return tenure
}

// premiumFineTune nudges the risk premium by credit score inside the
// category: the best scores within low and medium earn a small discount, the
// weakest scores within high pay extra.
func premiumFineTune(category valueobject.RiskCategory, creditScore int) float64 {
	switch {
	case category.Equal(valueobject.RiskCategoryLow) && creditScore >= 780:
		return -0.25
	case category.Equal(valueobject.RiskCategoryMedium) && creditScore >= 720:
		return -0.25
	case category.Equal(valueobject.RiskCategoryHigh) && creditScore < 600:
		return 0.5
	default:
		return 0
	}
}

func roundMoney(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func roundRatio(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(4)
}
