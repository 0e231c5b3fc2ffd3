package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ApplicationProfile is the immutable financial snapshot of an applicant used
// by the decision engine. It is constructed once per evaluation by the input
// layer, which guarantees the numeric ranges before the engine runs.
type ApplicationProfile struct {
	Age           int
	AnnualSalary  decimal.Decimal
	CreditScore   int
	LoanAmount    decimal.Decimal
	ExistingLoans int
	MonthlyIncome decimal.Decimal
	// EmploymentYears may be fractional (e.g. 0.5 for six months).
	EmploymentYears float64
	// PreferredTenureYears is optional; zero means the applicant expressed
	// no preference and the calculator picks the tenure.
	PreferredTenureYears int
}

// Validate checks the structural invariants the engine relies on.
func (p ApplicationProfile) Validate() error {
	if p.Age <= 0 {
		return errors.New("age must be positive")
	}
	if p.AnnualSalary.IsNegative() {
		return errors.New("annual salary must not be negative")
	}
	if p.CreditScore < 300 || p.CreditScore > 850 {
		return errors.New("credit score must be in range 300-850")
	}
	if p.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("loan amount must be positive")
	}
	if p.ExistingLoans < 0 {
		return errors.New("existing loans count must not be negative")
	}
	if p.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return errors.New("monthly income must be positive")
	}
	if p.EmploymentYears < 0 {
		return errors.New("employment years must not be negative")
	}
	if p.PreferredTenureYears < 0 {
		return errors.New("preferred tenure must not be negative")
	}
	return nil
}
