package model

import "github.com/shopspring/decimal"

// LoanTerms holds the terms offered on an approved application.
// Amounts and the rate are rounded to 2 decimal places, the DTI ratio to 4.
type LoanTerms struct {
	ApprovedAmount decimal.Decimal
	// InterestRate is the annual rate in percent (e.g. 9.00).
	InterestRate decimal.Decimal
	TenureMonths   int
	MonthlyPayment decimal.Decimal
	// DebtToIncomeRatio is MonthlyPayment / MonthlyIncome.
	DebtToIncomeRatio decimal.Decimal
}
