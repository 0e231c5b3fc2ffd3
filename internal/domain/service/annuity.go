package service

import "math"

// MaxMonthlyPayment is the largest representable monthly payment
// (DECIMAL(12,2) storage bound). Payments above it are capped, never
// overflowed; collaborators detect the cap and log it.
const MaxMonthlyPayment = 9_999_999_999.99

// annuityPayment returns the fixed monthly payment that fully repays
// principal over months at the given annual rate (percent):
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with r the monthly rate. A zero rate degenerates to an even split P/n.
// The result is capped at maxMonthlyPayment.
func annuityPayment(principal, annualRatePct float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}

	r := annualRatePct / 100 / 12
	if r == 0 {
		return math.Min(principal/float64(months), MaxMonthlyPayment)
	}

	factor := math.Pow(1+r, float64(months))
	payment := principal * r * factor / (factor - 1)
	return math.Min(payment, MaxMonthlyPayment)
}

// principalFromPayment inverts the annuity formula for the principal that a
// given monthly payment can service over months at the given annual rate.
func principalFromPayment(payment, annualRatePct float64, months int) float64 {
	if payment <= 0 || months <= 0 {
		return 0
	}

	r := annualRatePct / 100 / 12
	if r == 0 {
		return payment * float64(months)
	}

	factor := math.Pow(1+r, float64(months))
	return payment * (factor - 1) / (r * factor)
}

// tenureFromPayment inverts the annuity formula for the number of months
// needed to repay principal with the given monthly payment:
//
//	n = ceil(-ln(1 - P*r/payment) / ln(1+r))
//
// minimum 12 months. When payment <= P*r the loan can never amortize at that
// rate and payment, so fallbackMonths (the caller's maximum tenure) is
// returned instead; this is a deliberate fallback, not an error.
func tenureFromPayment(principal, annualRatePct, payment float64, fallbackMonths int) int {
	if principal <= 0 || payment <= 0 {
		return fallbackMonths
	}

	r := annualRatePct / 100 / 12
	if r == 0 {
		months := int(math.Ceil(principal / payment))
		if months < 12 {
			return 12
		}
		return months
	}

	if payment <= principal*r {
		return fallbackMonths
	}

	months := -math.Log(1-principal*r/payment) / math.Log(1+r)
	n := int(math.Ceil(months))
	if n < 12 {
		return 12
	}
	return n
}
