package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskCategory - immutable value object
// ---------------------------------------------------------------------------

// RiskCategory classifies an applicant's risk, totally ordered by increasing
// risk: LOW < MEDIUM < HIGH.
type RiskCategory struct {
	value string
	rank  int
}

const (
	riskCategoryLow    = "LOW"
	riskCategoryMedium = "MEDIUM"
	riskCategoryHigh   = "HIGH"
)

var (
	RiskCategoryLow    = RiskCategory{value: riskCategoryLow, rank: 0}
	RiskCategoryMedium = RiskCategory{value: riskCategoryMedium, rank: 1}
	RiskCategoryHigh   = RiskCategory{value: riskCategoryHigh, rank: 2}
)

var validRiskCategories = map[string]RiskCategory{
	riskCategoryLow:    RiskCategoryLow,
	riskCategoryMedium: RiskCategoryMedium,
	riskCategoryHigh:   RiskCategoryHigh,
}

// NewRiskCategory creates a RiskCategory from a raw string.
func NewRiskCategory(s string) (RiskCategory, error) {
	v, ok := validRiskCategories[s]
	if !ok {
		return RiskCategory{}, fmt.Errorf("invalid risk category: %q", s)
	}
	return v, nil
}

// String returns the string representation of the category.
func (c RiskCategory) String() string { return c.value }

// IsZero returns true if the category has not been initialised.
func (c RiskCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories carry the same value.
func (c RiskCategory) Equal(other RiskCategory) bool { return c.value == other.value }

// RiskierThan returns true when c carries more risk than other.
func (c RiskCategory) RiskierThan(other RiskCategory) bool { return c.rank > other.rank }
