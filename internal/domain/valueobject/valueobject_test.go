package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecisionStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "APPROVED", "REJECTED", "MANUAL_REVIEW"} {
		s, err := NewDecisionStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	_, err := NewDecisionStatus("approved")
	assert.Error(t, err)
	_, err = NewDecisionStatus("")
	assert.Error(t, err)
}

func TestDecisionStatus_IsTerminal(t *testing.T) {
	assert.False(t, DecisionStatusPending.IsTerminal())
	assert.True(t, DecisionStatusApproved.IsTerminal())
	assert.True(t, DecisionStatusRejected.IsTerminal())
	assert.True(t, DecisionStatusManualReview.IsTerminal())
}

func TestNewRiskCategory(t *testing.T) {
	for _, raw := range []string{"LOW", "MEDIUM", "HIGH"} {
		c, err := NewRiskCategory(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, c.String())
	}

	_, err := NewRiskCategory("low")
	assert.Error(t, err)
}

func TestRiskCategory_Ordering(t *testing.T) {
	assert.True(t, RiskCategoryHigh.RiskierThan(RiskCategoryMedium))
	assert.True(t, RiskCategoryMedium.RiskierThan(RiskCategoryLow))
	assert.False(t, RiskCategoryLow.RiskierThan(RiskCategoryHigh))
	assert.False(t, RiskCategoryMedium.RiskierThan(RiskCategoryMedium))
}

func TestRiskCategory_IsZero(t *testing.T) {
	var none RiskCategory
	assert.True(t, none.IsZero())
	assert.False(t, RiskCategoryLow.IsZero())
}
