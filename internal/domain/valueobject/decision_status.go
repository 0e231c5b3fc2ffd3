package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// DecisionStatus - immutable value object
// ---------------------------------------------------------------------------

// DecisionStatus represents the lifecycle stage of a loan application decision.
// PENDING is the initial state; the other three are terminal for a given
// evaluation.
type DecisionStatus struct {
	value string
}

const (
	decisionStatusPending      = "PENDING"
	decisionStatusApproved     = "APPROVED"
	decisionStatusRejected     = "REJECTED"
	decisionStatusManualReview = "MANUAL_REVIEW"
)

var (
	DecisionStatusPending      = DecisionStatus{value: decisionStatusPending}
	DecisionStatusApproved     = DecisionStatus{value: decisionStatusApproved}
	DecisionStatusRejected     = DecisionStatus{value: decisionStatusRejected}
	DecisionStatusManualReview = DecisionStatus{value: decisionStatusManualReview}
)

var validDecisionStatuses = map[string]DecisionStatus{
	decisionStatusPending:      DecisionStatusPending,
	decisionStatusApproved:     DecisionStatusApproved,
	decisionStatusRejected:     DecisionStatusRejected,
	decisionStatusManualReview: DecisionStatusManualReview,
}

// NewDecisionStatus creates a DecisionStatus from a raw string.
func NewDecisionStatus(s string) (DecisionStatus, error) {
	v, ok := validDecisionStatuses[s]
	if !ok {
		return DecisionStatus{}, fmt.Errorf("invalid decision status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DecisionStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s DecisionStatus) IsZero() bool { return s.value == "" }

// IsTerminal returns true when the status admits no further transitions.
func (s DecisionStatus) IsTerminal() bool {
	return s.value == decisionStatusApproved ||
		s.value == decisionStatusRejected ||
		s.value == decisionStatusManualReview
}

// Equal returns true when both statuses carry the same value.
func (s DecisionStatus) Equal(other DecisionStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
