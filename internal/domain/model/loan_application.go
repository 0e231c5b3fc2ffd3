package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/event"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every state transition returns a
// new copy. An application starts PENDING and ends in exactly one of
// APPROVED, REJECTED or MANUAL_REVIEW; all three are terminal.
type LoanApplication struct {
	id             string
	customerID     string
	profile        ApplicationProfile
	status         valueobject.DecisionStatus
	riskCategory   valueobject.RiskCategory // zero when no category was assigned
	decisionReason string
	terms          *LoanTerms
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates a brand-new application in PENDING status.
func NewLoanApplication(customerID string, profile ApplicationProfile, now time.Time) (LoanApplication, error) {
	if customerID == "" {
		return LoanApplication{}, errors.New("customer ID is required")
	}
	if err := profile.Validate(); err != nil {
		return LoanApplication{}, err
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:         id,
		customerID: customerID,
		profile:    profile,
		status:     valueobject.DecisionStatusPending,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationReceived(id, customerID, profile.LoanAmount))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side effects.
func ReconstructLoanApplication(
	id, customerID string,
	profile ApplicationProfile,
	status valueobject.DecisionStatus,
	riskCategory valueobject.RiskCategory,
	decisionReason string,
	terms *LoanTerms,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:             id,
		customerID:     customerID,
		profile:        profile,
		status:         status,
		riskCategory:   riskCategory,
		decisionReason: decisionReason,
		terms:          terms,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> APPROVED with the offered terms.
func (a LoanApplication) Approve(
	category valueobject.RiskCategory,
	reason string,
	terms LoanTerms,
	now time.Time,
) (LoanApplication, error) {
	if !a.status.Equal(valueobject.DecisionStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.DecisionStatusApproved
	next.riskCategory = category
	next.decisionReason = reason
	next.terms = &terms
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(
		a.id, a.customerID, category.String(), reason,
		terms.ApprovedAmount, terms.InterestRate, terms.TenureMonths,
	))
	return next, nil
}

// Reject transitions PENDING -> REJECTED. The category may be zero when the
// rejection came from rule validation alone.
func (a LoanApplication) Reject(
	category valueobject.RiskCategory,
	reason string,
	now time.Time,
) (LoanApplication, error) {
	if !a.status.Equal(valueobject.DecisionStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.DecisionStatusRejected
	next.riskCategory = category
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(a.id, a.customerID, reason))
	return next, nil
}

// FlagForReview transitions PENDING -> MANUAL_REVIEW.
func (a LoanApplication) FlagForReview(
	category valueobject.RiskCategory,
	reason string,
	now time.Time,
) (LoanApplication, error) {
	if !a.status.Equal(valueobject.DecisionStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.DecisionStatusManualReview
	next.riskCategory = category
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationFlaggedForReview(
		a.id, a.customerID, category.String(), reason,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                             { return a.id }
func (a LoanApplication) CustomerID() string                     { return a.customerID }
func (a LoanApplication) Profile() ApplicationProfile            { return a.profile }
func (a LoanApplication) Status() valueobject.DecisionStatus     { return a.status }
func (a LoanApplication) RiskCategory() valueobject.RiskCategory { return a.riskCategory }
func (a LoanApplication) DecisionReason() string                 { return a.decisionReason }
func (a LoanApplication) Version() int                           { return a.version }
func (a LoanApplication) CreatedAt() time.Time                   { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                   { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent      { return a.domainEvents }

// Terms returns a copy of the offered terms, or nil when none were offered.
func (a LoanApplication) Terms() *LoanTerms {
	if a.terms == nil {
		return nil
	}
	t := *a.terms
	return &t
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
