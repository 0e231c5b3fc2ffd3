package event

import (
	"github.com/shopspring/decimal"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateType = "LoanApplication"

// ---------------------------------------------------------------------------
// Loan application decision events
// ---------------------------------------------------------------------------

// ApplicationReceived is raised when a new application enters the system.
type ApplicationReceived struct {
	events.BaseEvent
	CustomerID string          `json:"customer_id"`
	LoanAmount decimal.Decimal `json:"loan_amount"`
}

func NewApplicationReceived(applicationID, customerID string, loanAmount decimal.Decimal) ApplicationReceived {
	return ApplicationReceived{
		BaseEvent:  events.NewBaseEvent("lending.application.received", applicationID, aggregateType),
		CustomerID: customerID,
		LoanAmount: loanAmount,
	}
}

// ApplicationApproved is raised when an application is approved and terms
// have been calculated.
type ApplicationApproved struct {
	events.BaseEvent
	CustomerID     string          `json:"customer_id"`
	RiskCategory   string          `json:"risk_category"`
	Reason         string          `json:"reason"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TenureMonths   int             `json:"tenure_months"`
}

func NewApplicationApproved(
	applicationID, customerID, riskCategory, reason string,
	approvedAmount, interestRate decimal.Decimal, tenureMonths int,
) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:      events.NewBaseEvent("lending.application.approved", applicationID, aggregateType),
		CustomerID:     customerID,
		RiskCategory:   riskCategory,
		Reason:         reason,
		ApprovedAmount: approvedAmount,
		InterestRate:   interestRate,
		TenureMonths:   tenureMonths,
	}
}

// ApplicationRejected is raised when an application is rejected.
type ApplicationRejected struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

func NewApplicationRejected(applicationID, customerID, reason string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:  events.NewBaseEvent("lending.application.rejected", applicationID, aggregateType),
		CustomerID: customerID,
		Reason:     reason,
	}
}

// ApplicationFlaggedForReview is raised when an application requires a human
// underwriter's attention.
type ApplicationFlaggedForReview struct {
	events.BaseEvent
	CustomerID   string `json:"customer_id"`
	RiskCategory string `json:"risk_category"`
	Reason       string `json:"reason"`
}

func NewApplicationFlaggedForReview(applicationID, customerID, riskCategory, reason string) ApplicationFlaggedForReview {
	return ApplicationFlaggedForReview{
		BaseEvent:    events.NewBaseEvent("lending.application.flagged_for_review", applicationID, aggregateType),
		CustomerID:   customerID,
		RiskCategory: riskCategory,
		Reason:       reason,
	}
}
