package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus indicates the state of a budget ("orçamento").
type BudgetStatus string

const (
	BudgetDraft     BudgetStatus = "DRAFT"
	BudgetEmitted   BudgetStatus = "EMITTED"
	BudgetApproved  BudgetStatus = "APPROVED"
	BudgetRejected  BudgetStatus = "REJECTED"
	BudgetCancelled BudgetStatus = "CANCELLED"
)

// IsTerminal reports whether no further status or financial edits are allowed.
func (s BudgetStatus) IsTerminal() bool {
	switch s {
	case BudgetApproved, BudgetRejected, BudgetCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine admits the transition.
// DRAFT → EMITTED, EMITTED → DRAFT (reopen), EMITTED → APPROVED/REJECTED/CANCELLED.
func (s BudgetStatus) CanTransitionTo(target BudgetStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch target {
	case BudgetEmitted:
		return s == BudgetDraft || s == BudgetEmitted
	case BudgetDraft:
		return s == BudgetEmitted || s == BudgetDraft
	case BudgetApproved, BudgetRejected, BudgetCancelled:
		return s == BudgetEmitted
	}
	return false
}

// Budget is a versioned quote for a job, composed of phases.
// At most one budget per job may be APPROVED at any time; the store enforces
// this with a partial unique index, the service performs an advisory check.
type Budget struct {
	BudgetID     string          `json:"budgetID"`
	JobID        string          `json:"jobID"`
	Title        string          `json:"title"`
	Status       BudgetStatus    `json:"status"`
	GrossTotal   decimal.Decimal `json:"grossTotal"`
	Discount     decimal.Decimal `json:"discount"`
	FinalTotal   decimal.Decimal `json:"finalTotal"` // max(gross - discount, 0)
	ApprovedDate *time.Time      `json:"approvedDate,omitempty"`
	Phases       []Phase         `json:"phases,omitempty"` // often loaded separately
	AuditFields
}

// PhaseStatus is the execution lifecycle of a phase, independent of the
// owning budget's status.
type PhaseStatus string

const (
	PhaseWaiting   PhaseStatus = "WAITING"
	PhaseStarted   PhaseStatus = "STARTED"
	PhasePaused    PhaseStatus = "PAUSED"
	PhaseDone      PhaseStatus = "DONE"
	PhaseCancelled PhaseStatus = "CANCELLED"
)

// Phase is a stage of work within a budget, holding priced service line items.
// Sequence is unique within the budget. Total is derived from line items by
// recalculation and is not authoritative on its own.
type Phase struct {
	PhaseID  string          `json:"phaseID"`
	BudgetID string          `json:"budgetID"`
	Name     string          `json:"name"`
	Sequence int             `json:"sequence"`
	Status   PhaseStatus     `json:"status"`
	Total    decimal.Decimal `json:"total"`
	Items    []LineItem      `json:"items,omitempty"`
	AuditFields
}

// LineItem prices one catalog service inside a phase.
// Unique per (phase, service): re-adding the same service updates the line.
type LineItem struct {
	LineItemID string          `json:"lineItemID"`
	PhaseID    string          `json:"phaseID"`
	ServiceID  string          `json:"serviceID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Amount     decimal.Decimal `json:"amount"` // quantity × unit price
	AuditFields
}

// ComputeAmount returns quantity × unit price.
func (li LineItem) ComputeAmount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}
