package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus mirrors domain.BudgetStatus at the storage layer.
type BudgetStatus string

const (
	BudgetDraft     BudgetStatus = "DRAFT"
	BudgetEmitted   BudgetStatus = "EMITTED"
	BudgetApproved  BudgetStatus = "APPROVED"
	BudgetRejected  BudgetStatus = "REJECTED"
	BudgetCancelled BudgetStatus = "CANCELLED"
)

// Budget is the budgets table row. A partial unique index on
// (job_id) WHERE status = 'APPROVED' enforces one approval per job.
type Budget struct {
	BudgetID     string          `json:"budgetID"`
	JobID        string          `json:"jobID"`
	Title        string          `json:"title"`
	Status       BudgetStatus    `json:"status"`
	GrossTotal   decimal.Decimal `json:"grossTotal"`
	Discount     decimal.Decimal `json:"discount"`
	FinalTotal   decimal.Decimal `json:"finalTotal"`
	ApprovedDate *time.Time      `json:"approvedDate"`
	AuditFields
}

// Phase is the phases table row; (budget_id, sequence) is unique.
type Phase struct {
	PhaseID  string          `json:"phaseID"`
	BudgetID string          `json:"budgetID"`
	Name     string          `json:"name"`
	Sequence int             `json:"sequence"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
	AuditFields
}

// LineItem is the line_items table row; (phase_id, service_id) is unique.
type LineItem struct {
	LineItemID string          `json:"lineItemID"`
	PhaseID    string          `json:"phaseID"`
	ServiceID  string          `json:"serviceID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Amount     decimal.Decimal `json:"amount"`
	AuditFields
}
