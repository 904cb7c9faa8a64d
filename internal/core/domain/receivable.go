package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus indicates the state of an amount owed by the client.
// OVERDUE is derived at read time from the due date, never stored.
type ReceivableStatus string

const (
	ReceivableOpen      ReceivableStatus = "OPEN"
	ReceivableOverdue   ReceivableStatus = "OVERDUE"
	ReceivablePaid      ReceivableStatus = "PAID"
	ReceivableCancelled ReceivableStatus = "CANCELLED"
)

// Receivable ("recebimento") is the amount owed by the client for one phase.
// At most one receivable exists per phase. Its lifecycle is independent of
// payroll payments.
type Receivable struct {
	ReceivableID string           `json:"receivableID"`
	PhaseID      string           `json:"phaseID"`
	Status       ReceivableStatus `json:"status"`
	BaseValue    decimal.Decimal  `json:"baseValue"`
	Surcharge    decimal.Decimal  `json:"surcharge"`
	DueDate      time.Time        `json:"dueDate"`
	PaidAt       *time.Time       `json:"paidAt,omitempty"`
	AuditFields
}

// EffectiveStatus derives OVERDUE for open receivables past their due date.
func (r Receivable) EffectiveStatus(today time.Time) ReceivableStatus {
	if r.Status == ReceivableOpen && r.DueDate.Before(today.Truncate(24*time.Hour)) {
		return ReceivableOverdue
	}
	return r.Status
}
