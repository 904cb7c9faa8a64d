package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receivable is the receivables table row; phase_id is unique. OVERDUE is
// never stored, it is derived at read time.
type Receivable struct {
	ReceivableID string          `json:"receivableID"`
	PhaseID      string          `json:"phaseID"`
	Status       string          `json:"status"`
	BaseValue    decimal.Decimal `json:"baseValue"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	DueDate      time.Time       `json:"dueDate"`
	PaidAt       *time.Time      `json:"paidAt"`
	AuditFields
}
